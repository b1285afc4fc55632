package wire

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
)

func TestDecodeBatch(t *testing.T) {
	t.Parallel()

	payload := `{"handshakes":[
		{"ephId":"YWxwaGE=","timestamp":"2026-05-01T10:00:30+02:00","rssi":-61.5,"txPowerLevel":12},
		{"ephId":"YWxwaGE=","timestamp":"2026-05-01T08:01:00Z"}
	]}`

	handshakes, err := DecodeBatch(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("DecodeBatch returned error: %v", err)
	}
	if len(handshakes) != 2 {
		t.Fatalf("expected 2 handshakes, got %d", len(handshakes))
	}
	first := handshakes[0]
	if string(first.EphID) != "alpha" {
		t.Fatalf("unexpected eph id: %q", first.EphID)
	}
	if !first.Timestamp.Equal(time.Date(2026, 5, 1, 8, 0, 30, 0, time.UTC)) || first.Timestamp.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %s", first.Timestamp)
	}
	if first.RSSI == nil || *first.RSSI != -61.5 || first.TxPowerLevel == nil || *first.TxPowerLevel != 12 {
		t.Fatalf("unexpected signal values: %+v", first)
	}
	if handshakes[1].RSSI != nil || handshakes[1].TxPowerLevel != nil {
		t.Fatalf("expected absent signal values, got %+v", handshakes[1])
	}
}

func TestDecodeBatchRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":        `{"handshakes":`,
		"unknown field":   `{"handshakes":[],"extra":1}`,
		"bad base64":      `{"handshakes":[{"ephId":"***","timestamp":"2026-05-01T08:00:00Z"}]}`,
		"empty eph id":    `{"handshakes":[{"ephId":"","timestamp":"2026-05-01T08:00:00Z"}]}`,
		"missing instant": `{"handshakes":[{"ephId":"YQ=="}]}`,
	}
	for name, payload := range cases {
		if _, err := DecodeBatch(strings.NewReader(payload)); !errors.Is(err, ErrInvalidBatch) {
			t.Fatalf("%s: expected ErrInvalidBatch, got %v", name, err)
		}
	}
}

func TestEncodeBatchIsReadable(t *testing.T) {
	t.Parallel()

	rssi := -70.0
	in := []domain.Handshake{{
		EphID:     domain.EphID("bravo"),
		Timestamp: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC),
		RSSI:      &rssi,
	}}

	var buf bytes.Buffer
	if err := EncodeBatch(&buf, in); err != nil {
		t.Fatalf("EncodeBatch returned error: %v", err)
	}
	if !strings.Contains(buf.String(), `"ephId":"YnJhdm8="`) {
		t.Fatalf("unexpected encoding: %s", buf.String())
	}

	out, err := DecodeBatch(&buf)
	if err != nil {
		t.Fatalf("DecodeBatch returned error: %v", err)
	}
	if len(out) != 1 || !bytes.Equal(out[0].EphID, in[0].EphID) || *out[0].RSSI != rssi {
		t.Fatalf("unexpected decoded batch: %+v", out)
	}
}
