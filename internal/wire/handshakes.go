// Package wire holds the JSON representation of handshake batches shared by the HTTP,
// MQTT, and file ingestion paths.
package wire

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
)

// MaxBatchBytes bounds a single encoded batch.
const MaxBatchBytes = 8 << 20

// ErrInvalidBatch indicates a payload that is not a well formed handshake batch.
var ErrInvalidBatch = errors.New("invalid handshake batch")

// HandshakeBatch is the envelope published by collectors.
type HandshakeBatch struct {
	Handshakes []Handshake `json:"handshakes"`
}

// Handshake is one observation. RSSI and TxPowerLevel are optional.
type Handshake struct {
	EphID        string    `json:"ephId"`
	Timestamp    time.Time `json:"timestamp"`
	RSSI         *float64  `json:"rssi,omitempty"`
	TxPowerLevel *float64  `json:"txPowerLevel,omitempty"`
}

// DecodeBatch reads one JSON batch and converts it to domain handshakes.
func DecodeBatch(r io.Reader) ([]domain.Handshake, error) {
	decoder := json.NewDecoder(io.LimitReader(r, MaxBatchBytes))
	decoder.DisallowUnknownFields()

	var batch HandshakeBatch
	if err := decoder.Decode(&batch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBatch, err)
	}
	return batch.ToDomain()
}

// ToDomain validates the batch and converts it.
func (b HandshakeBatch) ToDomain() ([]domain.Handshake, error) {
	out := make([]domain.Handshake, 0, len(b.Handshakes))
	for i, h := range b.Handshakes {
		ephID, err := base64.StdEncoding.DecodeString(h.EphID)
		if err != nil {
			return nil, fmt.Errorf("%w: handshake %d: ephId: %v", ErrInvalidBatch, i, err)
		}
		if len(ephID) == 0 {
			return nil, fmt.Errorf("%w: handshake %d: ephId is empty", ErrInvalidBatch, i)
		}
		if h.Timestamp.IsZero() {
			return nil, fmt.Errorf("%w: handshake %d: timestamp is required", ErrInvalidBatch, i)
		}
		out = append(out, domain.Handshake{
			EphID:        domain.EphID(ephID),
			Timestamp:    h.Timestamp.UTC(),
			RSSI:         h.RSSI,
			TxPowerLevel: h.TxPowerLevel,
		})
	}
	return out, nil
}

// EncodeBatch writes handshakes in the wire format.
func EncodeBatch(w io.Writer, handshakes []domain.Handshake) error {
	batch := HandshakeBatch{Handshakes: make([]Handshake, 0, len(handshakes))}
	for _, h := range handshakes {
		batch.Handshakes = append(batch.Handshakes, Handshake{
			EphID:        h.EphID.String(),
			Timestamp:    h.Timestamp.UTC(),
			RSSI:         h.RSSI,
			TxPowerLevel: h.TxPowerLevel,
		})
	}
	return json.NewEncoder(w).Encode(batch)
}
