package domain

import (
	"encoding/base64"
	"time"
)

// EphID is an opaque ephemeral radio identifier.
type EphID []byte

// String returns the base64 form used on the wire and in logs.
func (e EphID) String() string {
	return base64.StdEncoding.EncodeToString(e)
}

// Handshake is one observed radio advertisement.
type Handshake struct {
	EphID        EphID
	Timestamp    time.Time
	RSSI         *float64
	TxPowerLevel *float64
}

// Contact aggregates all handshakes of one ephemeral identifier within a reporting bucket.
//
// ID is zero until the contact is persisted. Date is the encounter time floored to the
// reporting batch length. WindowCount is always at least one.
type Contact struct {
	ID                  int64
	EphID               EphID
	Date                time.Time
	WindowCount         int
	AssociatedKnownCase *int64
	Calibration         *Calibration
}

// Calibration carries optional diagnostics computed alongside a contact.
// It is never required by matching and lives in its own table.
type Calibration struct {
	UserPrefix      string
	StartDate       time.Time
	EndDate         time.Time
	Minutes         int
	MeanAttenuation float64
	MeanDistance    float64
}

// KnownCase is a confirmed case published by the backend.
type KnownCase struct {
	ID             int64
	Day            Day
	Key            []byte
	OnsetDate      *time.Time
	BatchTimestamp time.Time
}
