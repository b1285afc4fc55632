package sqlite

import (
	"database/sql"
	"time"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
	"github.com/fr0stylo/proxitrace/internal/db/queries"
)

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func nullMillis(value *time.Time) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMillis(*value), Valid: true}
}

func toDomainContact(row queries.Contact) domain.Contact {
	contact := domain.Contact{
		ID:          row.ID,
		EphID:       domain.EphID(row.EphID),
		Date:        fromMillis(row.Date),
		WindowCount: int(row.WindowsCount),
	}
	if row.AssociatedKnownCase.Valid {
		knownCase := row.AssociatedKnownCase.Int64
		contact.AssociatedKnownCase = &knownCase
	}
	return contact
}

func toDomainCalibration(row queries.ContactCalibration) *domain.Calibration {
	return &domain.Calibration{
		UserPrefix:      row.UserPrefix,
		StartDate:       fromMillis(row.StartDate),
		EndDate:         fromMillis(row.EndDate),
		Minutes:         int(row.Minutes),
		MeanAttenuation: row.MeanAttenuation,
		MeanDistance:    row.MeanDistance,
	}
}

func calibrationParams(contactID int64, calibration *domain.Calibration) queries.InsertContactCalibrationParams {
	return queries.InsertContactCalibrationParams{
		ContactID:       contactID,
		UserPrefix:      calibration.UserPrefix,
		StartDate:       toMillis(calibration.StartDate),
		EndDate:         toMillis(calibration.EndDate),
		Minutes:         int64(calibration.Minutes),
		MeanAttenuation: calibration.MeanAttenuation,
		MeanDistance:    calibration.MeanDistance,
	}
}
