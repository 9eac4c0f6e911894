package delivery

import (
	"fmt"
	"time"
)

// Delivery status values. Any other value is treated as an
// intermediate/other status (e.g. still in transit).
const (
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Record is a single delivery attempt as supplied by the upstream
// ingestion system. Records are immutable once loaded; the engine only
// derives aggregates from them.
type Record struct {
	ID                 string    `json:"id"`
	Timestamp          time.Time `json:"timestamp"`
	Partner            string    `json:"partner"`
	City               string    `json:"city"`
	Status             string    `json:"status"`
	CancellationReason string    `json:"cancellation_reason,omitempty"`
	DistanceKm         float64   `json:"distance_km"`
	SLATargetMinutes   float64   `json:"sla_target_minutes"`
	SLAMet             bool      `json:"sla_met"`
	DurationMinutes    *float64  `json:"duration_minutes,omitempty"` // completed deliveries only
	Latitude           *float64  `json:"latitude,omitempty"`
	Longitude          *float64  `json:"longitude,omitempty"`
}

// Delivered reports whether the record represents a completed delivery.
func (r Record) Delivered() bool {
	return r.Status == StatusDelivered
}

// Cancelled reports whether the record represents a cancelled delivery.
func (r Record) Cancelled() bool {
	return r.Status == StatusCancelled
}

// ValidateRecords checks the structural invariants of a record collection.
// Sparse or missing optional data is never an error; only malformed records
// that would corrupt downstream aggregates are rejected. The first violation
// found is returned with enough context to locate the offending record.
func ValidateRecords(records []Record) error {
	for i, r := range records {
		if r.ID == "" {
			return fmt.Errorf("record %d: missing id", i)
		}
		if r.Timestamp.IsZero() {
			return fmt.Errorf("record %s: missing timestamp", r.ID)
		}
		if r.DistanceKm < 0 {
			return fmt.Errorf("record %s: negative distance %.2f km", r.ID, r.DistanceKm)
		}
		if r.SLATargetMinutes < 0 {
			return fmt.Errorf("record %s: negative SLA target %.1f min", r.ID, r.SLATargetMinutes)
		}
		if r.DurationMinutes != nil && *r.DurationMinutes < 0 {
			return fmt.Errorf("record %s: negative duration %.1f min", r.ID, *r.DurationMinutes)
		}
	}
	return nil
}
