package records

import (
	"errors"
	"strings"

	"infracciones.transito.co/internal/models"
)

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New("record not found")

// Service answers lookups over the infraction records loaded at startup.
// The record set is never mutated after construction, so a Service is safe
// for concurrent use without locking.
type Service struct {
	records []models.InfractionRecord
}

// NewService takes ownership of records. A nil slice is treated as empty.
func NewService(records []models.InfractionRecord) *Service {
	if records == nil {
		records = []models.InfractionRecord{}
	}
	return &Service{records: records}
}

// GetByID returns the first record, in load order, whose id equals id.
func (s *Service) GetByID(id string) (models.InfractionRecord, error) {
	for _, record := range s.records {
		if record.ID == id {
			return record, nil
		}
	}
	return models.InfractionRecord{}, ErrNotFound
}

// FilterByStratum returns every record whose stratum, once trimmed, equals
// code exactly. "1" and "01" are different strata. Load order is preserved.
func (s *Service) FilterByStratum(code string) []models.InfractionRecord {
	matches := []models.InfractionRecord{}
	for _, record := range s.records {
		if strings.TrimSpace(record.Stratum) == code {
			matches = append(matches, record)
		}
	}
	return matches
}

// All returns the loaded records. Callers must not modify the slice.
func (s *Service) All() []models.InfractionRecord {
	return s.records
}

func (s *Service) Len() int {
	return len(s.records)
}
