package records

import (
	"infracciones.transito.co/internal/models"
)

// MockAddRecord appends a record for tests. Unlike the loaded dataset it
// skips records whose id is already present.
func (s *Service) MockAddRecord(id, stratum, infractionType string) {
	for _, r := range s.records {
		if r.ID == id {
			return
		}
	}
	s.records = append(s.records, models.InfractionRecord{
		ID:             id,
		Stratum:        stratum,
		InfractionType: infractionType,
	})
}
