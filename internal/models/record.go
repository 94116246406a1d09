package models

// InfractionRecord is one row of the infractions dataset. Every value is kept
// as text exactly as read; missing cells are empty strings.
type InfractionRecord struct {
	ID                  string `json:"id"`
	Stratum             string `json:"ssb"`
	PublicServiceRate   string `json:"esp"`
	EstimatedIncome     string `json:"income"`
	InfractionType      string `json:"tif"`
	FineValue           string `json:"valmul"`
	LoadPercentage      string `json:"porcar"`
	SafeguardPercentage string `json:"savepor"`
	// AmountToPay is only set for datasets that carry a separate
	// amount-to-pay column.
	AmountToPay *string `json:"valcan,omitempty"`
}

// NewInfractionRecord creates a record for the combined-fine dataset layout.
func NewInfractionRecord(id, stratum, publicServiceRate, estimatedIncome, infractionType, fineValue, loadPercentage, safeguardPercentage string) InfractionRecord {
	return InfractionRecord{
		ID:                  id,
		Stratum:             stratum,
		PublicServiceRate:   publicServiceRate,
		EstimatedIncome:     estimatedIncome,
		InfractionType:      infractionType,
		FineValue:           fineValue,
		LoadPercentage:      loadPercentage,
		SafeguardPercentage: safeguardPercentage,
	}
}

// WithAmountToPay returns a copy of the record carrying the amount to pay.
func (r InfractionRecord) WithAmountToPay(amount string) InfractionRecord {
	r.AmountToPay = &amount
	return r
}
