package models

// StratumSummary aggregates the records of one socioeconomic stratum.
type StratumSummary struct {
	Stratum         string `json:"estrato"`
	Records         int64  `json:"multas"`
	InfractionTypes int64  `json:"tiposInfraccion"`
}

type StrataResponse struct {
	Strata []StratumSummary `json:"estratos"`
}

func NewStrataResponse(summaries []StratumSummary) StrataResponse {
	if summaries == nil {
		summaries = []StratumSummary{}
	}
	return StrataResponse{Strata: summaries}
}
