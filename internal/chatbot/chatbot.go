package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"infracciones.transito.co/internal/logging"
	"infracciones.transito.co/internal/models"
)

// ErrInvalidStratum is reported when no stratum can be read from a query.
var ErrInvalidStratum = errors.New("invalid stratum")

// Outcome classifies a chatbot reply.
type Outcome string

const (
	OutcomeMatched        Outcome = "matched"
	OutcomeNoMatches      Outcome = "no_matches"
	OutcomeInvalidStratum Outcome = "invalid_stratum"
)

// RecordFilter selects the records of a stratum.
type RecordFilter interface {
	FilterByStratum(code string) []models.InfractionRecord
}

// Reply is the answer to one chatbot query.
type Reply struct {
	Query   string
	Tokens  []string
	Stratum string
	Outcome Outcome
	Message string
	Records []models.InfractionRecord
	// Synonyms is the query expanded with the lexicon. It is reported but
	// does not take part in matching.
	Synonyms WordSet
}

// Err returns ErrInvalidStratum when the query had no stratum.
func (r Reply) Err() error {
	if r.Outcome == OutcomeInvalidStratum {
		return ErrInvalidStratum
	}
	return nil
}

// Response converts the reply into the chatbot endpoint body.
func (r Reply) Response() models.ChatbotResponse {
	return models.NewChatbotResponse(r.Message, r.Records)
}

// Bot answers stratum queries over a record set.
type Bot struct {
	records RecordFilter
	lexicon Lexicon
}

// New creates a Bot. lexicon may be nil, in which case synonym expansion
// yields only the query tokens.
func New(records RecordFilter, lexicon Lexicon) *Bot {
	return &Bot{
		records: records,
		lexicon: lexicon,
	}
}

// Answer extracts the stratum from query and lists its records.
func (b *Bot) Answer(ctx context.Context, query string) Reply {
	tokens := Tokenize(query)
	reply := Reply{
		Query:    query,
		Tokens:   tokens,
		Synonyms: ExpandQuery(b.lexicon, tokens),
		Records:  []models.InfractionRecord{},
	}

	stratum, ok := ExtractStratum(query)
	if !ok {
		reply.Outcome = OutcomeInvalidStratum
		reply.Message = models.InvalidStratumMessage
	} else {
		reply.Stratum = stratum
		if matches := b.records.FilterByStratum(stratum); len(matches) > 0 {
			reply.Records = matches
			reply.Outcome = OutcomeMatched
			reply.Message = fmt.Sprintf(models.StratumMatchedFormat, stratum)
		} else {
			reply.Outcome = OutcomeNoMatches
			reply.Message = fmt.Sprintf(models.StratumWithoutRecordsFormat, stratum)
		}
	}

	logging.FromContext(ctx).Debug("chatbot query answered",
		slog.String("component", "chatbot"),
		slog.String("outcome", string(reply.Outcome)),
		slog.String("stratum", reply.Stratum),
		slog.Int("records", len(reply.Records)),
		slog.Int("tokens", len(reply.Tokens)),
		slog.Int("synonyms", len(reply.Synonyms)))

	return reply
}
