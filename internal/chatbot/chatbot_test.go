package chatbot

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"infracciones.transito.co/internal/dataset"
	"infracciones.transito.co/internal/logging"
	"infracciones.transito.co/internal/models"
	"infracciones.transito.co/internal/records"
)

func newFixtureBot(t *testing.T) (*Bot, *records.Service) {
	t.Helper()
	loaded, err := dataset.LoadFile(models.FixturePath(t, "infracciones.csv"), dataset.SchemaAuto)
	require.NoError(t, err)

	service := records.NewService(loaded)
	return New(service, defaultLexicon(t)), service
}

func TestAnswerWithDigits(t *testing.T) {
	bot, service := newFixtureBot(t)

	reply := bot.Answer(context.Background(), "dame las infracciones del estrato 3")

	assert.Equal(t, OutcomeMatched, reply.Outcome)
	assert.NoError(t, reply.Err())
	assert.Equal(t, "3", reply.Stratum)
	assert.Equal(t, "Aquí tienes algunas multas relacionadas con el estrato socioeconómico: 3", reply.Message)
	assert.Equal(t, service.FilterByStratum("3"), reply.Records)
	assert.Len(t, reply.Records, 3)
}

func TestAnswerWithNumberWord(t *testing.T) {
	bot, _ := newFixtureBot(t)

	byWord := bot.Answer(context.Background(), "estrato tres")
	byDigit := bot.Answer(context.Background(), "dame las infracciones del estrato 3")

	assert.Equal(t, "3", byWord.Stratum)
	assert.Equal(t, byDigit.Records, byWord.Records)
	assert.Equal(t, byDigit.Message, byWord.Message)
}

func TestAnswerInvalidStratum(t *testing.T) {
	bot, _ := newFixtureBot(t)

	reply := bot.Answer(context.Background(), "hola")

	assert.Equal(t, OutcomeInvalidStratum, reply.Outcome)
	assert.ErrorIs(t, reply.Err(), ErrInvalidStratum)
	assert.Equal(t, "¡¡¡Estrato socioeconómico no válido!!!, por favor ingrese un valor entre 1 y 6.", reply.Message)
	assert.NotNil(t, reply.Records)
	assert.Empty(t, reply.Records)
	assert.Equal(t, "", reply.Stratum)
}

func TestAnswerStratumWithoutRecords(t *testing.T) {
	bot, _ := newFixtureBot(t)

	reply := bot.Answer(context.Background(), "estrato 9")

	assert.Equal(t, OutcomeNoMatches, reply.Outcome)
	assert.NoError(t, reply.Err())
	assert.Equal(t, "9", reply.Stratum)
	assert.Equal(t, "Estrato ingresado: 9. ¡¡¡Estrato socioeconómico no válido!!!, por favor ingrese un valor entre 1 y 6.", reply.Message)
	assert.Empty(t, reply.Records)
}

func TestAnswerSynonymsDoNotWidenMatching(t *testing.T) {
	bot, _ := newFixtureBot(t)

	reply := bot.Answer(context.Background(), "multa nivel 1")

	assert.True(t, reply.Synonyms.Contains("comparendo"))
	assert.True(t, reply.Synonyms.Contains("estrato"))
	assert.Equal(t, "1", reply.Stratum)
	for _, r := range reply.Records {
		assert.Equal(t, "1", r.Stratum)
	}
}

func TestAnswerResponse(t *testing.T) {
	bot, _ := newFixtureBot(t)

	response := bot.Answer(context.Background(), "hola").Response()
	assert.Equal(t, models.InvalidStratumMessage, response.Message)
	assert.NotNil(t, response.Records)
}

func TestAnswerLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewStructuredLogger(&buf, slog.LevelDebug)
	ctx := logging.WithLogger(context.Background(), logger)

	bot := New(records.NewService(nil), nil)
	bot.Answer(ctx, "estrato cuatro")

	output := buf.String()
	assert.Contains(t, output, `"msg":"chatbot query answered"`)
	assert.Contains(t, output, `"outcome":"no_matches"`)
	assert.Contains(t, output, `"stratum":"4"`)
}
