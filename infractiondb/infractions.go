package infractiondb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"infracciones.transito.co/internal/logging"
	"infracciones.transito.co/internal/models"
)

// ImportRecords replaces the mirrored records with records, in a single
// transaction. Load order is kept in row_index.
func (c *Client) ImportRecords(ctx context.Context, records []models.InfractionRecord) error {
	startTime := time.Now()

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "import_records")

	if _, err := tx.ExecContext(ctx, "DELETE FROM infractions"); err != nil {
		return fmt.Errorf("error clearing infractions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO infractions (
			row_index, id, ssb, esp, income, tif, valmul, porcar, savepor, valcan
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer logging.SafeCloseWithLogging(stmt, c.logger, "insert_statement")

	for i, r := range records {
		_, err := stmt.ExecContext(ctx,
			i, r.ID, r.Stratum, r.PublicServiceRate, r.EstimatedIncome,
			r.InfractionType, r.FineValue, r.LoadPercentage, r.SafeguardPercentage,
			toNullString(r.AmountToPay),
		)
		if err != nil {
			return fmt.Errorf("error inserting record %q: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing records: %w", err)
	}

	c.importRuntime = time.Since(startTime)
	if c.config.verbose {
		logging.LogOperation(c.logger, "records_mirrored",
			slog.Int("records", len(records)),
			slog.Duration("duration", c.importRuntime))
	}
	return nil
}

// StratumSummaries counts records and distinct infraction types per trimmed
// stratum, ordered by stratum.
func (c *Client) StratumSummaries(ctx context.Context) ([]models.StratumSummary, error) {
	rows, err := c.DB.QueryContext(ctx, `
		SELECT TRIM(ssb) AS stratum, COUNT(*), COUNT(DISTINCT tif)
		FROM infractions
		GROUP BY TRIM(ssb)
		ORDER BY stratum`)
	if err != nil {
		return nil, fmt.Errorf("error querying stratum summaries: %w", err)
	}
	defer logging.SafeCloseWithLogging(rows, c.logger, "stratum_summaries")

	summaries := []models.StratumSummary{}
	for rows.Next() {
		var s models.StratumSummary
		if err := rows.Scan(&s.Stratum, &s.Records, &s.InfractionTypes); err != nil {
			return nil, fmt.Errorf("error scanning stratum summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// CountRecords returns the number of mirrored records.
func (c *Client) CountRecords(ctx context.Context) (int, error) {
	var count int
	err := c.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM infractions").Scan(&count)
	return count, err
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
