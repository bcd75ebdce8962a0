package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/newsscope/newsscope/internal/client/models"
	"github.com/newsscope/newsscope/internal/dbx"
)

// AnalysisCache mirrors the most recent dashboard records locally so the CLI
// can still show something when the backend is unreachable. It is replaced
// wholesale after each successful dashboard load, never written piecemeal.
type AnalysisCache struct {
	db *sql.DB
}

func NewAnalysisCache(db *sql.DB) *AnalysisCache {
	return &AnalysisCache{db: db}
}

// Replace swaps the cached list for the given one in a single transaction.
func (c *AnalysisCache) Replace(ctx context.Context, analyses []models.Analysis) error {
	return dbx.WithTx(ctx, c.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM analyses`); err != nil {
			return fmt.Errorf("clear analysis cache: %w", err)
		}
		for _, a := range analyses {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO analyses (id, timestamp, headline, news_text, verdict, confidence)
				VALUES (?, ?, ?, ?, ?, ?)
			`, a.ID, a.Timestamp, a.Headline, a.NewsText, string(a.Verdict), a.Confidence)
			if err != nil {
				return fmt.Errorf("cache analysis %d: %w", a.ID, err)
			}
		}
		return nil
	})
}

// Recent returns up to limit cached records, newest first.
func (c *AnalysisCache) Recent(ctx context.Context, limit int) ([]models.Analysis, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, timestamp, headline, news_text, verdict, confidence
		FROM analyses ORDER BY timestamp DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("read analysis cache: %w", err)
	}
	defer rows.Close()

	var out []models.Analysis
	for rows.Next() {
		var a models.Analysis
		var verdict string
		if err := rows.Scan(&a.ID, &a.Timestamp, &a.Headline, &a.NewsText, &verdict, &a.Confidence); err != nil {
			return nil, err
		}
		a.Verdict = models.ParseVerdict(verdict)
		out = append(out, a)
	}
	return out, rows.Err()
}
