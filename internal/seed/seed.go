package seed

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rasyidf/hustleflow/internal/settings"
)

// Config contains the values required by startup seed.
type Config struct {
	Namespace       string
	Currency        string
	DefaultBaseRate float64
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureSettings(ctx, tx, cfg, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureSettings(ctx context.Context, tx *sql.Tx, cfg Config, stats *Stats) error {
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = settings.Namespace
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM settings_documents WHERE namespace = ? LIMIT 1)`, namespace).Scan(&exists); err != nil {
		return fmt.Errorf("check settings document existence: %w", err)
	}
	if exists {
		return nil
	}

	doc := settings.Defaults()
	if code := strings.ToUpper(strings.TrimSpace(cfg.Currency)); code != "" && doc.ExchangeRates.Has(code) {
		doc.Currency = code
	}
	if cfg.DefaultBaseRate > 0 {
		doc.DefaultBaseRate = cfg.DefaultBaseRate
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode default settings: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO settings_documents (namespace, document)
		VALUES (?, ?)
	`, namespace, string(encoded)); err != nil {
		return fmt.Errorf("insert default settings: %w", err)
	}
	stats.Inserts++
	return nil
}
