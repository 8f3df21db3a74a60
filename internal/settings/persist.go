package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// SQLitePersister keeps the settings document in the settings_documents table.
type SQLitePersister struct {
	db        *sql.DB
	namespace string
}

// NewSQLitePersister stores the document under namespace (Namespace when empty).
func NewSQLitePersister(db *sql.DB, namespace string) *SQLitePersister {
	if namespace == "" {
		namespace = Namespace
	}
	return &SQLitePersister{db: db, namespace: namespace}
}

// Load reads the stored document. Unknown fields are ignored and missing ones keep
// their default values.
func (p *SQLitePersister) Load(ctx context.Context) (Settings, bool, error) {
	var document string
	err := p.db.QueryRowContext(ctx, `
		SELECT document
		FROM settings_documents
		WHERE namespace = ?
	`, p.namespace).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return Settings{}, false, nil
	}
	if err != nil {
		return Settings{}, false, fmt.Errorf("query settings document: %w", err)
	}

	s, err := Decode([]byte(document))
	if err != nil {
		return Settings{}, false, err
	}
	return s, true, nil
}

// Save upserts the document.
func (p *SQLitePersister) Save(ctx context.Context, s Settings) error {
	document, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings document: %w", err)
	}

	if _, err := p.db.ExecContext(ctx, `
		INSERT INTO settings_documents (namespace, document)
		VALUES (?, ?)
		ON CONFLICT(namespace) DO UPDATE SET
			document = excluded.document,
			updated_at = CURRENT_TIMESTAMP
	`, p.namespace, string(document)); err != nil {
		return fmt.Errorf("upsert settings document: %w", err)
	}
	return nil
}

// Decode parses a stored settings document over the defaults.
func Decode(document []byte) (Settings, error) {
	s := Defaults()
	// Maps are replaced, not merged into the defaults; normalize refills missing ones.
	s.ExchangeRates = nil
	s.ParameterBiases = nil
	s.ParameterDefaults = nil
	if err := json.Unmarshal(document, &s); err != nil {
		return Settings{}, fmt.Errorf("decode settings document: %w", err)
	}
	s.normalize()
	return s, nil
}

// MemoryPersister keeps the document in memory. Saves fail with Err when it is set.
type MemoryPersister struct {
	mu       sync.Mutex
	document []byte
	saves    int
	Err      error
}

// Load decodes the last saved document, if any.
func (m *MemoryPersister) Load(context.Context) (Settings, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.document == nil {
		return Settings{}, false, nil
	}
	s, err := Decode(m.document)
	return s, err == nil, err
}

// Save encodes s the same way SQLitePersister does.
func (m *MemoryPersister) Save(_ context.Context, s Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	document, err := json.Marshal(s)
	if err != nil {
		return err
	}
	m.document = document
	m.saves++
	return nil
}

// Saves reports how many documents were written.
func (m *MemoryPersister) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
