package estimates

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/oklog/ulid/v2"

	"github.com/rasyidf/hustleflow/internal/pricing"
)

// ErrNotFound is returned when no estimate matches the requested id.
var ErrNotFound = errors.New("estimate not found")

const (
	maxTitleLength = 200
	maxNotesLength = 4000
	timeLayout     = "2006-01-02T15:04:05.000000000Z"
)

// Draft is an estimate that has not been stored yet.
type Draft struct {
	Title  string
	Notes  string
	Input  json.RawMessage
	Result pricing.Result
}

// Estimate is a stored snapshot of a computed quote. Stored results are never
// recalculated.
type Estimate struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Notes     string          `json:"notes"`
	Currency  string          `json:"currency"`
	Total     float64         `json:"total"`
	Input     json.RawMessage `json:"input"`
	Result    pricing.Result  `json:"result"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Summary is the list view of an estimate.
type Summary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Currency  string    `json:"currency"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt"`
}

// Repository stores estimates in SQLite.
type Repository struct {
	db       *sql.DB
	clock    func() time.Time
	newID    func() string
	sanitize *bluemonday.Policy
}

// NewRepository returns a Repository backed by db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		db:       db,
		clock:    time.Now,
		newID:    func() string { return ulid.Make().String() },
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Save sanitizes the free-text fields of d and stores it.
func (r *Repository) Save(ctx context.Context, d Draft) (Estimate, error) {
	input := d.Input
	if len(input) == 0 {
		input = json.RawMessage("{}")
	}
	if !json.Valid(input) {
		return Estimate{}, errors.New("estimate input is not valid JSON")
	}

	est := Estimate{
		ID:        r.newID(),
		Title:     r.clean(d.Title, maxTitleLength),
		Notes:     r.clean(d.Notes, maxNotesLength),
		Currency:  d.Result.Totals.Currency,
		Total:     d.Result.Totals.Total,
		Input:     input,
		Result:    d.Result,
		CreatedAt: r.clock().UTC(),
	}

	resultJSON, err := json.Marshal(est.Result)
	if err != nil {
		return Estimate{}, fmt.Errorf("encode estimate result: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO estimates (id, title, notes, currency, total, input_json, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, est.ID, est.Title, est.Notes, est.Currency, est.Total, string(input), string(resultJSON), est.CreatedAt.Format(timeLayout)); err != nil {
		return Estimate{}, fmt.Errorf("insert estimate: %w", err)
	}

	return est, nil
}

// Get loads the estimate with the given id.
func (r *Repository) Get(ctx context.Context, id string) (Estimate, error) {
	var (
		est                   Estimate
		inputJSON, resultJSON string
		createdAt             string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, notes, currency, total, input_json, result_json, created_at
		FROM estimates
		WHERE id = ?
	`, strings.TrimSpace(id)).Scan(&est.ID, &est.Title, &est.Notes, &est.Currency, &est.Total, &inputJSON, &resultJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Estimate{}, ErrNotFound
	}
	if err != nil {
		return Estimate{}, fmt.Errorf("select estimate: %w", err)
	}

	if err := json.Unmarshal([]byte(resultJSON), &est.Result); err != nil {
		return Estimate{}, fmt.Errorf("decode estimate result: %w", err)
	}
	est.Input = json.RawMessage(inputJSON)
	est.CreatedAt = parseTime(createdAt)
	return est, nil
}

// List returns estimates newest first. A non-empty query filters by title or notes.
func (r *Repository) List(ctx context.Context, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	search := "%" + query + "%"
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, currency, total, created_at
		FROM estimates
		WHERE (? = '' OR title LIKE ? OR notes LIKE ?)
		ORDER BY created_at DESC, id DESC
	`, query, search, search)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	defer rows.Close()

	items := make([]Summary, 0)
	for rows.Next() {
		var item Summary
		var createdAt string
		if err := rows.Scan(&item.ID, &item.Title, &item.Currency, &item.Total, &createdAt); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		item.CreatedAt = parseTime(createdAt)
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate estimates: %w", err)
	}

	return items, nil
}

func (r *Repository) clean(raw string, limit int) string {
	// Titles and notes are plain text, so the policy's entity escaping is undone.
	cleaned := strings.TrimSpace(html.UnescapeString(r.sanitize.Sanitize(raw)))
	if runes := []rune(cleaned); len(runes) > limit {
		cleaned = strings.TrimSpace(string(runes[:limit]))
	}
	return cleaned
}

func parseTime(raw string) time.Time {
	if t, err := time.Parse(timeLayout, raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t
	}
	return time.Time{}
}
