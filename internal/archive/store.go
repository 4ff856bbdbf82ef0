// Package archive persists uncertainty samples and observation provenance in
// SQLite for the inspection and replay tooling. The engine core never
// touches it: persistence stays on the tooling side of the boundary.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS uncertainty_samples (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	identity        TEXT NOT NULL,
	seq             INTEGER NOT NULL,
	value           REAL NOT NULL,
	phase           TEXT NOT NULL,
	components_json TEXT,
	created_at      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_samples_identity ON uncertainty_samples(identity);

CREATE TABLE IF NOT EXISTS observation_log (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	identity      TEXT NOT NULL,
	catalyst_kind TEXT,
	decision      TEXT NOT NULL,
	reason        TEXT,
	created_at    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_observations_identity ON observation_log(identity);
`

// #endregion schema

// #region rows
// SampleRow is one archived uncertainty sample.
type SampleRow struct {
	Identity   string
	Seq        int
	Value      float64
	Phase      string
	Components map[string]float64
	CreatedAt  time.Time
}

// ObservationRow is one archived observation decision.
type ObservationRow struct {
	Identity     string
	CatalystKind string
	Decision     string // "aggregated" | "warming" | "acknowledged"
	Reason       string
	CreatedAt    time.Time
}

// #endregion rows

// #region archive-struct
// Archive manages the sample and observation tables in SQLite.
type Archive struct {
	db *sql.DB
}

// #endregion archive-struct

// #region constructor
// NewArchive opens a SQLite database and runs migrations.
func NewArchive(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Archive{db: db}, nil
}

// Close closes the underlying database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// #endregion constructor

// #region record

// RecordSample appends one uncertainty sample for an identity.
func (a *Archive) RecordSample(row SampleRow) error {
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	var compJSON interface{}
	if len(row.Components) > 0 {
		data, err := json.Marshal(row.Components)
		if err != nil {
			return fmt.Errorf("marshal components: %w", err)
		}
		compJSON = string(data)
	}
	_, err := a.db.Exec(
		`INSERT INTO uncertainty_samples (identity, seq, value, phase, components_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		row.Identity, row.Seq, row.Value, row.Phase, compJSON,
		row.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert sample: %w", err)
	}
	return nil
}

// RecordObservation appends one observation decision for an identity.
func (a *Archive) RecordObservation(row ObservationRow) error {
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	_, err := a.db.Exec(
		`INSERT INTO observation_log (identity, catalyst_kind, decision, reason, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		row.Identity, nullIfEmpty(row.CatalystKind), row.Decision,
		nullIfEmpty(row.Reason), row.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert observation: %w", err)
	}
	return nil
}

// #endregion record

// #region list

// ListSamples returns the most recent samples for an identity, newest first.
func (a *Archive) ListSamples(identity string, limit int) ([]SampleRow, error) {
	rows, err := a.db.Query(
		`SELECT identity, seq, value, phase, components_json, created_at
		 FROM uncertainty_samples WHERE identity = ?
		 ORDER BY seq DESC LIMIT ?`, identity, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}
	defer rows.Close()

	var out []SampleRow
	for rows.Next() {
		var row SampleRow
		var compJSON sql.NullString
		var createdStr string
		if err := rows.Scan(&row.Identity, &row.Seq, &row.Value, &row.Phase, &compJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		if compJSON.Valid {
			if err := json.Unmarshal([]byte(compJSON.String), &row.Components); err != nil {
				return nil, fmt.Errorf("unmarshal components: %w", err)
			}
		}
		row.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, row)
	}
	return out, rows.Err()
}

// ListObservations returns the most recent observation decisions for an
// identity, newest first.
func (a *Archive) ListObservations(identity string, limit int) ([]ObservationRow, error) {
	rows, err := a.db.Query(
		`SELECT identity, catalyst_kind, decision, reason, created_at
		 FROM observation_log WHERE identity = ?
		 ORDER BY id DESC LIMIT ?`, identity, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list observations: %w", err)
	}
	defer rows.Close()

	var out []ObservationRow
	for rows.Next() {
		var row ObservationRow
		var kind, reason sql.NullString
		var createdStr string
		if err := rows.Scan(&row.Identity, &kind, &row.Decision, &reason, &createdStr); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		row.CatalystKind = kind.String
		row.Reason = reason.String
		row.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		out = append(out, row)
	}
	return out, rows.Err()
}

// Identities lists every identity with at least one archived sample.
func (a *Archive) Identities() ([]string, error) {
	rows, err := a.db.Query(`SELECT DISTINCT identity FROM uncertainty_samples ORDER BY identity`)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var identity string
		if err := rows.Scan(&identity); err != nil {
			return nil, fmt.Errorf("scan identity: %w", err)
		}
		out = append(out, identity)
	}
	return out, rows.Err()
}

// #endregion list

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
