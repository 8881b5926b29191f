package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"statboard/models"
)

// Cycle represents one persisted refresh
type Cycle struct {
	CycleID       int64
	CreatedAt     time.Time
	EndpointCount int
	DecodedCount  int
	FallbackCount int
	Unauthorized  bool
	ReportPath    string
}

// Slot represents a persisted slot outcome within a cycle
type Slot struct {
	Name       string
	Confidence string
	Value      sql.NullFloat64
}

// Access represents an endpoint fetch attempt
type Access struct {
	AccessID    int64
	EndpointKey string
	AccessedAt  time.Time
	StatusCode  int
	Outcome     string
	Success     bool
}

// UpsertEndpoint inserts or updates the configured endpoint row for key.
func (db *DB) UpsertEndpoint(key, url, role string) error {
	_, err := db.Exec(`
		INSERT INTO endpoints (key, url, role)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET url = excluded.url, role = excluded.role
	`, key, url, role)
	if err != nil {
		return fmt.Errorf("failed to upsert endpoint: %w", err)
	}
	return nil
}

// RecordAccess records a fetch attempt against an endpoint.
func (db *DB) RecordAccess(key string, statusCode int, outcome string, success bool) error {
	_, err := db.Exec(`
		INSERT INTO endpoint_accesses (endpoint_key, status_code, outcome, success)
		VALUES (?, ?, ?, ?)
	`, key, statusCode, outcome, success)
	if err != nil {
		return fmt.Errorf("failed to record access: %w", err)
	}
	return nil
}

// InsertCycle creates a cycle row and returns its ID.
func (db *DB) InsertCycle(endpointCount, decodedCount, fallbackCount int, unauthorized bool) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO cycles (endpoint_count, decoded_count, fallback_count, unauthorized)
		VALUES (?, ?, ?, ?)
	`, endpointCount, decodedCount, fallbackCount, unauthorized)
	if err != nil {
		return 0, fmt.Errorf("failed to insert cycle: %w", err)
	}

	cycleID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get cycle ID: %w", err)
	}
	return cycleID, nil
}

// SetCycleReportPath records where the rendered report for a cycle was written.
func (db *DB) SetCycleReportPath(cycleID int64, path string) error {
	_, err := db.Exec("UPDATE cycles SET report_path = ? WHERE cycle_id = ?", path, cycleID)
	if err != nil {
		return fmt.Errorf("failed to set report path: %w", err)
	}
	return nil
}

// RecordSlot persists one slot outcome for a cycle. value may be nil for
// non-metric slots.
func (db *DB) RecordSlot(cycleID int64, name string, confidence models.Confidence, value *float64) error {
	var v interface{}
	if value != nil {
		v = *value
	}
	_, err := db.Exec(`
		INSERT INTO slots (cycle_id, name, confidence, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(cycle_id, name) DO UPDATE SET confidence = excluded.confidence, value = excluded.value
	`, cycleID, name, string(confidence), v)
	if err != nil {
		return fmt.Errorf("failed to record slot: %w", err)
	}
	return nil
}

// InsertContentRecord persists one normalized content row under a slot.
func (db *DB) InsertContentRecord(cycleID int64, slot string, rec models.ContentRecord) error {
	var createdAt interface{}
	if rec.CreatedAt != nil {
		createdAt = rec.CreatedAt.UTC()
	}
	_, err := db.Exec(`
		INSERT INTO content_records (cycle_id, slot, source_id, title, type, created_at_raw, created_at, uses, language)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, cycleID, slot, rec.ID, rec.Title, rec.Type, rec.CreatedAtRaw, createdAt, rec.Uses, rec.Language)
	if err != nil {
		return fmt.Errorf("failed to insert content record: %w", err)
	}
	return nil
}

// UpsertUser inserts a user or refreshes an existing one. The earliest
// first_seen instant is kept across cycles.
func (db *DB) UpsertUser(user models.UserRecord) error {
	_, err := db.Exec(`
		INSERT INTO users (user_key, name, email, first_seen)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_key) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			first_seen = MIN(first_seen, excluded.first_seen)
	`, user.Key, user.Name, user.Email, user.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// GetCycleByID retrieves a cycle by its ID
func (db *DB) GetCycleByID(cycleID int64) (*Cycle, error) {
	var c Cycle
	var reportPath sql.NullString
	err := db.QueryRow(`
		SELECT cycle_id, created_at, endpoint_count, decoded_count, fallback_count, unauthorized, report_path
		FROM cycles
		WHERE cycle_id = ?
	`, cycleID).Scan(&c.CycleID, &c.CreatedAt, &c.EndpointCount, &c.DecodedCount, &c.FallbackCount, &c.Unauthorized, &reportPath)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cycle %d not found", cycleID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cycle: %w", err)
	}
	if reportPath.Valid {
		c.ReportPath = reportPath.String
	}
	return &c, nil
}

// ListCycles retrieves cycles ordered by most recent first
func (db *DB) ListCycles(limit int) ([]Cycle, error) {
	query := `
		SELECT cycle_id, created_at, endpoint_count, decoded_count, fallback_count, unauthorized, report_path
		FROM cycles
		ORDER BY created_at DESC, cycle_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	defer rows.Close()

	var cycles []Cycle
	for rows.Next() {
		var c Cycle
		var reportPath sql.NullString
		if err := rows.Scan(&c.CycleID, &c.CreatedAt, &c.EndpointCount, &c.DecodedCount, &c.FallbackCount, &c.Unauthorized, &reportPath); err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		if reportPath.Valid {
			c.ReportPath = reportPath.String
		}
		cycles = append(cycles, c)
	}

	return cycles, nil
}

// GetSlots retrieves all slot outcomes for a cycle, ordered by name
func (db *DB) GetSlots(cycleID int64) ([]Slot, error) {
	rows, err := db.Query(`
		SELECT name, confidence, value
		FROM slots
		WHERE cycle_id = ?
		ORDER BY name
	`, cycleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get slots: %w", err)
	}
	defer rows.Close()

	var slots []Slot
	for rows.Next() {
		var s Slot
		if err := rows.Scan(&s.Name, &s.Confidence, &s.Value); err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slots = append(slots, s)
	}

	return slots, nil
}

// GetContentRecords retrieves the persisted content rows for one cycle slot
func (db *DB) GetContentRecords(cycleID int64, slot string) ([]models.ContentRecord, error) {
	rows, err := db.Query(`
		SELECT source_id, title, type, created_at_raw, created_at, uses, language
		FROM content_records
		WHERE cycle_id = ? AND slot = ?
		ORDER BY record_id
	`, cycleID, slot)
	if err != nil {
		return nil, fmt.Errorf("failed to get content records: %w", err)
	}
	defer rows.Close()

	var records []models.ContentRecord
	for rows.Next() {
		var rec models.ContentRecord
		var raw, language sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Type, &raw, &createdAt, &rec.Uses, &language); err != nil {
			return nil, fmt.Errorf("failed to scan content record: %w", err)
		}
		if raw.Valid {
			rec.CreatedAtRaw = raw.String
		}
		if createdAt.Valid {
			t := createdAt.Time
			rec.CreatedAt = &t
		}
		if language.Valid {
			rec.Language = language.String
		}
		records = append(records, rec)
	}

	return records, nil
}

// ListUsers retrieves all known users ordered by first sighting
func (db *DB) ListUsers() ([]models.UserRecord, error) {
	rows, err := db.Query(`
		SELECT user_key, name, email, first_seen
		FROM users
		ORDER BY first_seen, user_key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []models.UserRecord
	for rows.Next() {
		var u models.UserRecord
		var email sql.NullString
		if err := rows.Scan(&u.Key, &u.Name, &email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if email.Valid {
			u.Email = email.String
		}
		users = append(users, u)
	}

	return users, nil
}

// ListAccesses retrieves recent fetch attempts for an endpoint key, newest first
func (db *DB) ListAccesses(key string, limit int) ([]Access, error) {
	query := `
		SELECT access_id, endpoint_key, accessed_at, status_code, outcome, success
		FROM endpoint_accesses
		WHERE endpoint_key = ?
		ORDER BY accessed_at DESC, access_id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := db.Query(query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list accesses: %w", err)
	}
	defer rows.Close()

	var accesses []Access
	for rows.Next() {
		var a Access
		var status sql.NullInt64
		var outcome sql.NullString
		if err := rows.Scan(&a.AccessID, &a.EndpointKey, &a.AccessedAt, &status, &outcome, &a.Success); err != nil {
			return nil, fmt.Errorf("failed to scan access: %w", err)
		}
		if status.Valid {
			a.StatusCode = int(status.Int64)
		}
		if outcome.Valid {
			a.Outcome = outcome.String
		}
		accesses = append(accesses, a)
	}

	return accesses, nil
}
