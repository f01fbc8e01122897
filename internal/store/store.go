// Package store persists profiles, trending research, and session state in
// a local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite cache database.
type DB struct{ sql *sql.DB }

func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		return nil, err
	}
	db := &DB{sql: d}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS profiles (
	  username TEXT PRIMARY KEY,
	  payload TEXT NOT NULL,
	  fetched_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS trending (
	  topic_key TEXT PRIMARY KEY,
	  topic TEXT NOT NULL,
	  raw_response TEXT NOT NULL,
	  parsed TEXT NOT NULL,
	  cached_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_trending_cached ON trending(cached_at);
	CREATE TABLE IF NOT EXISTS session (
	  id INTEGER PRIMARY KEY CHECK (id=1),
	  last_username TEXT,
	  last_action TEXT,
	  updated_at INTEGER NOT NULL
	);
	`)
	return err
}

// ErrNotFound is reported as sql.ErrNoRows from the underlying queries;
// callers treat a miss as "fetch fresh", never as a failure.

// PutProfile stores a profile document as JSON, stamped now.
func (d *DB) PutProfile(ctx context.Context, username string, profile any) error {
	b, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO profiles(username, payload, fetched_at) VALUES(?,?,?)
		 ON CONFLICT(username) DO UPDATE SET payload=excluded.payload, fetched_at=excluded.fetched_at`,
		normalizeUsername(username), string(b), time.Now().UTC().Unix())
	return err
}

// GetProfile loads a cached profile into out if it is younger than ttl.
// Returns false on a miss or an expired entry.
func (d *DB) GetProfile(ctx context.Context, username string, ttl time.Duration, out any) (bool, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM profiles WHERE username=?`, normalizeUsername(username))
	var payload string
	var fetched int64
	if err := row.Scan(&payload, &fetched); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	if time.Since(time.Unix(fetched, 0)) > ttl {
		return false, nil
	}
	return true, json.Unmarshal([]byte(payload), out)
}

// TrendingEntry is one cached research result for a topic.
type TrendingEntry struct {
	Topic       string          `json:"topic"`
	RawResponse string          `json:"raw_response"`
	Parsed      json.RawMessage `json:"parsed"`
	CachedAt    time.Time       `json:"cached_at"`
}

// Decode unmarshals the parsed payload into out.
func (e *TrendingEntry) Decode(out any) error {
	return json.Unmarshal(e.Parsed, out)
}

// PutTrending caches a research response for a topic.
func (d *DB) PutTrending(ctx context.Context, topic, rawResponse string, parsed any) error {
	pb, err := json.Marshal(parsed)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO trending(topic_key, topic, raw_response, parsed, cached_at) VALUES(?,?,?,?,?)
		 ON CONFLICT(topic_key) DO UPDATE SET topic=excluded.topic, raw_response=excluded.raw_response,
		 parsed=excluded.parsed, cached_at=excluded.cached_at`,
		topicKey(topic), topic, rawResponse, string(pb), time.Now().UTC().Unix())
	return err
}

// GetTrending returns the cached entry for topic if younger than ttl.
func (d *DB) GetTrending(ctx context.Context, topic string, ttl time.Duration) (*TrendingEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT topic, raw_response, parsed, cached_at FROM trending WHERE topic_key=?`, topicKey(topic))
	var e TrendingEntry
	var parsed string
	var cached int64
	if err := row.Scan(&e.Topic, &e.RawResponse, &parsed, &cached); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	e.CachedAt = time.Unix(cached, 0).UTC()
	if time.Since(e.CachedAt) > ttl {
		return nil, nil
	}
	e.Parsed = json.RawMessage(parsed)
	return &e, nil
}

// TrendingSummary lists a cached topic without its payload.
type TrendingSummary struct {
	Topic    string    `json:"topic"`
	CachedAt time.Time `json:"cached_at"`
}

// ListTrending returns all cached topics, most recent first.
func (d *DB) ListTrending(ctx context.Context) ([]TrendingSummary, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT topic, cached_at FROM trending ORDER BY cached_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []TrendingSummary
	for rows.Next() {
		var s TrendingSummary
		var cached int64
		if err := rows.Scan(&s.Topic, &cached); err != nil {
			return nil, err
		}
		s.CachedAt = time.Unix(cached, 0).UTC()
		out = append(out, s)
	}
	return out, rows.Err()
}

// Session is the resumable state from the previous run.
type Session struct {
	LastUsername string    `json:"last_username"`
	LastAction   string    `json:"last_action"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SaveSession merges non-empty fields into the stored session row.
func (d *DB) SaveSession(ctx context.Context, username, action string) error {
	prev, err := d.LoadSession(ctx)
	if err != nil {
		return err
	}
	if username == "" {
		username = prev.LastUsername
	}
	if action == "" {
		action = prev.LastAction
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO session(id, last_username, last_action, updated_at) VALUES(1,?,?,?)
		 ON CONFLICT(id) DO UPDATE SET last_username=excluded.last_username,
		 last_action=excluded.last_action, updated_at=excluded.updated_at`,
		username, action, time.Now().UTC().Unix())
	return err
}

// LoadSession returns the stored session, zero-valued when none exists.
func (d *DB) LoadSession(ctx context.Context) (Session, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT COALESCE(last_username,''), COALESCE(last_action,''), updated_at FROM session WHERE id=1`)
	var s Session
	var updated int64
	if err := row.Scan(&s.LastUsername, &s.LastAction, &updated); err != nil {
		if err == sql.ErrNoRows {
			return Session{}, nil
		}
		return Session{}, err
	}
	s.UpdatedAt = time.Unix(updated, 0).UTC()
	return s, nil
}

func normalizeUsername(u string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(u), "@"))
}

func topicKey(topic string) string {
	k := strings.ToLower(strings.TrimSpace(topic))
	k = strings.ReplaceAll(k, " ", "_")
	k = strings.ReplaceAll(k, "/", "_")
	if len(k) > 60 {
		k = k[:60]
	}
	return k
}
