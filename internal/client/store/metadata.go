package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/newsscope/newsscope/internal/dbx"
)

const sessionCookiesKey = "session_cookies"

// MetadataRepository is a small key/value table for client state that must
// survive restarts.
type MetadataRepository struct {
	db dbx.DBTX
}

func NewMetadataRepository(db dbx.DBTX) *MetadataRepository {
	return &MetadataRepository{db: db}
}

// Get returns nil (not an error) for a missing key.
func (r *MetadataRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get metadata[%s]: %w", key, err)
	}
	return value, nil
}

func (r *MetadataRepository) Set(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO metadata (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set metadata[%s]: %w", key, err)
	}
	return nil
}

func (r *MetadataRepository) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete metadata[%s]: %w", key, err)
	}
	return nil
}

// storedCookie is the persisted subset of http.Cookie the session needs.
type storedCookie struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Path    string `json:"path,omitempty"`
	Domain  string `json:"domain,omitempty"`
	Expires string `json:"expires,omitempty"`
}

// SaveSessionCookies persists the backend session cookies. An empty slice
// clears the stored session.
func (r *MetadataRepository) SaveSessionCookies(ctx context.Context, cookies []*http.Cookie) error {
	if len(cookies) == 0 {
		return r.Delete(ctx, sessionCookiesKey)
	}
	out := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		sc := storedCookie{Name: c.Name, Value: c.Value, Path: c.Path, Domain: c.Domain}
		if !c.Expires.IsZero() {
			sc.Expires = c.Expires.Format(http.TimeFormat)
		}
		out = append(out, sc)
	}
	data, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return r.Set(ctx, sessionCookiesKey, data)
}

// LoadSessionCookies returns the persisted session cookies, nil when none.
func (r *MetadataRepository) LoadSessionCookies(ctx context.Context) ([]*http.Cookie, error) {
	data, err := r.Get(ctx, sessionCookiesKey)
	if err != nil || data == nil {
		return nil, err
	}
	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("decode stored session: %w", err)
	}
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		c := &http.Cookie{Name: sc.Name, Value: sc.Value, Path: sc.Path, Domain: sc.Domain}
		if sc.Expires != "" {
			if t, err := http.ParseTime(sc.Expires); err == nil {
				c.Expires = t
			}
		}
		cookies = append(cookies, c)
	}
	return cookies, nil
}
