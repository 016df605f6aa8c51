package keyringsqlite

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/outfitly/outfitly-cli/session"
)

var _ session.Keyring = (*Keyring)(nil)

// Keyring persists credentials in a single-table SQLite database under
// the user's data directory.
type Keyring struct {
	db *sql.DB
}

// Open creates the data directory and credential table if needed.
// WAL plus a busy timeout keeps overlapping CLI invocations from
// tripping over each other.
func Open(dir string) (*Keyring, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "keyringsqlite.Open mkdir")
	}

	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", filepath.Join(dir, "credentials.sqlite"))
	if err != nil {
		return nil, errors.Wrap(err, "keyringsqlite.Open sql.Open")
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "keyringsqlite.Open %s", pragma)
		}
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS credentials (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "keyringsqlite.Open create table")
	}

	return &Keyring{db: db}, nil
}

func (k *Keyring) Get(key string) (string, bool, error) {
	var value string
	err := k.db.QueryRow(`SELECT value FROM credentials WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "keyringsqlite.Get")
	}
	return value, true, nil
}

func (k *Keyring) Set(key, value string) error {
	_, err := k.db.Exec(
		`INSERT INTO credentials (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return errors.Wrap(err, "keyringsqlite.Set")
}

func (k *Keyring) Delete(key string) error {
	_, err := k.db.Exec(`DELETE FROM credentials WHERE key = ?`, key)
	return errors.Wrap(err, "keyringsqlite.Delete")
}

func (k *Keyring) Close() error {
	return k.db.Close()
}
