// Package history journals files rewritten by tsedit so a rewrite can be
// reversed with undo. Entries are persisted to SQLite, newest last.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite" // register sqlite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS file_history (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	file_path   TEXT NOT NULL,
	command     TEXT NOT NULL,
	old_content BLOB NOT NULL,
	created     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_history_file ON file_history(file_path, id);
`

// ErrNothingToUndo is returned by Undo when a file has no journal entries.
var ErrNothingToUndo = errors.New("nothing to undo")

// Entry is one recorded rewrite.
type Entry struct {
	ID      int64
	File    string
	Command string
	Created time.Time
}

// Journal records file contents before they are rewritten.
type Journal struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens a journal database at the given path.
func Open(dbPath string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the database. Safe on a nil receiver.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}

// Record stores the content of file before command rewrote it. A nil
// journal records nothing.
func (j *Journal) Record(file, command string, oldContent []byte) error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	path, err := filepath.Abs(file)
	if err != nil {
		return err
	}
	if oldContent == nil {
		oldContent = []byte{}
	}
	_, err = j.db.Exec(
		`INSERT INTO file_history (file_path, command, old_content, created) VALUES (?, ?, ?, ?)`,
		path, command, oldContent, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("record %s: %w", file, err)
	}
	return nil
}

// Undo restores the most recent recorded content of file and removes that
// entry. It returns the entry that was undone.
func (j *Journal) Undo(file string) (Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	path, err := filepath.Abs(file)
	if err != nil {
		return Entry{}, err
	}

	var (
		e       Entry
		created int64
		content []byte
	)
	err = j.db.QueryRow(
		`SELECT id, file_path, command, old_content, created FROM file_history
		 WHERE file_path = ? ORDER BY id DESC LIMIT 1`,
		path,
	).Scan(&e.ID, &e.File, &e.Command, &content, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%s: %w", file, ErrNothingToUndo)
	}
	if err != nil {
		return Entry{}, err
	}
	e.Created = time.Unix(created, 0)

	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return Entry{}, fmt.Errorf("undo: restore %s: %w", file, err)
	}

	if _, err := j.db.Exec(`DELETE FROM file_history WHERE id = ?`, e.ID); err != nil {
		log.Warn().Err(err).Int64("id", e.ID).Msg("failed to delete undone history entry")
	}
	return e, nil
}

// Entries lists the recorded rewrites of file, newest first.
func (j *Journal) Entries(file string) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	path, err := filepath.Abs(file)
	if err != nil {
		return nil, err
	}
	rows, err := j.db.Query(
		`SELECT id, file_path, command, created FROM file_history
		 WHERE file_path = ? ORDER BY id DESC`,
		path,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var created int64
		if err := rows.Scan(&e.ID, &e.File, &e.Command, &created); err != nil {
			log.Warn().Err(err).Msg("failed to scan history row")
			continue
		}
		e.Created = time.Unix(created, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Prune keeps the newest keep entries per file and deletes the rest.
func (j *Journal) Prune(keep int) {
	if j == nil || keep <= 0 {
		return
	}
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.Exec(
		`DELETE FROM file_history WHERE id IN (
			SELECT id FROM (
				SELECT id, ROW_NUMBER() OVER (PARTITION BY file_path ORDER BY id DESC) AS rn
				FROM file_history
			) WHERE rn > ?
		)`,
		keep,
	)
	if err != nil {
		log.Warn().Err(err).Int("keep", keep).Msg("failed to prune history")
	}
}
