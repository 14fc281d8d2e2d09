// internal/words/sqlite.go
//
// Read-only SQLite dictionary source.
// The database is expected to contain:
//
//   CREATE TABLE words (word TEXT NOT NULL);
//
// Rows are read in insertion (rowid) order, which becomes dictionary order.
// The file is opened with mode=ro; the solver never writes to it.

package words

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

// openDB opens an existing SQLite file read-only with a busy timeout.
func openDB(path string) (*sql.DB, error) {
	// sqlite would silently create a missing file; refuse instead.
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}
	return db, nil
}

// readWordDB loads every row of the words table.
func readWordDB(ctx context.Context, path string) ([]string, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT word FROM words ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	log.Debug().Str("db", path).Int("rows", len(out)).Msg("read dictionary table")
	return out, nil
}
