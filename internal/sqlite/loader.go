// JSONL loading on Attach.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// collectionFiles lists the <collection>.jsonl files in dataDir, sorted by
// name. Files whose base name is not a valid identifier are ignored.
func collectionFiles(dataDir string) ([]string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), jsonlExt) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), jsonlExt)
		if !types.ValidIdentifier(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// loadAllJSONL reads every collection file in dataDir into the records
// table. Loading is transactional: all succeed or the database remains
// empty. Malformed lines, rows without an id and duplicate ids are skipped.
func loadAllJSONL(db *sql.DB, dataDir string) error {
	names, err := collectionFiles(dataDir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", dataDir, err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, name := range names {
		records, err := readJSONL(filepath.Join(dataDir, name+jsonlExt))
		if err != nil {
			return fmt.Errorf("reading %s%s: %w", name, jsonlExt, err)
		}
		if len(records) == 0 {
			continue
		}
		if err := insertRecords(tx, name, records); err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// insertRecords inserts parsed JSONL records for one collection.
func insertRecords(tx *sql.Tx, name string, records []json.RawMessage) error {
	stmt, err := tx.Prepare("INSERT OR IGNORE INTO records (collection, row_id, body) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		var row types.Row
		if err := json.Unmarshal(rec, &row); err != nil || row == nil {
			continue
		}
		id := types.RowID(row)
		if id == "" {
			continue
		}
		if _, err := stmt.Exec(name, id, string(rec)); err != nil {
			return fmt.Errorf("inserting %s: %w", id, err)
		}
	}
	return nil
}
