// Package search maintains the per-item full-text index and runs relevance
// queries against it. The index is an SQLite FTS5 table (porter stemming)
// living in the application database, so index maintenance participates in
// the same transaction as the item mutation that triggered it.
package search

import (
	"strings"
	"unicode"

	"github.com/jmoiron/sqlx"
)

type Index struct {
	db *sqlx.DB
}

func NewIndex(db *sqlx.DB) *Index { return &Index{db: db} }

// Upsert replaces the indexed text for an item, inserting if absent.
// FTS5 has no REPLACE, so this is delete-then-insert; idempotent for the
// same id+content. An empty description is fine.
func (ix *Index) Upsert(tx *sqlx.Tx, itemID int64, name, description string) error {
	if _, err := tx.Exec(`DELETE FROM item_search WHERE item_id = ?`, itemID); err != nil {
		return err
	}
	body := strings.TrimSpace(name + " " + description)
	_, err := tx.Exec(`INSERT INTO item_search(item_id, body) VALUES (?, ?)`, itemID, body)
	return err
}

// Delete removes the entry for an item. Called only from the item delete
// transaction; entries never outlive their item.
func (ix *Index) Delete(tx *sqlx.Tx, itemID int64) error {
	_, err := tx.Exec(`DELETE FROM item_search WHERE item_id = ?`, itemID)
	return err
}

// Search returns item ids matching the query ordered best-first by BM25.
// A query that normalizes to nothing matches nothing.
func (ix *Index) Search(query string) ([]int64, error) {
	match := matchQuery(query)
	if match == "" {
		return nil, nil
	}
	// bm25() is negative, lower = better, so ascending order is best-first.
	var ids []int64
	err := ix.db.Select(&ids, `
	  SELECT item_id FROM item_search
	  WHERE item_search MATCH ?
	  ORDER BY bm25(item_search)
	`, match)
	return ids, err
}

// Count reports how many entries exist for an item id.
func (ix *Index) Count(itemID int64) (int, error) {
	var n int
	err := ix.db.Get(&n, `SELECT COUNT(*) FROM item_search WHERE item_id = ?`, itemID)
	return n, err
}

// matchQuery rewrites free text into an FTS5 MATCH expression: lowercase,
// split on non-alphanumerics, each token quoted so user input can never be
// read as FTS5 syntax. Tokens are ANDed, like plain-text query parsers.
func matchQuery(q string) string {
	fields := strings.FieldsFunc(strings.ToLower(q), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(fields) == 0 {
		return ""
	}
	quoted := make([]string, 0, len(fields))
	for _, f := range fields {
		quoted = append(quoted, `"`+f+`"`)
	}
	return strings.Join(quoted, " ")
}
