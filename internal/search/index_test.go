package search_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"resellit/internal/search"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
	  CREATE VIRTUAL TABLE item_search USING fts5(
	    item_id UNINDEXED, body, tokenize='porter unicode61'
	  )`)
	require.NoError(t, err)
	return db
}

func upsert(t *testing.T, db *sqlx.DB, ix *search.Index, id int64, name, desc string) {
	t.Helper()
	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, ix.Upsert(tx, id, name, desc))
	require.NoError(t, tx.Commit())
}

func TestUpsertIsIdempotent(t *testing.T) {
	db := memdb(t)
	ix := search.NewIndex(db)

	upsert(t, db, ix, 1, "iPhone 13", "mint condition")
	upsert(t, db, ix, 1, "iPhone 13 Pro", "mint condition")

	n, err := ix.Count(1)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	ids, err := ix.Search("pro")
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids)
}

func TestSearchStemsQueryAndBody(t *testing.T) {
	db := memdb(t)
	ix := search.NewIndex(db)

	upsert(t, db, ix, 7, "Running shoes", "barely used")

	ids, err := ix.Search("run")
	require.NoError(t, err)
	require.Equal(t, []int64{7}, ids)

	ids, err = ix.Search("runs")
	require.NoError(t, err)
	require.Equal(t, []int64{7}, ids)
}

func TestSearchRanksBestFirst(t *testing.T) {
	db := memdb(t)
	ix := search.NewIndex(db)

	// Same term frequency, shorter document scores better under BM25.
	upsert(t, db, ix, 1, "iphone", "")
	upsert(t, db, ix, 2, "iphone case", "fits many phone models and comes with a strap")

	ids, err := ix.Search("iphone")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, ids)
}

func TestSearchQuotesUserInput(t *testing.T) {
	db := memdb(t)
	ix := search.NewIndex(db)

	upsert(t, db, ix, 3, "star projector", "")

	// FTS5 syntax in the raw query must not be interpreted.
	ids, err := ix.Search(`star" * (`)
	require.NoError(t, err)
	require.Equal(t, []int64{3}, ids)

	ids, err = ix.Search("   !!!   ")
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestDeleteRemovesEntry(t *testing.T) {
	db := memdb(t)
	ix := search.NewIndex(db)

	upsert(t, db, ix, 4, "vintage camera", "")

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, ix.Delete(tx, 4))
	require.NoError(t, tx.Commit())

	ids, err := ix.Search("camera")
	require.NoError(t, err)
	require.Empty(t, ids)
}
