package repos

import (
	"github.com/jmoiron/sqlx"

	"resellit/internal/domain"
)

type ItemRepo struct{ db *sqlx.DB }

func NewItemRepo(db *sqlx.DB) *ItemRepo { return &ItemRepo{db: db} }

// freshnessWindow bounds listing visibility: anything older never shows up
// in any listing or search result.
const freshnessWindow = "-7 days"

const baseSelect = `
  SELECT i.id, i.name, i.image, i.date, i.price, i.currency,
         c.name AS category, i.contact, i.description, i.user_id,
         COALESCE(u.username,'') AS username, i.is_sold
  FROM items i
  JOIN categories c ON c.id = i.category_id
  JOIN users u ON u.id = i.user_id`

const freshPredicate = ` WHERE i.date >= datetime('now', '` + freshnessWindow + `')`

// ListFilter describes one page worth of constraints. OrderBy/OrderDir are
// trusted SQL fragments: the service resolves them through the sortable
// attribute allow-list before they get here.
type ListFilter struct {
	Page       int
	Limit      int
	CategoryID *int64
	UserID     *int64
	IDs        []int64
	UnsoldOnly bool
	OrderBy    string
	OrderDir   string
}

// ListPage fetches one page plus a lookahead row. The extra row only signals
// that another page exists; it is never returned.
func (r *ItemRepo) ListPage(f ListFilter) ([]domain.ItemView, bool, error) {
	q := baseSelect + freshPredicate
	args := []any{}
	if f.CategoryID != nil {
		q += ` AND i.category_id = ?`
		args = append(args, *f.CategoryID)
	}
	if f.UserID != nil {
		q += ` AND i.user_id = ?`
		args = append(args, *f.UserID)
	}
	if f.UnsoldOnly {
		q += ` AND i.is_sold = 0`
	}
	if f.OrderBy != "" {
		q += ` ORDER BY ` + f.OrderBy + ` ` + f.OrderDir
	} else {
		q += ` ORDER BY i.date DESC`
	}
	q += ` LIMIT ? OFFSET ?`
	args = append(args, f.Limit+1, (f.Page-1)*f.Limit)

	var rows []domain.ItemView
	if err := r.db.Select(&rows, q, args...); err != nil {
		return nil, false, err
	}
	next := false
	if len(rows) > f.Limit {
		rows = rows[:f.Limit]
		next = true
	}
	return rows, next, nil
}

// ListByIDs pages over an explicit id set (the search path). Freshness and
// the unsold regime narrow the set first, then pagination is computed over
// the survivors, so a page never silently shrinks below the limit. With no
// explicit ordering the caller's id order (relevance rank) is preserved.
func (r *ItemRepo) ListByIDs(f ListFilter) ([]domain.ItemView, bool, error) {
	if len(f.IDs) == 0 {
		return nil, false, nil
	}
	q := baseSelect + freshPredicate + ` AND i.id IN (?)`
	if f.UnsoldOnly {
		q += ` AND i.is_sold = 0`
	}
	if f.OrderBy != "" {
		q += ` ORDER BY ` + f.OrderBy + ` ` + f.OrderDir
	}
	query, args, err := sqlx.In(q, f.IDs)
	if err != nil {
		return nil, false, err
	}
	var rows []domain.ItemView
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, false, err
	}

	if f.OrderBy == "" {
		byID := make(map[int64]domain.ItemView, len(rows))
		for _, it := range rows {
			byID[it.ID] = it
		}
		ordered := make([]domain.ItemView, 0, len(rows))
		for _, id := range f.IDs {
			if it, ok := byID[id]; ok {
				ordered = append(ordered, it)
			}
		}
		rows = ordered
	}

	offset := (f.Page - 1) * f.Limit
	if offset >= len(rows) {
		return nil, false, nil
	}
	end := offset + f.Limit
	next := len(rows) > end
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], next, nil
}

// GetView fetches one fresh item with its joins; sql.ErrNoRows for missing
// or stale items.
func (r *ItemRepo) GetView(id int64) (domain.ItemView, error) {
	var v domain.ItemView
	err := r.db.Get(&v, baseSelect+freshPredicate+` AND i.id = ?`, id)
	return v, err
}

// GetViewAny is GetView without the freshness window, for flows that must
// see stale rows (marking sold, internal lookups).
func (r *ItemRepo) GetViewAny(id int64) (domain.ItemView, error) {
	var v domain.ItemView
	err := r.db.Get(&v, baseSelect+` WHERE i.id = ?`, id)
	return v, err
}

// ---------- mutations; all run inside the caller's transaction ----------

func (r *ItemRepo) GetTx(tx *sqlx.Tx, id int64) (domain.Item, error) {
	var it domain.Item
	err := tx.Get(&it, `
	  SELECT id, name, image, date, price, category_id, contact,
	         description, user_id, currency, is_sold
	  FROM items WHERE id = ?`, id)
	return it, err
}

func (r *ItemRepo) Insert(tx *sqlx.Tx, it domain.Item) (int64, error) {
	res, err := tx.Exec(`
	  INSERT INTO items(name, image, date, price, category_id, contact, description, user_id, currency, is_sold)
	  VALUES (?, ?, datetime('now'), ?, ?, ?, ?, ?, ?, 0)
	`, it.Name, it.Image, it.Price, it.CategoryID, it.Contact, it.Description, it.UserID, it.Currency)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *ItemRepo) Update(tx *sqlx.Tx, it domain.Item) error {
	_, err := tx.Exec(`
	  UPDATE items
	  SET name = ?, image = ?, price = ?, category_id = ?, contact = ?,
	      description = ?, currency = ?
	  WHERE id = ?
	`, it.Name, it.Image, it.Price, it.CategoryID, it.Contact, it.Description, it.Currency, it.ID)
	return err
}

func (r *ItemRepo) SetImage(tx *sqlx.Tx, id int64, path string) error {
	_, err := tx.Exec(`UPDATE items SET image = ? WHERE id = ?`, path, id)
	return err
}

func (r *ItemRepo) Delete(tx *sqlx.Tx, id int64) error {
	_, err := tx.Exec(`DELETE FROM items WHERE id = ?`, id)
	return err
}

func (r *ItemRepo) SetSold(id int64, sold bool) (bool, error) {
	res, err := r.db.Exec(`UPDATE items SET is_sold = ? WHERE id = ?`, sold, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *ItemRepo) SetSoldTx(tx *sqlx.Tx, id int64, sold bool) error {
	_, err := tx.Exec(`UPDATE items SET is_sold = ? WHERE id = ?`, sold, id)
	return err
}

// CountByCategory reports how many items still reference a category.
func (r *ItemRepo) CountByCategory(categoryID int64) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM items WHERE category_id = ?`, categoryID)
	return n, err
}
