package repos

import (
	"github.com/jmoiron/sqlx"

	"resellit/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) List() ([]domain.Category, error) {
	var out []domain.Category
	err := r.db.Select(&out, `SELECT id, name FROM categories ORDER BY id`)
	return out, err
}

func (r *CategoryRepo) Get(id int64) (domain.Category, error) {
	var c domain.Category
	err := r.db.Get(&c, `SELECT id, name FROM categories WHERE id = ?`, id)
	return c, err
}

// IDByName resolves a category name; sql.ErrNoRows when unresolved.
func (r *CategoryRepo) IDByName(name string) (int64, error) {
	var id int64
	err := r.db.Get(&id, `SELECT id FROM categories WHERE name = ?`, name)
	return id, err
}

func (r *CategoryRepo) IDByNameTx(tx *sqlx.Tx, name string) (int64, error) {
	var id int64
	err := tx.Get(&id, `SELECT id FROM categories WHERE name = ?`, name)
	return id, err
}

func (r *CategoryRepo) Insert(name string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO categories(name) VALUES (?)`, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CategoryRepo) Rename(id int64, name string) error {
	_, err := r.db.Exec(`UPDATE categories SET name = ? WHERE id = ?`, name, id)
	return err
}

func (r *CategoryRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return err
}
