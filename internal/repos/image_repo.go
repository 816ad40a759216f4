package repos

import (
	"github.com/jmoiron/sqlx"

	"resellit/internal/domain"
)

type ImageRepo struct{ db *sqlx.DB }

func NewImageRepo(db *sqlx.DB) *ImageRepo { return &ImageRepo{db: db} }

func (r *ImageRepo) Get(id int64) (domain.Image, error) {
	var img domain.Image
	err := r.db.Get(&img, `SELECT id, item_id, file_path, created_at FROM images WHERE id = ?`, id)
	return img, err
}

func (r *ImageRepo) ListByItem(itemID int64) ([]domain.Image, error) {
	var out []domain.Image
	err := r.db.Select(&out, `
	  SELECT id, item_id, file_path, created_at FROM images WHERE item_id = ? ORDER BY id
	`, itemID)
	return out, err
}

func (r *ImageRepo) Insert(itemID int64, filePath string) (domain.Image, error) {
	res, err := r.db.Exec(`INSERT INTO images(item_id, file_path) VALUES (?, ?)`, itemID, filePath)
	if err != nil {
		return domain.Image{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Image{}, err
	}
	return r.Get(id)
}

func (r *ImageRepo) InsertTx(tx *sqlx.Tx, itemID int64, filePath string) error {
	_, err := tx.Exec(`INSERT INTO images(item_id, file_path) VALUES (?, ?)`, itemID, filePath)
	return err
}

// PathsByItemTx collects file paths before the rows go away, so files can be
// cleaned up after the transaction commits.
func (r *ImageRepo) PathsByItemTx(tx *sqlx.Tx, itemID int64) ([]string, error) {
	var paths []string
	err := tx.Select(&paths, `SELECT file_path FROM images WHERE item_id = ?`, itemID)
	return paths, err
}

func (r *ImageRepo) DeleteByItemTx(tx *sqlx.Tx, itemID int64) error {
	_, err := tx.Exec(`DELETE FROM images WHERE item_id = ?`, itemID)
	return err
}

func (r *ImageRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM images WHERE id = ?`, id)
	return err
}
