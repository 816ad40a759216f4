package repos

import (
	"github.com/jmoiron/sqlx"

	"resellit/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

const userColumns = `id, COALESCE(telegram_id,0) AS telegram_id, COALESCE(username,'') AS username,
  name, COALESCE(contact,'') AS contact, role_id, created_at, updated_at`

func (r *UserRepo) ByID(id int64) (domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return u, err
}

func (r *UserRepo) ByTelegramID(telegramID int64) (domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `SELECT `+userColumns+` FROM users WHERE telegram_id = ?`, telegramID)
	return u, err
}

func (r *UserRepo) ExistsTx(tx *sqlx.Tx, id int64) (bool, error) {
	var n int
	if err := tx.Get(&n, `SELECT COUNT(*) FROM users WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepo) Exists(id int64) (bool, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM users WHERE id = ?`, id); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *UserRepo) Insert(u domain.User) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO users(telegram_id, username, name, contact, role_id)
	  VALUES (?, ?, ?, ?, ?)
	`, u.TelegramID, u.Username, u.Name, u.Contact, u.RoleID)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *UserRepo) SetRole(userID, roleID int64) error {
	_, err := r.db.Exec(`
	  UPDATE users SET role_id = ?, updated_at = datetime('now') WHERE id = ?
	`, roleID, userID)
	return err
}

// ---------- roles ----------

func (r *UserRepo) RoleByID(id int64) (domain.Role, error) {
	var role domain.Role
	err := r.db.Get(&role, `
	  SELECT id, name, COALESCE(description,'') AS description, created_at, updated_at
	  FROM roles WHERE id = ?`, id)
	return role, err
}

func (r *UserRepo) Roles() ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.Select(&roles, `
	  SELECT id, name, COALESCE(description,'') AS description, created_at, updated_at
	  FROM roles ORDER BY id`)
	return roles, err
}

func (r *UserRepo) RoleByName(name string) (domain.Role, error) {
	var role domain.Role
	err := r.db.Get(&role, `
	  SELECT id, name, COALESCE(description,'') AS description, created_at, updated_at
	  FROM roles WHERE name = ?`, name)
	return role, err
}

func (r *UserRepo) InsertRole(name, description string) (int64, error) {
	res, err := r.db.Exec(`INSERT INTO roles(name, description) VALUES (?, ?)`, name, description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
