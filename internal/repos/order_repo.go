package repos

import (
	"github.com/jmoiron/sqlx"

	"resellit/internal/domain"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderColumns = `id, buyer_id, seller_id, item_id, buyer_telegram_id, seller_telegram_id,
  buyer_phone, seller_phone, delivery_address, status, total, created_at, updated_at`

func (r *OrderRepo) Get(id int64) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return o, err
}

func (r *OrderRepo) GetTx(tx *sqlx.Tx, id int64) (domain.Order, error) {
	var o domain.Order
	err := tx.Get(&o, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return o, err
}

func (r *OrderRepo) Insert(o domain.Order) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO orders(buyer_id, seller_id, item_id, buyer_telegram_id, seller_telegram_id,
	                     buyer_phone, seller_phone, delivery_address, status, total)
	  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, o.BuyerID, o.SellerID, o.ItemID, o.BuyerTelegramID, o.SellerTelegramID,
		o.BuyerPhone, o.SellerPhone, o.DeliveryAddress, o.Status, o.Total)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *OrderRepo) UpdateTx(tx *sqlx.Tx, o domain.Order) error {
	_, err := tx.Exec(`
	  UPDATE orders
	  SET status = ?, delivery_address = ?, updated_at = datetime('now')
	  WHERE id = ?
	`, o.Status, o.DeliveryAddress, o.ID)
	return err
}

// ListByUser returns a user's orders, as buyer or as seller.
func (r *OrderRepo) ListByUser(userID int64, asBuyer bool) ([]domain.Order, error) {
	col := "seller_id"
	if asBuyer {
		col = "buyer_id"
	}
	var out []domain.Order
	err := r.db.Select(&out, `
	  SELECT `+orderColumns+` FROM orders
	  WHERE `+col+` = ?
	  ORDER BY datetime(created_at) DESC
	`, userID)
	return out, err
}
