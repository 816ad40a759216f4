package services

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"resellit/internal/apperr"
	"resellit/internal/domain"
	"resellit/internal/repos"
)

type OrderService struct {
	db     *sqlx.DB
	orders *repos.OrderRepo
	items  *repos.ItemRepo
	users  *repos.UserRepo
}

func NewOrderService(db *sqlx.DB, orders *repos.OrderRepo, items *repos.ItemRepo, users *repos.UserRepo) *OrderService {
	return &OrderService{db: db, orders: orders, items: items, users: users}
}

// OrderInput references buyer and seller by telegram identity, the way the
// bot front end knows them.
type OrderInput struct {
	ItemID           int64
	BuyerTelegramID  int64
	SellerTelegramID int64
	BuyerPhone       string
	SellerPhone      string
	DeliveryAddress  string
}

func (s *OrderService) Create(in OrderInput) (domain.Order, error) {
	item, err := s.items.GetViewAny(in.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, apperr.New(apperr.NotFound, "Item not found")
		}
		return domain.Order{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	buyer, err := s.users.ByTelegramID(in.BuyerTelegramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, apperr.New(apperr.NotFound, "Buyer not found")
		}
		return domain.Order{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	seller, err := s.users.ByTelegramID(in.SellerTelegramID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, apperr.New(apperr.NotFound, "Seller not found")
		}
		return domain.Order{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	o := domain.Order{
		BuyerID:          buyer.ID,
		SellerID:         seller.ID,
		ItemID:           item.ID,
		BuyerTelegramID:  in.BuyerTelegramID,
		SellerTelegramID: in.SellerTelegramID,
		BuyerPhone:       in.BuyerPhone,
		SellerPhone:      in.SellerPhone,
		DeliveryAddress:  in.DeliveryAddress,
		Status:           "NEW",
		Total:            item.Price,
	}
	id, err := s.orders.Insert(o)
	if err != nil {
		return domain.Order{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return s.Get(id)
}

func (s *OrderService) Get(id int64) (domain.Order, error) {
	o, err := s.orders.Get(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, apperr.New(apperr.NotFound, "Order not found")
		}
		return domain.Order{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return o, nil
}

// Update changes status and optionally the delivery address. A transition
// to PAID marks the ordered item sold in the same transaction.
func (s *OrderService) Update(id int64, status, deliveryAddress string) (domain.Order, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return domain.Order{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	defer func() { _ = tx.Rollback() }()

	o, err := s.orders.GetTx(tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, apperr.New(apperr.NotFound, "Order not found")
		}
		return domain.Order{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	if status != "" {
		o.Status = status
	}
	if deliveryAddress != "" {
		o.DeliveryAddress = deliveryAddress
	}
	if err := s.orders.UpdateTx(tx, o); err != nil {
		return domain.Order{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if o.Status == domain.OrderStatusPaid {
		if err := s.items.SetSoldTx(tx, o.ItemID, true); err != nil {
			return domain.Order{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.Order{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return s.Get(id)
}

func (s *OrderService) ListByUser(userID int64, asBuyer bool) (domain.OrdersList, error) {
	orders, err := s.orders.ListByUser(userID, asBuyer)
	if err != nil {
		return domain.OrdersList{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return domain.OrdersList{Orders: orders, Total: len(orders)}, nil
}
