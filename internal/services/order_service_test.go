package services_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"resellit/internal/apperr"
	"resellit/internal/domain"
	"resellit/internal/repos"
	"resellit/internal/services"
)

func orderFixture(t *testing.T) (*fixture, *services.OrderService, int64, int64) {
	t.Helper()
	f := newFixture(t, 10)
	svc := services.NewOrderService(f.db, repos.NewOrderRepo(f.db), repos.NewItemRepo(f.db), f.users)

	users := services.NewUserService(f.users)
	buyer, err := users.Create(services.UserInput{TelegramID: 2002, Name: "Bea"})
	if err != nil {
		t.Fatal(err)
	}
	itemID := f.addItem(t, "Turntable", "belt drive", 220)
	return f, svc, buyer.TelegramID, itemID
}

func TestOrderCreateResolvesParties(t *testing.T) {
	_, svc, buyerTID, itemID := orderFixture(t)

	o, err := svc.Create(services.OrderInput{
		ItemID: itemID, BuyerTelegramID: buyerTID, SellerTelegramID: 1001,
		BuyerPhone: "+15550101", SellerPhone: "+15550102", DeliveryAddress: "5 Main St",
	})
	if err != nil {
		t.Fatal(err)
	}
	if o.Status != "NEW" {
		t.Fatalf("want NEW status, got %q", o.Status)
	}
	if !o.Total.Equal(decimal.NewFromInt(220)) {
		t.Fatalf("want total 220 from item price, got %s", o.Total)
	}

	_, err = svc.Create(services.OrderInput{ItemID: 9999, BuyerTelegramID: buyerTID, SellerTelegramID: 1001})
	wantKind(t, err, apperr.NotFound)
	_, err = svc.Create(services.OrderInput{ItemID: itemID, BuyerTelegramID: 9999, SellerTelegramID: 1001})
	wantKind(t, err, apperr.NotFound)
	_, err = svc.Create(services.OrderInput{ItemID: itemID, BuyerTelegramID: buyerTID, SellerTelegramID: 9999})
	wantKind(t, err, apperr.NotFound)
}

func TestOrderPaidMarksItemSold(t *testing.T) {
	f, svc, buyerTID, itemID := orderFixture(t)

	o, err := svc.Create(services.OrderInput{
		ItemID: itemID, BuyerTelegramID: buyerTID, SellerTelegramID: 1001,
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := svc.Update(o.ID, domain.OrderStatusPaid, "12 New Address")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.OrderStatusPaid || got.DeliveryAddress != "12 New Address" {
		t.Fatalf("update not applied: %+v", got)
	}

	v, err := f.items.Get(itemID)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsSold {
		t.Fatal("item should be sold after the order is paid")
	}

	_, err = svc.Update(9999, "SHIPPED", "")
	wantKind(t, err, apperr.NotFound)
}

func TestOrderListByUserSides(t *testing.T) {
	f, svc, buyerTID, itemID := orderFixture(t)

	o, err := svc.Create(services.OrderInput{
		ItemID: itemID, BuyerTelegramID: buyerTID, SellerTelegramID: 1001,
	})
	if err != nil {
		t.Fatal(err)
	}

	asBuyer, err := svc.ListByUser(o.BuyerID, true)
	if err != nil {
		t.Fatal(err)
	}
	if asBuyer.Total != 1 || len(asBuyer.Orders) != 1 {
		t.Fatalf("buyer side: want 1 order, got %+v", asBuyer)
	}

	asSeller, err := svc.ListByUser(f.userID, false)
	if err != nil {
		t.Fatal(err)
	}
	if asSeller.Total != 1 {
		t.Fatalf("seller side: want 1 order, got %+v", asSeller)
	}

	none, err := svc.ListByUser(o.BuyerID, false)
	if err != nil {
		t.Fatal(err)
	}
	if none.Total != 0 || len(none.Orders) != 0 {
		t.Fatalf("want empty list, got %+v", none)
	}
}
