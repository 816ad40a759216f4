package services_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"resellit/internal/domain"
	"resellit/internal/repos"
	"resellit/internal/services"
)

func TestStatsSnapshot(t *testing.T) {
	f, orders, buyerTID, itemID := orderFixture(t)
	svc := services.NewStatsService(repos.NewStatsRepo(f.db))

	o, err := orders.Create(services.OrderInput{
		ItemID: itemID, BuyerTelegramID: buyerTID, SellerTelegramID: 1001,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := orders.Update(o.ID, domain.OrderStatusPaid, ""); err != nil {
		t.Fatal(err)
	}

	snap, err := svc.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	// Fixture seller plus the buyer registered by the order fixture.
	if snap.TotalUsers != 2 {
		t.Fatalf("want 2 users, got %d", snap.TotalUsers)
	}
	if snap.TotalSellers != 1 || snap.TotalBuyers != 1 {
		t.Fatalf("want 1 seller and 1 buyer, got %d/%d", snap.TotalSellers, snap.TotalBuyers)
	}
	if snap.ActiveSellers != 1 || snap.ActiveBuyers != 1 {
		t.Fatalf("want 1 active each, got %d/%d", snap.ActiveSellers, snap.ActiveBuyers)
	}
	if snap.TotalOrders != 1 || snap.OrdersYear != 1 || snap.OrdersMonth != 1 {
		t.Fatalf("order counts off: %+v", snap)
	}
	if !snap.TotalProfit.Equal(decimal.NewFromInt(220)) {
		t.Fatalf("want profit 220, got %s", snap.TotalProfit)
	}
	if snap.LastUpdated == "" {
		t.Fatal("want last_updated set")
	}
}

func TestStatsSnapshotEmpty(t *testing.T) {
	f := newFixture(t, 10)
	svc := services.NewStatsService(repos.NewStatsRepo(f.db))

	snap, err := svc.Snapshot()
	if err != nil {
		t.Fatal(err)
	}
	if snap.TotalOrders != 0 {
		t.Fatalf("want 0 orders, got %d", snap.TotalOrders)
	}
	if !snap.TotalProfit.Equal(decimal.Zero) {
		t.Fatalf("want zero profit, got %s", snap.TotalProfit)
	}
}
