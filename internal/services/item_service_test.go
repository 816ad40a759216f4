package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"resellit/internal/apperr"
	"resellit/internal/domain"
	"resellit/internal/repos"
	"resellit/internal/search"
	"resellit/internal/services"
)

type fixture struct {
	db     *sqlx.DB
	index  *search.Index
	items  *services.ItemService
	cats   *repos.CategoryRepo
	users  *repos.UserRepo
	userID int64
}

func newFixture(t *testing.T, pageSize int) *fixture {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	itemRepo := repos.NewItemRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	userRepo := repos.NewUserRepo(db)
	imageRepo := repos.NewImageRepo(db)
	index := search.NewIndex(db)

	svc := services.NewItemService(db, itemRepo, catRepo, userRepo, imageRepo, index,
		pageSize, t.TempDir())

	f := &fixture{db: db, index: index, items: svc, cats: catRepo, users: userRepo}

	if _, err := catRepo.Insert("electronics"); err != nil {
		t.Fatal(err)
	}
	role, err := userRepo.RoleByName("seller")
	if err != nil {
		t.Fatal(err)
	}
	f.userID, err = userRepo.Insert(domain.User{
		TelegramID: 1001, Username: "alice", Name: "Alice", Contact: "@alice", RoleID: role.ID,
	})
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *fixture) addItem(t *testing.T, name, desc string, price int64) int64 {
	t.Helper()
	id, err := f.items.Create(services.ItemInput{
		Name:        name,
		Price:       decimal.NewFromInt(price),
		Currency:    "USD",
		Category:    "electronics",
		Contact:     "@alice",
		Description: desc,
	}, f.userID)
	if err != nil {
		t.Fatal(err)
	}
	return id
}

// backdate shifts an item's publish date by an SQLite datetime modifier
// like "-8 days".
func (f *fixture) backdate(t *testing.T, id int64, offset string) {
	t.Helper()
	if _, err := f.db.Exec(`UPDATE items SET date = datetime('now', ?) WHERE id = ?`, offset, id); err != nil {
		t.Fatal(err)
	}
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %v error, got nil", kind)
	}
	if !apperr.IsKind(err, kind) {
		t.Fatalf("want %v error, got %v", kind, err)
	}
}

func TestListPaginationLookahead(t *testing.T) {
	f := newFixture(t, 1)
	older := f.addItem(t, "Gameboy", "classic handheld", 40)
	f.backdate(t, older, "-1 hour")
	newer := f.addItem(t, "PSP", "with charger", 60)

	page, err := f.items.List(services.ListQuery{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != newer {
		t.Fatalf("page 1: want just item %d, got %+v", newer, page.Items)
	}
	if !page.NextPage {
		t.Fatal("page 1: want next_page true")
	}

	page, err = f.items.List(services.ListQuery{Page: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != older {
		t.Fatalf("page 2: want just item %d, got %+v", older, page.Items)
	}
	if page.NextPage {
		t.Fatal("page 2: want next_page false")
	}

	// Past the end: empty page, still a success.
	page, err = f.items.List(services.ListQuery{Page: 3})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 0 || page.NextPage {
		t.Fatalf("page 3: want empty final page, got %+v", page)
	}
}

func TestListExcludesStaleItems(t *testing.T) {
	f := newFixture(t, 10)
	fresh := f.addItem(t, "Monitor", "27 inch", 120)
	stale := f.addItem(t, "Keyboard", "mechanical", 45)
	f.backdate(t, stale, "-8 days")

	page, err := f.items.List(services.ListQuery{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != fresh {
		t.Fatalf("want only the fresh item, got %+v", page.Items)
	}

	_, err = f.items.Get(stale)
	wantKind(t, err, apperr.NotFound)

	if _, err := f.items.Get(fresh); err != nil {
		t.Fatal(err)
	}
}

func TestListSortValidation(t *testing.T) {
	f := newFixture(t, 10)
	f.addItem(t, "Lamp", "", 10)

	_, err := f.items.List(services.ListQuery{Page: 1, FilterType: "password"})
	wantKind(t, err, apperr.InvalidInput)

	_, err = f.items.List(services.ListQuery{Page: 0})
	wantKind(t, err, apperr.InvalidInput)

	// A sort direction outside asc/desc is ignored rather than rejected.
	page, err := f.items.List(services.ListQuery{Page: 1, FilterType: "price", FilterValue: "sideways"})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(page.Items))
	}
}

func TestListSortByPrice(t *testing.T) {
	f := newFixture(t, 10)
	cheap := f.addItem(t, "Mouse", "", 5)
	dear := f.addItem(t, "GPU", "", 500)

	page, err := f.items.List(services.ListQuery{Page: 1, FilterType: "price", FilterValue: "asc"})
	if err != nil {
		t.Fatal(err)
	}
	if page.Items[0].ID != cheap || page.Items[1].ID != dear {
		t.Fatalf("ascending price: got %+v", page.Items)
	}

	page, err = f.items.List(services.ListQuery{Page: 1, FilterType: "price", FilterValue: "desc"})
	if err != nil {
		t.Fatal(err)
	}
	if page.Items[0].ID != dear {
		t.Fatalf("descending price: got %+v", page.Items)
	}
}

func TestListByCategory(t *testing.T) {
	f := newFixture(t, 10)
	f.addItem(t, "Speaker", "", 30)

	_, err := f.items.List(services.ListQuery{Page: 1, Category: "furniture"})
	wantKind(t, err, apperr.NotFound)

	page, err := f.items.List(services.ListQuery{Page: 1, Category: "electronics"})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("want 1 item in electronics, got %d", len(page.Items))
	}
}

func TestUnsoldRegime(t *testing.T) {
	f := newFixture(t, 10)
	sold := f.addItem(t, "Tablet", "", 80)
	f.addItem(t, "Phone", "", 90)

	if _, err := f.items.SetSold(sold, true); err != nil {
		t.Fatal(err)
	}

	all, err := f.items.List(services.ListQuery{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(all.Items) != 2 {
		t.Fatalf("general view: want 2 items, got %d", len(all.Items))
	}

	unsold, err := f.items.List(services.ListQuery{Page: 1, UnsoldOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(unsold.Items) != 1 || unsold.Items[0].ID == sold {
		t.Fatalf("unsold view: want only the unsold item, got %+v", unsold.Items)
	}
}

func TestListByUserNotFoundOnEmpty(t *testing.T) {
	f := newFixture(t, 10)

	// The general view treats no rows as an empty success.
	page, err := f.items.List(services.ListQuery{Page: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("want empty page, got %+v", page.Items)
	}

	// The per-user view treats it as missing.
	_, err = f.items.ListByUser(f.userID, 1, false)
	wantKind(t, err, apperr.NotFound)

	f.addItem(t, "Desk", "", 70)
	out, err := f.items.ListByUser(f.userID, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Items) != 1 {
		t.Fatalf("want 1 item, got %d", len(out.Items))
	}
}

func TestCreateRollsBackAsOneUnit(t *testing.T) {
	f := newFixture(t, 10)

	_, err := f.items.Create(services.ItemInput{
		Name: "Ghost", Price: decimal.NewFromInt(1), Currency: "USD",
		Category: "nope", Contact: "@alice",
	}, f.userID)
	wantKind(t, err, apperr.NotFound)

	var items, entries int
	if err := f.db.Get(&items, `SELECT COUNT(*) FROM items`); err != nil {
		t.Fatal(err)
	}
	if err := f.db.Get(&entries, `SELECT COUNT(*) FROM item_search`); err != nil {
		t.Fatal(err)
	}
	if items != 0 || entries != 0 {
		t.Fatalf("failed create left rows behind: items=%d index=%d", items, entries)
	}

	_, err = f.items.Create(services.ItemInput{
		Name: "Orphan", Price: decimal.NewFromInt(1), Currency: "USD",
		Category: "electronics", Contact: "@ghost",
	}, 9999)
	wantKind(t, err, apperr.NotFound)
}

func TestUpdateRefreshesIndex(t *testing.T) {
	f := newFixture(t, 10)
	id := f.addItem(t, "Bicycle", "city bike", 150)

	err := f.items.Update(id, services.ItemInput{
		Name: "Skateboard", Price: decimal.NewFromInt(150), Currency: "USD",
		Category: "electronics", Contact: "@alice", Description: "barely used",
	})
	if err != nil {
		t.Fatal(err)
	}

	ids, err := f.index.Search("skateboard")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 || ids[0] != id {
		t.Fatalf("new name not searchable: %v", ids)
	}
	ids, err = f.index.Search("bicycle")
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 0 {
		t.Fatalf("old name still searchable: %v", ids)
	}
}

func TestDeleteRemovesItemAndIndexEntry(t *testing.T) {
	f := newFixture(t, 10)
	id := f.addItem(t, "Drone", "with camera", 200)

	if err := f.items.Delete(id); err != nil {
		t.Fatal(err)
	}
	_, err := f.items.Get(id)
	wantKind(t, err, apperr.NotFound)

	n, err := f.index.Count(id)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("index entry outlived item: %d rows", n)
	}

	wantKind(t, f.items.Delete(id), apperr.NotFound)
}

func TestSetSoldIgnoresFreshnessWindow(t *testing.T) {
	f := newFixture(t, 10)
	id := f.addItem(t, "Amplifier", "", 65)
	f.backdate(t, id, "-30 days")

	v, err := f.items.SetSold(id, true)
	if err != nil {
		t.Fatal(err)
	}
	if !v.IsSold {
		t.Fatal("want is_sold true")
	}

	_, err = f.items.SetSold(9999, true)
	wantKind(t, err, apperr.NotFound)
}
