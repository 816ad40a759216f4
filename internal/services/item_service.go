package services

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"resellit/internal/apperr"
	"resellit/internal/domain"
	"resellit/internal/repos"
	"resellit/internal/search"
	"resellit/internal/validate"
)

// ItemService is the listing query engine and lifecycle manager: it builds
// paged listing views and orchestrates create/update/delete together with
// image attachment and search index maintenance.
type ItemService struct {
	db     *sqlx.DB
	items  *repos.ItemRepo
	cats   *repos.CategoryRepo
	users  *repos.UserRepo
	images *repos.ImageRepo
	index  *search.Index

	limit     int
	uploadDir string
}

func NewItemService(db *sqlx.DB, items *repos.ItemRepo, cats *repos.CategoryRepo,
	users *repos.UserRepo, images *repos.ImageRepo, index *search.Index,
	pageSize int, uploadDir string) *ItemService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &ItemService{
		db: db, items: items, cats: cats, users: users, images: images,
		index: index, limit: pageSize, uploadDir: uploadDir,
	}
}

// ListQuery carries the caller's constraints for one listing page. Category
// and IDs are mutually exclusive selection regimes; IDs win when both are
// empty-checked by the caller.
type ListQuery struct {
	Page        int
	Category    string
	IDs         []int64
	FilterType  string
	FilterValue string
	UnsoldOnly  bool
}

// List returns one page of fresh listings. Zero matching rows is an empty
// page, not an error.
func (s *ItemService) List(q ListQuery) (domain.ItemsPage, error) {
	empty := domain.ItemsPage{Page: q.Page, Items: []domain.ItemView{}}
	if q.Page < 1 {
		return empty, apperr.New(apperr.InvalidInput, "Page must be a positive integer")
	}
	orderBy, orderDir, err := resolveOrder(q.FilterType, q.FilterValue)
	if err != nil {
		return empty, err
	}

	f := repos.ListFilter{
		Page: q.Page, Limit: s.limit,
		UnsoldOnly: q.UnsoldOnly,
		OrderBy:    orderBy, OrderDir: orderDir,
	}

	var (
		rows []domain.ItemView
		next bool
	)
	switch {
	case q.Category != "":
		catID, rerr := s.cats.IDByName(q.Category)
		if rerr != nil {
			if errors.Is(rerr, sql.ErrNoRows) {
				return empty, apperr.New(apperr.NotFound, "Category not found")
			}
			return empty, apperr.Wrap(apperr.Internal, "Internal server error", rerr)
		}
		f.CategoryID = &catID
		rows, next, err = s.items.ListPage(f)
	case len(q.IDs) > 0:
		f.IDs = q.IDs
		rows, next, err = s.items.ListByIDs(f)
	default:
		rows, next, err = s.items.ListPage(f)
	}
	if err != nil {
		return empty, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if rows == nil {
		rows = []domain.ItemView{}
	}
	return domain.ItemsPage{Page: q.Page, NextPage: next, Items: rows}, nil
}

// ListByUser pages one user's listings. Unlike the general views, zero rows
// here is NotFound.
func (s *ItemService) ListByUser(userID int64, page int, unsoldOnly bool) (domain.ItemsPage, error) {
	empty := domain.ItemsPage{Page: page, Items: []domain.ItemView{}}
	if page < 1 {
		return empty, apperr.New(apperr.InvalidInput, "Page must be a positive integer")
	}
	f := repos.ListFilter{Page: page, Limit: s.limit, UserID: &userID, UnsoldOnly: unsoldOnly}
	rows, next, err := s.items.ListPage(f)
	if err != nil {
		return empty, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if len(rows) == 0 {
		return empty, apperr.New(apperr.NotFound, "Items not found")
	}
	return domain.ItemsPage{Page: page, NextPage: next, Items: rows}, nil
}

// Get returns a single fresh listing; stale listings read as missing.
func (s *ItemService) Get(id int64) (domain.ItemView, error) {
	v, err := s.items.GetView(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ItemView{}, apperr.New(apperr.NotFound, "Item not found")
		}
		return domain.ItemView{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return v, nil
}

// PageSize exposes the configured limit for callers composing pagination.
func (s *ItemService) PageSize() int { return s.limit }

func resolveOrder(filterType, filterValue string) (string, string, error) {
	if filterType == "" {
		return "", "", nil
	}
	col, ok := domain.SortColumns[filterType]
	if !ok {
		return "", "", apperr.New(apperr.InvalidInput, "Invalid filter type provided")
	}
	dir := validate.SortDir(filterValue)
	if dir == "" {
		// Direction missing or unrecognized: ignored, default ordering.
		return "", "", nil
	}
	return col, dir, nil
}

// ---------- lifecycle ----------

// Upload is a decoded multipart file.
type Upload struct {
	Filename string
	Data     []byte
}

// ItemInput is the full field set for create and update. Updates always
// carry every field; the index is refreshed on every update regardless of
// which fields changed.
type ItemInput struct {
	Name        string
	Price       decimal.Decimal
	Currency    string
	Category    string
	Contact     string
	Description string
	Image       *Upload
}

// Create inserts a listing with its index entry and optional image as one
// transaction; nothing survives a failed step.
func (s *ItemService) Create(in ItemInput, userID int64) (int64, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	defer func() { _ = tx.Rollback() }()

	ok, err := s.users.ExistsTx(tx, userID)
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if !ok {
		return 0, apperr.New(apperr.NotFound, "User not found")
	}

	catID, err := s.cats.IDByNameTx(tx, in.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.New(apperr.NotFound, "Category not found")
		}
		return 0, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	id, err := s.items.Insert(tx, domain.Item{
		Name:        in.Name,
		Price:       in.Price,
		CategoryID:  catID,
		Contact:     in.Contact,
		Description: in.Description,
		UserID:      userID,
		Currency:    in.Currency,
	})
	if err != nil {
		return 0, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	if in.Image != nil {
		path, err := s.saveImageFile(in.Image)
		if err != nil {
			return 0, err
		}
		if err := s.images.InsertTx(tx, id, path); err != nil {
			return 0, apperr.Wrap(apperr.Internal, "Internal server error", err)
		}
		if err := s.items.SetImage(tx, id, path); err != nil {
			return 0, apperr.Wrap(apperr.Internal, "Internal server error", err)
		}
	}

	if err := s.index.Upsert(tx, id, in.Name, in.Description); err != nil {
		return 0, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return id, nil
}

// Update replaces a listing's fields. Every update refreshes the search
// index even when name and description are unchanged; cheap enough, and it
// keeps update paths uniform.
func (s *ItemService) Update(id int64, in ItemInput) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	defer func() { _ = tx.Rollback() }()

	it, err := s.items.GetTx(tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Item not found")
		}
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	catID, err := s.cats.IDByNameTx(tx, in.Category)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Category not found")
		}
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	it.Name = in.Name
	it.Price = in.Price
	it.Currency = in.Currency
	it.CategoryID = catID
	it.Contact = in.Contact
	it.Description = in.Description

	if in.Image != nil {
		path, err := s.saveImageFile(in.Image)
		if err != nil {
			return err
		}
		if err := s.images.InsertTx(tx, id, path); err != nil {
			return apperr.Wrap(apperr.Internal, "Internal server error", err)
		}
		it.Image = path
	}

	if err := s.items.Update(tx, it); err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if err := s.index.Upsert(tx, id, it.Name, it.Description); err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if err := tx.Commit(); err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return nil
}

// Delete removes the listing, its index entry and its image records in one
// transaction, then cleans files off disk best-effort.
func (s *ItemService) Delete(id int64) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := s.items.GetTx(tx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Item not found")
		}
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	paths, err := s.images.PathsByItemTx(tx, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if err := s.images.DeleteByItemTx(tx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if err := s.index.Delete(tx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if err := s.items.Delete(tx, id); err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if err := tx.Commit(); err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}

	for _, p := range paths {
		_ = os.Remove(p)
	}
	return nil
}

// SetSold updates the sold flag and returns the full view, freshness window
// not applied: sellers may close out listings that already aged out.
func (s *ItemService) SetSold(id int64, sold bool) (domain.ItemView, error) {
	found, err := s.items.SetSold(id, sold)
	if err != nil {
		return domain.ItemView{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if !found {
		return domain.ItemView{}, apperr.New(apperr.NotFound, "Item not found")
	}
	v, err := s.items.GetViewAny(id)
	if err != nil {
		return domain.ItemView{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return v, nil
}

func (s *ItemService) saveImageFile(up *Upload) (string, error) {
	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return "", apperr.Wrap(apperr.Internal, "Could not save file", err)
	}
	name := uuid.NewString() + filepath.Ext(up.Filename)
	path := filepath.Join(s.uploadDir, name)
	if err := os.WriteFile(path, up.Data, 0o644); err != nil {
		return "", apperr.Wrap(apperr.Internal, "Could not save file", err)
	}
	return path, nil
}
