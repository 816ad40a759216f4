package services

import (
	"database/sql"
	"errors"

	"resellit/internal/apperr"
	"resellit/internal/domain"
	"resellit/internal/repos"
)

type CategoryService struct {
	cats  *repos.CategoryRepo
	items *repos.ItemRepo
}

func NewCategoryService(cats *repos.CategoryRepo, items *repos.ItemRepo) *CategoryService {
	return &CategoryService{cats: cats, items: items}
}

func (s *CategoryService) List() ([]domain.Category, error) {
	out, err := s.cats.List()
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if out == nil {
		out = []domain.Category{}
	}
	return out, nil
}

func (s *CategoryService) Create(name string) (domain.Category, error) {
	id, err := s.cats.Insert(name)
	if err != nil {
		if repos.IsUniqueViolation(err) {
			return domain.Category{}, apperr.New(apperr.Conflict, "Category with this name already exists")
		}
		return domain.Category{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return domain.Category{ID: id, Name: name}, nil
}

func (s *CategoryService) Update(id int64, name string) (domain.Category, error) {
	if _, err := s.cats.Get(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, apperr.New(apperr.NotFound, "Category not found")
		}
		return domain.Category{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if err := s.cats.Rename(id, name); err != nil {
		if repos.IsUniqueViolation(err) {
			return domain.Category{}, apperr.New(apperr.Conflict, "Category with this name already exists")
		}
		return domain.Category{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return domain.Category{ID: id, Name: name}, nil
}

// Delete refuses while any item still references the category.
func (s *CategoryService) Delete(id int64) error {
	if _, err := s.cats.Get(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Category not found")
		}
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	n, err := s.items.CountByCategory(id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if n > 0 {
		return apperr.New(apperr.Conflict, "Cannot delete category: there are items associated with it")
	}
	if err := s.cats.Delete(id); err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return nil
}
