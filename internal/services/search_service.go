package services

import (
	"resellit/internal/apperr"
	"resellit/internal/domain"
	"resellit/internal/search"
	"resellit/internal/validate"
)

// SearchService ranks listings against a free-text query and hands the
// matched ids to the listing query engine for freshness filtering and
// pagination. Relevance order survives unless the caller asks for an
// explicit sort.
type SearchService struct {
	index *search.Index
	items *ItemService
}

func NewSearchService(index *search.Index, items *ItemService) *SearchService {
	return &SearchService{index: index, items: items}
}

func (s *SearchService) Search(query string, page int, filterType, filterValue string) (domain.ItemsPage, error) {
	q, ok := validate.Query(query)
	if !ok {
		return domain.ItemsPage{}, apperr.New(apperr.InvalidInput, "Search query must not be empty")
	}

	ids, err := s.index.Search(q)
	if err != nil {
		return domain.ItemsPage{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if len(ids) == 0 {
		return domain.ItemsPage{}, apperr.New(apperr.NotFound, "Products not found")
	}

	return s.items.List(ListQuery{
		Page:        page,
		IDs:         ids,
		FilterType:  filterType,
		FilterValue: filterValue,
	})
}
