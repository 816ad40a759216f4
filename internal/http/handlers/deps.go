package handlers

import (
	"github.com/jmoiron/sqlx"

	"resellit/internal/config"
	"resellit/internal/repos"
	"resellit/internal/search"
	"resellit/internal/services"
)

type Deps struct {
	ItemHandler     *ItemHandler
	SearchHandler   *SearchHandler
	CategoryHandler *CategoryHandler
	UserHandler     *UserHandler
	OrderHandler    *OrderHandler
	ImageHandler    *ImageHandler
	PaymentHandler  *PaymentHandler
	StatsHandler    *StatsHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	itemRepo := repos.NewItemRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	userRepo := repos.NewUserRepo(db)
	imageRepo := repos.NewImageRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	statsRepo := repos.NewStatsRepo(db)
	index := search.NewIndex(db)

	itemSvc := services.NewItemService(db, itemRepo, catRepo, userRepo, imageRepo, index,
		cfg.Pagination.Limit, cfg.Uploads.Dir)
	searchSvc := services.NewSearchService(index, itemSvc)
	catSvc := services.NewCategoryService(catRepo, itemRepo)
	userSvc := services.NewUserService(userRepo)
	orderSvc := services.NewOrderService(db, orderRepo, itemRepo, userRepo)
	imageSvc := services.NewImageService(imageRepo, itemRepo, itemSvc)
	statsSvc := services.NewStatsService(statsRepo)

	return &Deps{
		ItemHandler:     &ItemHandler{Items: itemSvc, Users: userSvc},
		SearchHandler:   &SearchHandler{Searches: searchSvc},
		CategoryHandler: &CategoryHandler{Categories: catSvc},
		UserHandler:     &UserHandler{Users: userSvc},
		OrderHandler:    &OrderHandler{Orders: orderSvc},
		ImageHandler:    &ImageHandler{Images: imageSvc},
		PaymentHandler:  &PaymentHandler{Orders: orderSvc},
		StatsHandler:    &StatsHandler{Stats: statsSvc},
	}
}
