package main

import (
	"resellit/internal/config"
	api "resellit/internal/http"
	applog "resellit/internal/log"
	"resellit/internal/repos"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.Fatal("config.load", err)
	}
	applog.Init(cfg.Log)

	db, err := repos.OpenDB(cfg.DB.DSN)
	if err != nil {
		applog.Fatal("db.open", err)
	}
	defer db.Close()

	app := api.New(cfg, db)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		applog.Fatal("server.listen", err)
	}
}
