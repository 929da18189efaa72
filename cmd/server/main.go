package main

import (
	"fmt"
	"log/slog"

	"github.com/TheCodister/swapdesk/infra"
	infrarepo "github.com/TheCodister/swapdesk/infra/repository/conversion"
	"github.com/TheCodister/swapdesk/pkg/config"
	"github.com/TheCodister/swapdesk/webapi"
	"github.com/TheCodister/swapdesk/webapi/conversion"
	log "github.com/charmbracelet/log"
)

// @title Swapdesk Ledger API
// @version 1.0.0
// @description Conversion history ledger backing the currency swap pipeline
// @host localhost:3000
// @BasePath /
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to the ledger database: %w", err)
	}
	if err := db.AutoMigrate(&infrarepo.Conversion{}); err != nil {
		return fmt.Errorf("failed to migrate the conversions table: %w", err)
	}

	app := webapi.NewApp()
	conversion.Routes(app, infrarepo.New(db), logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)

	return app.Listen(addr)
}
