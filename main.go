package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nobih83-prog/Inventory-menegement/api"
	"github.com/nobih83-prog/Inventory-menegement/internal/auth"
	"github.com/nobih83-prog/Inventory-menegement/internal/config"
	"github.com/nobih83-prog/Inventory-menegement/internal/customers"
	"github.com/nobih83-prog/Inventory-menegement/internal/event"
	"github.com/nobih83-prog/Inventory-menegement/internal/expenses"
	"github.com/nobih83-prog/Inventory-menegement/internal/insight"
	"github.com/nobih83-prog/Inventory-menegement/internal/inventory"
	"github.com/nobih83-prog/Inventory-menegement/internal/notify"
	"github.com/nobih83-prog/Inventory-menegement/internal/purchases"
	"github.com/nobih83-prog/Inventory-menegement/internal/sales"
	"github.com/nobih83-prog/Inventory-menegement/internal/seed"
	"github.com/nobih83-prog/Inventory-menegement/internal/settings"
	"github.com/nobih83-prog/Inventory-menegement/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "nashwa",
	Short: "Back office for the Nashwa point-of-sale console",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		opts := store.DefaultOptions(cfg.DataDir)
		opts.Logger = logger
		st, err := store.Open(opts)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		bus := event.NewBus()
		tokens := auth.NewTokenIssuer(cfg.JWTSecret)

		var advisor insight.Advisor = insight.Disabled{}
		if cfg.OpenAIKey != "" {
			advisor = insight.NewOpenAIAdvisor(cfg.OpenAIKey, cfg.OpenAIModel, logger)
		} else {
			logger.Info("no OpenAI key configured, AI advisor disabled")
		}

		deps := api.Deps{
			Logger:    logger,
			Tokens:    tokens,
			Auth:      auth.NewService(st, tokens, logger),
			Inventory: inventory.NewService(st, bus, logger),
			Sales:     sales.NewService(st, bus, logger),
			Purchases: purchases.NewService(st, bus, logger),
			Customers: customers.NewService(st, bus, logger),
			Expenses:  expenses.NewService(st, bus, logger),
			Notify:    notify.NewCenter(st, bus, logger),
			Settings:  settings.NewService(st),
			Advisor:   advisor,
		}

		r := gin.Default()
		api.InitRoutes(r, deps)

		logger.Info("starting server", zap.String("addr", cfg.Addr))
		if err := r.Run(cfg.Addr); err != nil {
			return fmt.Errorf("error trying to start server: %w", err)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo dataset into an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		logger, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer logger.Sync()

		opts := store.DefaultOptions(cfg.DataDir)
		opts.Logger = logger
		st, err := store.Open(opts)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		tokens := auth.NewTokenIssuer(cfg.JWTSecret)
		authSvc := auth.NewService(st, tokens, logger)

		if err := seed.Run(st, authSvc, logger); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
		logger.Info("demo dataset loaded", zap.String("dir", cfg.DataDir))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
