package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/mattn/go-sqlite3"

	"github.com/spf13/cobra"
	"github.com/tiltwatch/tiltwatch/config"
	"github.com/tiltwatch/tiltwatch/model"
	"github.com/tiltwatch/tiltwatch/observer"
	"github.com/tiltwatch/tiltwatch/reconcile"
	"github.com/tiltwatch/tiltwatch/repository"
	"github.com/tiltwatch/tiltwatch/service/refresh"
	"github.com/tiltwatch/tiltwatch/store"
	"github.com/tiltwatch/tiltwatch/tiltify"
	"go.uber.org/zap"
)

type app struct {
	conf         config.Config
	logger       *zap.Logger
	registry     *observer.Registry
	orchestrator *refresh.Orchestrator

	shutdown func()
}

func newApp() *app {
	conf := config.Load()
	logger := config.NewLogger(conf.Log)

	db, err := store.Open(conf.SQLite, logger)
	if err != nil {
		logger.Fatal("cannot initialize local store", zap.Error(err))
	}

	provider := repository.NewProvider(db)
	events := repository.NewEvent()
	campaigns := repository.NewCampaign()

	registry := observer.NewRegistry(provider, events, logger)
	reconciler := reconcile.NewReconciler(provider, events, campaigns, registry, logger)
	client := tiltify.NewClient(conf.Tiltify)
	orchestrator := refresh.NewOrchestrator(
		provider, events, campaigns, reconciler, client, conf.Tiltify, logger)

	return &app{
		conf:         conf,
		logger:       logger,
		registry:     registry,
		orchestrator: orchestrator,

		shutdown: func() {
			registry.Close()
			_ = db.Close()
		},
	}
}

func (a *app) refreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := a.orchestrator.Refresh(ctx)
	if err != nil {
		a.logger.Error("refresh failed, serving cached data", zap.Error(err))
		return
	}
	a.logger.Info("refresh complete",
		zap.Int("campaigns", len(result.Campaigns)),
		zap.Int("persistErrors", len(result.PersistErrors)),
		zap.String("amountRaised", result.Event.AmountRaisedValue.String()),
	)
}

func startTracker() {
	a := newApp()
	defer a.shutdown()

	cancel := a.registry.SubscribeEvent(
		a.conf.Tiltify.EventSlug, a.conf.Tiltify.CauseSlug,
		func(event model.FundraisingEvent) {
			a.logger.Info("tracked event changed",
				zap.String("currency", event.AmountRaisedCurrency),
				zap.String("amountRaised", event.AmountRaisedValue.String()),
			)
		})
	defer cancel()

	fmt.Println("HTTP:", a.conf.Server.HTTP.ListenString())

	httpMux := http.NewServeMux()
	httpMux.Handle("/metrics", promhttp.Handler())
	httpServer := &http.Server{
		Addr:    a.conf.Server.HTTP.ListenString(),
		Handler: httpMux,
	}
	go func() {
		err := httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			panic(err)
		}
	}()

	a.refreshOnce()

	ticker := time.NewTicker(a.conf.RefreshInterval())
	defer ticker.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, os.Kill)

	for {
		select {
		case <-ticker.C:
			a.refreshOnce()

		case <-stop:
			ctx, cancelShutdown := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancelShutdown()

			err := httpServer.Shutdown(ctx)
			if err != nil {
				panic(err)
			}
			fmt.Println("Shutdown HTTP server successfully")
			return
		}
	}
}

func runRefresh() {
	a := newApp()
	defer a.shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := a.orchestrator.Refresh(ctx)
	if err != nil {
		fmt.Println("[ERROR]", err)
		return
	}

	fmt.Printf("%s: %s %s raised of %s %s goal, %d campaigns\n",
		result.Event.Name,
		result.Event.AmountRaisedCurrency, result.Event.AmountRaisedValue.String(),
		result.Event.GoalCurrency, result.Event.GoalValue.String(),
		len(result.Campaigns),
	)
}

func main() {
	rootCmd := cobra.Command{
		Use: "tracker",
	}
	rootCmd.AddCommand(
		startCommand(),
		refreshCommand(),
	)

	err := rootCmd.Execute()
	if err != nil {
		fmt.Println(err)
	}
}

func startCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "start the tracker daemon",
		Run: func(cmd *cobra.Command, args []string) {
			startTracker()
		},
	}
}

func refreshCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "run a single refresh pass and print the totals",
		Run: func(cmd *cobra.Command, args []string) {
			runRefresh()
		},
	}
}
