package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pinglocal/pinglocal/cmd"
	"github.com/pinglocal/pinglocal/pinglocal"
	"github.com/pinglocal/pinglocal/pinglocal/database"
	"github.com/pinglocal/pinglocal/pinglocal/database/repositories"
	"github.com/pinglocal/pinglocal/pinglocal/logger"
	"github.com/pinglocal/pinglocal/pinglocal/loyalty"
	"github.com/pinglocal/pinglocal/pinglocal/realtime"
	"github.com/pinglocal/pinglocal/pinglocal/redemption"
	"github.com/pinglocal/pinglocal/pinglocal/services"
	"github.com/pinglocal/pinglocal/pinglocal/tracing"
	"github.com/pinglocal/pinglocal/pinglocal/web"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(slog.LevelInfo)))

	// Subcommands (migrate) go through cobra; no arguments runs the server.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := cmd.Execute(); err != nil {
			os.Exit(1)
		}
		return
	}

	slog.Info("Starting Ping Local backend",
		slog.String("version", version),
		slog.String("commit", commit))

	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := pinglocal.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))
	slog.Info("Configuration loaded successfully")

	if err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName,
	}); err != nil {
		slog.Error("Failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	db, err := database.New(dbCtx, cfg.DB)
	cancel()
	if err != nil {
		slog.Error("Failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Database connected successfully", slog.String("type", "db"))

	purchases := repositories.NewPurchaseTokenRepository(db.BunDB())
	redemptions := repositories.NewRedemptionTokenRepository(db.BunDB())
	offers := repositories.NewOfferRepository(db.BunDB())
	loyaltyRepo := repositories.NewLoyaltyRepository(db.BunDB())
	notifications := repositories.NewNotificationRepository(db.BunDB())
	businesses := repositories.NewBusinessRepository(db.BunDB())

	notifier := realtime.NewNotifier(db.Pool())

	tokens := services.NewTokenRegistry()
	push := services.NewExpoPushClient(cfg.Push.Endpoint)
	mailer := services.NewMailer(cfg.Email.Endpoint, cfg.Email.APIKey, cfg.Email.From)
	notify := services.NewCustomerNotifyService(notifications, push, tokens, mailer)
	reminders := services.NewReminderManager(push, tokens)
	defer reminders.Shutdown()
	search := services.NewSearchService(offers, businesses)

	loyaltyService := loyalty.NewService(loyaltyRepo)
	sm := redemption.NewStateMachine(redemptions, purchases, offers, loyaltyService, notify)
	presenter := redemption.NewPresenter(redemptions, purchases, sm, notifier)
	cancellation := redemption.NewCancellationService(purchases, offers, reminders, notify)

	handlers := web.NewHandlers(db, sm, presenter, cancellation, search, tokens, reminders, purchases, notifications)
	app := web.NewApp(handlers)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return notifier.Run(ctx)
	})

	g.Go(func() error {
		addr := cfg.Server.Addr()
		slog.Info("HTTP server listening", slog.String("type", "http"), slog.String("addr", addr))
		return app.Listen(addr)
	})

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := tracing.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Tracing shutdown failed", slog.Any("error", err))
		}
		return app.ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}
