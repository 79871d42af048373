package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/config"
	"afh-prelander-service/internal/infra/memory"
	pgstore "afh-prelander-service/internal/infra/postgres"
	redisstore "afh-prelander-service/internal/infra/redis"
	twilionotify "afh-prelander-service/internal/infra/twilio"
	transport "afh-prelander-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the prelander service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	caps := cfg.Capabilities()

	if caps.Persistence {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if caps.Redis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if caps.Persistence {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	// Collaborators: live when configured, disabled stand-ins otherwise.
	var leadStore app.LeadStore = memory.NewDisabledLeadStore()
	var userStore app.AdminUserStore = memory.NewDisabledUserStore()
	if pool != nil {
		leadStore = pgstore.NewLeadStore(pool)
		userStore = pgstore.NewAdminUserStore(pool)
	}

	var notifier app.Notifier = memory.NewDisabledNotifier()
	if caps.Notifications {
		notifier = twilionotify.NewNotifier(
			cfg.Twilio.AccountSID, cfg.Twilio.AuthToken,
			cfg.Twilio.From, cfg.Twilio.NotifyTo,
		)
	}

	funnelTTL := config.TTLDuration(cfg.Funnel.TTL, 30*time.Minute)
	var drafts app.DraftStore
	if redisClient != nil {
		drafts = redisstore.NewDraftStore(redisClient, funnelTTL)
	} else {
		drafts = memory.NewDraftStore(funnelTTL)
	}

	var sessions app.AdminSessionStore
	if redisClient != nil {
		sessions = redisstore.NewSessionStore(redisClient)
	} else {
		sessions = memory.NewSessionStore()
	}

	redirectURL := cfg.Funnel.RedirectURL
	if redirectURL == "" {
		redirectURL = "https://afhbestcare.com"
	}

	feed := app.NewFeed()
	leadService := app.NewLeadService(leadStore, notifier, feed)
	funnelService := app.NewFunnelService(drafts, leadService, redirectURL)

	cacheTTL := config.TTLDuration(cfg.Dashboard.CacheTTL, 15*time.Second)
	leadCache := memory.NewCachedLeadReader(leadStore, cacheTTL)
	dashboardService := app.NewDashboardService(leadCache)

	sessionTTL := config.TTLDuration(cfg.Admin.SessionTTL, 12*time.Hour)
	loginTimeout := config.TTLDuration(cfg.Admin.LoginTimeout, 15*time.Second)
	authService := app.NewAuthService(userStore, sessions, sessionTTL, loginTimeout)

	// New submissions drop the dashboard cache so the next read is fresh.
	invalidate, cancelInvalidate := feed.Subscribe()
	defer cancelInvalidate()
	go func() {
		for range invalidate {
			leadCache.Invalidate()
		}
	}()

	gate := transport.NewAdminGate(authService, caps, cfg.Admin.AllowUnauthenticated)
	router := transport.NewRouter(
		transport.NewFunnelHandler(funnelService),
		transport.NewLeadHandler(leadService),
		transport.NewAdminHandler(authService, dashboardService),
		transport.NewFeedHandler(feed),
		gate,
	)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting prelander service on :%s (persistence=%v notifications=%v auth=%v redis=%v)",
			finalPort, caps.Persistence, caps.Notifications, caps.Auth, caps.Redis)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
