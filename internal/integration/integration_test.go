package integration

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/domain"
	"afh-prelander-service/internal/infra/memory"
	pgstore "afh-prelander-service/internal/infra/postgres"
	pgmigrations "afh-prelander-service/internal/infra/postgres/migrations"
	infraredis "afh-prelander-service/internal/infra/redis"
	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

func TestFunnelSubmitEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	applyMigrations(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	leadStore := pgstore.NewLeadStore(pool)
	drafts := infraredis.NewDraftStore(redisClient, 5*time.Minute)
	feed := app.NewFeed()
	leads := app.NewLeadService(leadStore, memory.NewDisabledNotifier(), feed)
	funnel := app.NewFunnelService(drafts, leads, "https://afhbestcare.com")

	id, _, err := funnel.Start(ctx)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for _, q := range domain.Questions() {
		if _, err := funnel.Answer(ctx, id, q.ID, q.Options[0].Value); err != nil {
			t.Fatalf("answer %s: %v", q.ID, err)
		}
	}
	if _, err := funnel.SetContact(ctx, id, "name", "John Smith"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	if _, err := funnel.SetContact(ctx, id, "email", "john@example.com"); err != nil {
		t.Fatalf("set email: %v", err)
	}

	outcome, err := funnel.Submit(ctx, id)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !outcome.Result.Stored || outcome.Result.ID == "" {
		t.Fatalf("expected stored lead, got %+v", outcome.Result)
	}
	if !strings.Contains(outcome.RedirectURL, "email=john%40example.com") {
		t.Fatalf("unexpected redirect %q", outcome.RedirectURL)
	}

	stored, err := leadStore.ListBySubmitted(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(stored) != 1 || stored[0].Name != "John Smith" || stored[0].Source != domain.DefaultSource {
		t.Fatalf("unexpected stored leads %+v", stored)
	}
	if stored[0].SearchingFor != "mom" {
		t.Fatalf("expected first option answer persisted, got %q", stored[0].SearchingFor)
	}

	// The draft is gone once the lead is in.
	if _, err := funnel.Get(ctx, id); err != domain.ErrSessionNotFound {
		t.Fatalf("expected draft discarded, got %v", err)
	}
}

func TestAdminLoginAgainstPostgres(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()

	applyMigrations(t, ctx, pgURL)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	users := pgstore.NewAdminUserStore(pool)
	hash, err := app.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if _, err := users.Upsert(ctx, "Admin@Example.com", hash, time.Now().UTC()); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	auth := app.NewAuthService(users, memory.NewSessionStore(), time.Hour, 5*time.Second)

	// Lookup is case-insensitive on email.
	session, err := auth.Login(ctx, "admin@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, ok := auth.Current(ctx, session.Token); !ok {
		t.Fatalf("expected session to resolve")
	}

	if _, err := auth.Login(ctx, "admin@example.com", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func applyMigrations(t *testing.T, ctx context.Context, dsn string) {
	t.Helper()
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "leads", "POSTGRES_PASSWORD": "leadspass", "POSTGRES_DB": "leadsdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://leads:leadspass@%s:%s/leadsdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
