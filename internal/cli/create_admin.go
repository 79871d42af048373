package cli

import (
	"context"
	"fmt"
	"log"
	"time"

	"afh-prelander-service/internal/app"
	"afh-prelander-service/internal/config"
	pgstore "afh-prelander-service/internal/infra/postgres"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
)

// NewCreateAdminCmd seeds or resets a dashboard operator account.
func NewCreateAdminCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "create-admin <email> <password>",
		Short: "Create or reset a dashboard admin account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return createAdmin(cmd.Context(), *configPath, args[0], args[1])
		},
	}
}

func createAdmin(ctx context.Context, configPath, email, password string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	hash, err := app.HashPassword(password)
	if err != nil {
		return err
	}

	id, err := pgstore.NewAdminUserStore(pool).Upsert(ctx, email, hash, time.Now().UTC())
	if err != nil {
		return err
	}
	log.Printf("admin account ready: %s (%s)", email, id)
	return nil
}
