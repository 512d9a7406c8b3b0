// Command admin is the Ranking Padel maintenance CLI.
//
// Usage:
//
//	ranking-padel-admin sweep
//	ranking-padel-admin renumber --grupo "Masculino A"
//	ranking-padel-admin renumber --all
//	ranking-padel-admin seed
//	ranking-padel-admin push-test --jugador 7 --mensaje "hola"
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/lidersalinas/ranking-padel-api/internal/config"
	"github.com/lidersalinas/ranking-padel-api/internal/db"
	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
	"github.com/lidersalinas/ranking-padel-api/internal/push"
	"github.com/lidersalinas/ranking-padel-api/internal/seed"
	"github.com/lidersalinas/ranking-padel-api/internal/store/postgres"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "ranking-padel-admin",
		Short: "Ranking Padel maintenance CLI",
	}

	root.AddCommand(sweepCmd())
	root.AddCommand(renumberCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(pushTestCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// sweep command
// --------------------------------------------------------------------------

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Resolve stale pending challenges as walkovers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := postgres.New(pool)
				svc := ladder.NewService(store, nil, rulesFrom(cfg), logger)

				start := time.Now()
				resolved := svc.SweepExpired(ctx, time.Now())
				logger.Info("Sweep finished",
					"resolved", resolved,
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// renumber command
// --------------------------------------------------------------------------

func renumberCmd() *cobra.Command {
	var (
		group string
		all   bool
	)
	cmd := &cobra.Command{
		Use:   "renumber",
		Short: "Rewrite a group's ladder positions as a dense 1..n sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			if group == "" && !all {
				return fmt.Errorf("--grupo or --all is required")
			}
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := postgres.New(pool)

				groups := []string{group}
				if all {
					var err error
					if groups, err = store.Groups(ctx); err != nil {
						return err
					}
				}

				for _, g := range groups {
					n, err := store.RenumberGroup(ctx, g)
					if err != nil {
						return fmt.Errorf("renumber %q: %w", g, err)
					}
					logger.Info("Group renumbered", "grupo", g, "pairs", n)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&group, "grupo", "", `Group label, e.g. "Masculino A"`)
	cmd.Flags().BoolVar(&all, "all", false, "Renumber every active group")
	return cmd
}

// --------------------------------------------------------------------------
// seed command
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed a demo league into a fresh development database",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				store := postgres.New(pool)
				start := time.Now()
				result, err := seed.Demo(ctx, pool, store, logger)
				if err != nil {
					return err
				}
				logger.Info("Seed finished",
					"duration", time.Since(start).Round(time.Millisecond),
					"summary", result.Summary())
				for _, e := range result.Errors {
					logger.Error("seed error", "error", e)
				}
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// push-test command
// --------------------------------------------------------------------------

func pushTestCmd() *cobra.Command {
	var (
		playerID int
		message  string
	)
	cmd := &cobra.Command{
		Use:   "push-test",
		Short: "Enqueue a test push notification for a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == 0 {
				return fmt.Errorf("--jugador is required")
			}
			return run(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				pushStore := push.NewStore(pool)
				err := pushStore.Enqueue(ctx, []int{playerID}, "Ranking Pádel", message,
					map[string]string{"type": "test"})
				if err != nil {
					return err
				}
				logger.Info("Test push queued", "jugador_id", playerID)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&playerID, "jugador", 0, "Player ID to notify")
	cmd.Flags().StringVar(&message, "mensaje", "Notificación de prueba", "Message body")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func rulesFrom(cfg *config.Config) ladder.Rules {
	return ladder.Rules{
		MaxSlotGap:       cfg.MaxSlotGap,
		WeeklyMatchLimit: cfg.WeeklyMatchLimit,
		PromotionWindow:  cfg.PromotionWindow,
		ForfeitGrace:     cfg.ForfeitGrace(),
	}
}

// run handles config loading, DB connection, and context cancellation.
func run(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
