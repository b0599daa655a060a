package main

import (
	"context"
	"fmt"
	"os"

	"hris-portal/internal/app"
	"hris-portal/internal/bootstrap"
	"hris-portal/internal/shared/apperror"
	"hris-portal/internal/shared/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfg config.Config
	var logger *zap.Logger

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Database migrations and tenant seeding",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg = config.Load()
			l, err := bootstrap.NewLogger(cfg.AppEnv)
			if err != nil {
				return err
			}
			logger = l
			apperror.Init()
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	goose := func(use, short, command string) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.RunMigrations(cmd.Context(), cfg, command)
			},
		}
	}

	root.AddCommand(
		goose("up", "Apply all pending migrations", "up"),
		goose("down", "Roll back the latest migration", "down"),
		goose("status", "Print migration status", "status"),
		newSeedCmd(&cfg, &logger),
	)
	return root
}

func newSeedCmd(cfg *config.Config, logger **zap.Logger) *cobra.Command {
	var opts app.SeedOptions

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a company with default roles and its first admin user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := app.RunSeed(cmd.Context(), *cfg, opts, *logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "company %s\nadmin   %s\n", res.CompanyID, res.AdminID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.CompanyName, "company", "", "company name")
	cmd.Flags().StringVar(&opts.CompanyEmail, "company-email", "", "company contact e-mail")
	cmd.Flags().StringVar(&opts.AdminName, "admin-name", "Administrator", "admin display name")
	cmd.Flags().StringVar(&opts.AdminEmail, "admin-email", "", "admin login e-mail")
	cmd.Flags().StringVar(&opts.AdminPassword, "admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "admin password (defaults to $SEED_ADMIN_PASSWORD)")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("admin-email")
	return cmd
}
