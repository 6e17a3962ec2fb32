// setupctl is the operator CLI: event seeding, cohort assignment, property
// boards, round resets, token minting for admins and legacy data import.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/campusopoly/platform/internal/auth"
	"github.com/campusopoly/platform/internal/domain"
	"github.com/campusopoly/platform/internal/importer"
	"github.com/campusopoly/platform/internal/infra"
	"github.com/campusopoly/platform/internal/repository"
	"github.com/campusopoly/platform/internal/service"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

type app struct {
	cfg    *infra.Config
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	a := &app{logger: logger}

	root := &cobra.Command{
		Use:           "setupctl",
		Short:         "Operator tooling for the event ledger platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := infra.LoadConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg

			pool, err := infra.NewPostgresPool(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			a.pool = pool
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.pool != nil {
				a.pool.Close()
			}
		},
	}

	root.AddCommand(
		migrateCmd(a),
		seedEventCmd(a),
		cohortsCmd(a),
		propertiesCmd(a),
		resetRound2Cmd(a),
		adminTokenCmd(a),
		importCmd(a),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func migrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(*cobra.Command, []string) error {
			return infra.RunMigrations(a.cfg.DSN(), a.logger)
		},
	}
}

func seedEventCmd(a *app) *cobra.Command {
	var (
		name           string
		initialBalance int64
		loanLimit      int64
		days           int
	)
	cmd := &cobra.Command{
		Use:   "seed-event",
		Short: "Create an event with its economic parameters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			event := &domain.Event{
				ID:                 uuid.New(),
				Name:               name,
				StartDate:          time.Now(),
				EndDate:            time.Now().AddDate(0, 0, days),
				InitialTeamBalance: initialBalance,
				LoanLimit:          loanLimit,
			}
			if err := repository.NewEventRepository().Create(cmd.Context(), a.pool, event); err != nil {
				return err
			}
			fmt.Println(event.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "event name")
	cmd.Flags().Int64Var(&initialBalance, "initial-balance", 5000, "opening balance per team")
	cmd.Flags().Int64Var(&loanLimit, "loan-limit", 3000, "max single loan amount")
	cmd.Flags().IntVar(&days, "days", 3, "event duration in days")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) setupService() *service.SetupService {
	return service.NewSetupService(
		a.pool,
		repository.NewTeamRepository(),
		repository.NewCohortRepository(),
		repository.NewPropertyRepository(),
		a.logger,
	)
}

func cohortsCmd(a *app) *cobra.Command {
	var (
		eventID string
		num     int
	)
	cmd := &cobra.Command{
		Use:   "cohorts",
		Short: "Partition the event's teams into cohorts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(eventID)
			if err != nil {
				return fmt.Errorf("invalid event id: %w", err)
			}
			cohorts, err := a.setupService().CreateCohorts(cmd.Context(), id, num)
			if err != nil {
				return err
			}
			for _, c := range cohorts {
				fmt.Printf("%s\t%d teams\n", c.ID, len(c.TeamIDs))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&eventID, "event", "", "event UUID")
	cmd.Flags().IntVar(&num, "num", 2, "number of cohorts")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func propertiesCmd(a *app) *cobra.Command {
	var eventID string
	cmd := &cobra.Command{
		Use:   "properties",
		Short: "Seed the property board for every cohort",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(eventID)
			if err != nil {
				return fmt.Errorf("invalid event id: %w", err)
			}
			seeded, err := a.setupService().InitializeCohortProperties(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("%d properties seeded\n", seeded)
			return nil
		},
	}
	cmd.Flags().StringVar(&eventID, "event", "", "event UUID")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func resetRound2Cmd(a *app) *cobra.Command {
	var eventID string
	cmd := &cobra.Command{
		Use:   "reset-round2",
		Short: "Clear cohorts, boards and tokens for re-staging round 2",
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(eventID)
			if err != nil {
				return fmt.Errorf("invalid event id: %w", err)
			}
			return a.setupService().ResetRound2Data(cmd.Context(), id)
		},
	}
	cmd.Flags().StringVar(&eventID, "event", "", "event UUID")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func adminTokenCmd(a *app) *cobra.Command {
	var (
		eventID string
		name    string
		super   bool
	)
	cmd := &cobra.Command{
		Use:   "admin-token",
		Short: "Mint an admin or super-admin JWT",
		RunE: func(_ *cobra.Command, _ []string) error {
			id, err := uuid.Parse(eventID)
			if err != nil {
				return fmt.Errorf("invalid event id: %w", err)
			}
			issuer, err := auth.NewTokenIssuer(a.cfg.JWTSecret, a.cfg.JWTTeamExpiry, a.cfg.JWTAdminExpiry)
			if err != nil {
				return err
			}
			role := auth.RoleAdmin
			if super {
				role = auth.RoleSuperAdmin
			}
			token, err := issuer.IssueAdminToken(uuid.New(), id, name, role)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	cmd.Flags().StringVar(&eventID, "event", "", "event UUID")
	cmd.Flags().StringVar(&name, "name", "admin", "display name")
	cmd.Flags().BoolVar(&super, "super", false, "mint a super-admin token")
	_ = cmd.MarkFlagRequired("event")
	return cmd
}

func importCmd(a *app) *cobra.Command {
	var (
		file   string
		verify bool
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a legacy document-database export",
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			var export importer.Export
			if err := json.Unmarshal(data, &export); err != nil {
				return fmt.Errorf("parse export: %w", err)
			}

			im := importer.New(a.pool, a.logger)
			if err := im.Run(cmd.Context(), export); err != nil {
				return err
			}
			if !verify {
				return nil
			}

			mismatches, err := im.Verify(cmd.Context(), export.EventID)
			if err != nil {
				return err
			}
			for _, m := range mismatches {
				fmt.Printf("MISMATCH %s (%s): balance=%d ledger=%d\n", m.Name, m.TeamID, m.Balance, m.LedgerNewest)
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("%d balance mismatches", len(mismatches))
			}
			fmt.Println("import verified")
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the export JSON")
	cmd.Flags().BoolVar(&verify, "verify", true, "cross-check balances after import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
