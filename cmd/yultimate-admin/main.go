// Command yultimate-admin is the tournament administration CLI.
//
// Usage:
//
//	yultimate-admin migrate up
//	yultimate-admin migrate down
//	yultimate-admin schedule generate --tournament <id> [--swiss-rounds 5] [--skip-balancing]
//	yultimate-admin standings --tournament <id>
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/AshokJ-Official/yultimate-app-sub000/internal/config"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/db"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/service"
	"github.com/AshokJ-Official/yultimate-app-sub000/internal/store"
	"github.com/google/uuid"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "yultimate-admin",
		Short: "Tournament administration CLI",
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(standingsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDB(cfg *config.Config) *sqlx.DB {
	return db.InitDB(cfg.DatabasePath)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			conn := openDB(cfg)
			defer conn.Close()
			return db.RunMigrations(conn, cfg.MigrationsDir)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Revert all migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			conn := openDB(cfg)
			defer conn.Close()
			return db.RollbackMigrations(conn, cfg.MigrationsDir)
		},
	})
	return cmd
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage tournament schedules",
	}
	cmd.AddCommand(scheduleGenerateCmd())
	return cmd
}

func scheduleGenerateCmd() *cobra.Command {
	var tournamentID string
	var swissRounds int
	var skipBalancing bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate (or regenerate) a tournament's fixture",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(tournamentID)
			if err != nil {
				return fmt.Errorf("invalid tournament id: %w", err)
			}

			cfg := config.Load()
			conn := openDB(cfg)
			defer conn.Close()

			svc := service.NewTournamentService(conn,
				store.NewTournamentStore(conn),
				store.NewTeamStore(conn),
				store.NewMatchStore(conn))

			matches, err := svc.CreateSchedule(cmd.Context(), id, service.ScheduleOptions{
				SwissRounds:   swissRounds,
				SkipBalancing: skipBalancing,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ROUND\tFIELD\tTIME\tMATCH")
			for _, m := range matches {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s vs %s\n",
					m.Round, m.Field, m.ScheduledTime.Format("2006-01-02 15:04"), m.TeamAID, m.TeamBID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&tournamentID, "tournament", "", "tournament id (required)")
	cmd.Flags().IntVar(&swissRounds, "swiss-rounds", 0, "swiss round count (default 5)")
	cmd.Flags().BoolVar(&skipBalancing, "skip-balancing", false, "keep the generator's field rotation")
	cmd.MarkFlagRequired("tournament")
	return cmd
}

func standingsCmd() *cobra.Command {
	var tournamentID string

	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print a tournament's leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(tournamentID)
			if err != nil {
				return fmt.Errorf("invalid tournament id: %w", err)
			}

			cfg := config.Load()
			conn := openDB(cfg)
			defer conn.Close()

			svc := service.NewStandingsService(store.NewTeamStore(conn))
			teams, err := svc.Leaderboard(cmd.Context(), id)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tTEAM\tPTS\tW\tD\tL\tPF\tPA\tDIFF\tSPIRIT")
			for i, t := range teams {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%+d\t%.2f\n",
					i+1, t.Name, t.CompetitionPoints(), t.Wins, t.Draws, t.Losses,
					t.PointsFor, t.PointsAgainst, t.PointDifferential(), t.AverageSpiritScore)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&tournamentID, "tournament", "", "tournament id (required)")
	cmd.MarkFlagRequired("tournament")
	return cmd
}
