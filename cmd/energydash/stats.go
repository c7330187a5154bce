package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dukerupert/energydash/internal/chart"
	"github.com/dukerupert/energydash/internal/dashboard"
	"github.com/dukerupert/energydash/internal/database"
	"github.com/dukerupert/energydash/internal/store"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "stats <household-id>",
		Short: "Print a household's statistics as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid household id %q", args[0])
			}

			db, err := database.Open(a.cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			svc := dashboard.NewService(
				store.NewHouseholdStore(db),
				store.NewReadingStore(db),
				chart.NewRenderer(a.cfg.StaticDir, a.logger.With("component", "chart")),
				nil,
				a.logger.With("component", "dashboard"),
			)

			out := map[string]any{}
			if render {
				report, err := svc.Report(id)
				if err != nil {
					return err
				}
				out["household"], out["stats"], out["charts"] = report.Household, report.Stats, report.ChartURLs
				a.logger.Info("charts written", slog.Int64("household_id", id), slog.String("dir", a.cfg.StaticDir))
			} else {
				home, stats, err := svc.Stats(id)
				if err != nil {
					return err
				}
				out["household"], out["stats"] = home, stats
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "also write the chart files")
	return cmd
}
