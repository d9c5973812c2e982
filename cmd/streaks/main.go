package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/streaks/internal/adapters/export"
	"github.com/okian/streaks/internal/adapters/render"
	"github.com/okian/streaks/internal/app"
	"github.com/okian/streaks/internal/config"
	"github.com/okian/streaks/internal/domain/games"
	"github.com/okian/streaks/internal/seed"
	"github.com/okian/streaks/pkg/logger"
	"github.com/okian/streaks/pkg/metrics"
)

var (
	svc *app.Service

	// Flags.
	flagDate     string
	flagText     string
	flagSeedDays int
	flagSeedSeed int64
	flagPeek     bool
	flagReplace  bool
)

var rootCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Keep score of your daily guessing games",
	Long: `streaks records pasted share texts from daily guessing games
(Framed, GuessTheGame, Bandle, ...), normalizes them into glyph scores,
and derives round distributions and an activity heatmap.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if svc != nil {
			svc.Stop()
		}
	},
}

func setup(ctx context.Context) error {
	if err := logger.Init(os.Stderr); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		logger.Get().Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metrics.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil { //nolint:gosec // local exposition only
				logger.Get().Warn(ctx, "metrics listener stopped", logger.Error(err))
			}
		}()
	}

	svc = app.New(
		app.WithStorePath(cfg.DBPath),
		app.WithCalendarWeeks(cfg.CalendarWeeks),
		app.WithLogger(logger.Get()),
	)
	return svc.Start(ctx)
}

// resolveGame checks a game argument and suggests a close match for typos.
func resolveGame(id string) (string, error) {
	if _, ok := games.Lookup(id); ok {
		return id, nil
	}
	if suggestion := games.Suggest(id); suggestion != "" {
		return "", fmt.Errorf("unknown game %q (did you mean %q?)", id, suggestion)
	}
	return "", fmt.Errorf("unknown game %q", id)
}

func today() string {
	return time.Now().Format("2006-01-02")
}

var recordCmd = &cobra.Command{
	Use:   "record <game>",
	Short: "Record a pasted share text for a game",
	Long: `Record reads a game's share text (from --text or stdin) and stores it
for the given date. The text must match the game's share pattern.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		game, err := resolveGame(args[0])
		if err != nil {
			return err
		}

		text := flagText
		if text == "" {
			raw, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}
			text = string(raw)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("no share text provided")
		}

		date := flagDate
		if date == "" {
			date = today()
		}
		entry, err := svc.RecordScore(cmd.Context(), game, date, text)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), svc.Normalized(game, entry.RawText))
		return nil
	},
}

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Print the combined share summary for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		date := flagDate
		if date == "" {
			date = today()
		}
		text, err := svc.ShareText(cmd.Context(), date)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Materialize round numbers for unprocessed entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		processed, skipped, err := svc.ProcessIncomplete(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "processed %d, skipped %d\n", processed, skipped)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats [game]",
	Short: "Show round distributions",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Catch up on anything recorded but not yet parsed.
		if _, _, err := svc.ProcessIncomplete(cmd.Context()); err != nil {
			return err
		}

		ids := svc.GameIDs()
		if len(args) == 1 {
			id, err := resolveGame(args[0])
			if err != nil {
				return err
			}
			ids = []string{id}
		}

		shown := 0
		for _, id := range ids {
			hist, err := svc.Histogram(cmd.Context(), id)
			if err != nil {
				return err
			}
			if len(hist) == 0 {
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Histogram(id, hist))
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no data recorded yet")
		}
		return nil
	},
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show the activity heatmap",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, _, err := svc.ProcessIncomplete(cmd.Context()); err != nil {
			return err
		}
		cal, err := svc.Calendar(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), render.Heatmap(cal))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all entries to a JSON snapshot",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := export.Filename(time.Now())
		if len(args) == 1 {
			path = args[0]
		}
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := svc.Export(cmd.Context(), f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported to %s\n", path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import entries from a JSON snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		if flagPeek {
			snap, err := export.Read(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s v%d, exported %s, %d entries\n",
				snap.FormatName, snap.Version, snap.ExportedAt.Format(time.RFC3339), len(snap.Entries))
			return nil
		}

		imported, err := svc.Import(cmd.Context(), f, flagReplace)
		if err != nil {
			return err
		}
		if flagReplace {
			fmt.Fprintf(cmd.OutOrStdout(), "replaced history with %d entries\n", imported)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries\n", imported)
		return nil
	},
}

var gamesCmd = &cobra.Command{
	Use:   "games",
	Short: "List supported games",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range svc.GameIDs() {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the store with generated demo entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		gen := seed.NewGenerator(
			seed.WithDays(flagSeedDays),
			seed.WithSeed(flagSeedSeed),
		)
		added, err := gen.Populate(cmd.Context(), svc.Store(), time.Now())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d entries\n", added)
		return nil
	},
}

func init() {
	recordCmd.Flags().StringVarP(&flagDate, "date", "d", "", "Date of the score (YYYY-MM-DD, default today)")
	recordCmd.Flags().StringVarP(&flagText, "text", "t", "", "Share text (default read from stdin)")
	shareCmd.Flags().StringVarP(&flagDate, "date", "d", "", "Date of the summary (YYYY-MM-DD, default today)")
	importCmd.Flags().BoolVar(&flagPeek, "peek", false, "Show snapshot metadata without importing")
	importCmd.Flags().BoolVar(&flagReplace, "replace", false, "Delete all existing entries before importing (overwrites current data)")
	seedCmd.Flags().IntVar(&flagSeedDays, "days", 120, "Number of trailing days to fill")
	seedCmd.Flags().Int64Var(&flagSeedSeed, "seed", 42, "Random seed")

	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(calendarCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(gamesCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
