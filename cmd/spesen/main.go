package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/mwinkler/spesen/pkg/calc"
	"github.com/mwinkler/spesen/pkg/config"
	"github.com/mwinkler/spesen/pkg/csv"
	"github.com/mwinkler/spesen/pkg/importer"
	"github.com/mwinkler/spesen/pkg/models"
	"github.com/mwinkler/spesen/pkg/server"
	"github.com/mwinkler/spesen/pkg/store"
)

var (
	cliFilters filters
	cfgFile    string
)

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "spesen",
	})
}

var rootCmd = &cobra.Command{
	Use:   "spesen",
	Short: "Reconcile dispatch and time exports into expense records",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var importCmd = &cobra.Command{
	Use:   "import [flags] <dispo_file> <time_file>",
	Short: "Reconcile a disposition report with a time export",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		dispoData, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read dispo file: %w", err)
		}
		timeData, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read time file: %w", err)
		}

		st := store.New(cfg.Store)
		existing, err := st.Load()
		if err != nil {
			return err
		}

		imp := importer.New(logger)
		result, err := imp.Run(dispoData, timeData, filepath.Base(args[1]), &cfg.AppConfig, existing)
		if err != nil {
			return err
		}

		for _, line := range result.Logs {
			fmt.Println(line)
		}
		fmt.Println()
		printPreview(result.Movements)

		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			pp.Println(result)
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		switch {
		case !result.Success:
			logger.Warn("import not persisted", "reason", "reconciliation reported failure")
		case dryRun:
			logger.Info("dry run, nothing persisted", "movements", len(result.Movements))
		default:
			if err := st.Save(result.Movements); err != nil {
				return err
			}
			logger.Info("movements persisted", "store", cfg.Store, "movements", len(result.Movements))
		}
		return nil
	},
}

// printPreview renders one line per record: green when both sources were
// merged, gray when only one side contributed.
func printPreview(movements []*models.Movement) {
	mergedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	partialStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	for _, m := range movements {
		line := fmt.Sprintf("%s | %-8s | %-30s | %s - %s | %5.2fh | %6.2f",
			m.Date, m.EmployeeID, m.Location, m.StartTimeCorr, m.EndTimeCorr, m.DurationNetto, m.Amount)
		if m.Location != "" && m.HasTimes() {
			fmt.Println(mergedStyle.Render("= " + line))
		} else {
			fmt.Println(partialStyle.Render("+ " + line))
		}
	}
}

var exportCmd = &cobra.Command{
	Use:   "export [flags]",
	Short: "Export stored movements as CSV",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		movements, err := store.New(cfg.Store).Load()
		if err != nil {
			return err
		}

		output := csv.Create(models.ExportHeader, movements, cliFilters.toFilterFunc())

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			fmt.Print(string(output))
			return nil
		}
		return os.WriteFile(outPath, output, 0644)
	},
}

var recalcCmd = &cobra.Command{
	Use:   "recalc",
	Short: "Reapply the configuration to all stored non-manual movements",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		st := store.New(cfg.Store)
		movements, err := st.Load()
		if err != nil {
			return err
		}

		calc.RecalculateAll(movements, &cfg.AppConfig)
		if err := st.Save(movements); err != nil {
			return err
		}
		logger.Info("recalculation complete", "movements", len(movements), "store", cfg.Store)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the import API over HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		logger := newLogger()

		cfg, err := config.Build(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		port, _ := cmd.Flags().GetString("port")
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		logger.Info("starting server", "addr", addr, "store", cfg.Store)
		return server.New(cfg, logger).Start(addr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file (default is config.yaml)")
	rootCmd.PersistentFlags().String("store", "", "Movement store file (default movements.yaml)")

	importCmd.Flags().Bool("dry-run", false, "Reconcile and preview without persisting")
	importCmd.Flags().Bool("debug", false, "Dump the full import result")

	exportCmd.Flags().StringVar(&cliFilters.startDate, "start", "", "Start date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&cliFilters.endDate, "end", "", "End date (YYYY-MM-DD)")
	exportCmd.Flags().StringVar(&cliFilters.employee, "employee", "", "Filter by employee id")
	exportCmd.Flags().Float64Var(&cliFilters.minAmount, "min", 0, "Minimum amount")
	exportCmd.Flags().Float64Var(&cliFilters.maxAmount, "max", 0, "Maximum amount")
	exportCmd.Flags().String("out", "", "Output file (default stdout)")

	serveCmd.Flags().String("port", "3000", "Server port")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(recalcCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	_ = gotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
