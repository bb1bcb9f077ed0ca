package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"ballotlab/adapters/excel"
	"ballotlab/adapters/generator"
	"ballotlab/adapters/methods"
	"ballotlab/adapters/postgres"
	"ballotlab/adapters/rng"
	"ballotlab/app"
	"ballotlab/domain/election"
	"ballotlab/domain/simulation"
	"ballotlab/internal"
	"ballotlab/internal/config"
	"ballotlab/internal/errors"
	"ballotlab/internal/report"
	"ballotlab/ports"
	"ballotlab/ui"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ballotlab",
		Short: "ballotlab simulates elections across voting methods",
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newMethodsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		configPath  string
		voters      int
		candidates  int
		trials      int
		seed        int64
		model       string
		format      string
		methodList  string
		workers     int
		completion  string
		committee   int
		apportion   string
		keepProfile bool
		excelPath   string
		serve       bool
		printMD     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation and print the aggregated result as JSON",
		Long: `Run N trials: each trial generates one preference profile from the
configured voter model and tallies every requested method against it.

Example: ballotlab run --voters 100 --candidates 5 --trials 2000 --seed 42 \
    --methods plurality,borda,irv,condorcet,approval_top`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, voters, candidates, trials, seed, model, format, methodList, workers, completion, committee, apportion, keepProfile)
			if excelPath != "" {
				cfg.Report.ExcelFile = excelPath
			}

			logger := internal.DefaultLogger
			ledger, err := openLedger(cfg, logger)
			if err != nil {
				return err
			}

			service := app.NewSimulationService(generator.New(), rng.New(), ledger, logger)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out, err := service.Run(ctx, cfg.Run)
			if err != nil {
				return err
			}
			logger.Info("run finished in %s", out.Elapsed)

			if cfg.Report.ExcelFile != "" {
				if err := excel.NewReportWriter().Write(out.Result, cfg.Report.ExcelFile); err != nil {
					return errors.Wrapf(err, "failed to write workbook %s", cfg.Report.ExcelFile)
				}
				logger.Info("wrote workbook %s", cfg.Report.ExcelFile)
			}

			if printMD {
				fmt.Println(report.Markdown(out.Result))
			} else {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if err := enc.Encode(out.Result); err != nil {
					return err
				}
			}

			if serve {
				logger.Info("serving results on :%s", cfg.Server.Port)
				return ui.NewServer(out.Result, out.Records).ListenAndServe(cfg.Server.Port)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "TOML run configuration file")
	cmd.Flags().IntVar(&voters, "voters", 0, "voters per profile")
	cmd.Flags().IntVar(&candidates, "candidates", 0, "candidates per profile")
	cmd.Flags().IntVar(&trials, "trials", 0, "number of trials")
	cmd.Flags().Int64Var(&seed, "seed", 0, "base random seed")
	cmd.Flags().StringVar(&model, "model", "", "voter model: impartial_culture or spatial")
	cmd.Flags().StringVar(&format, "format", "", "ballot format: ranking, approval or score")
	cmd.Flags().StringVar(&methodList, "methods", "", "comma-separated method names")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel trial workers (0 = NumCPU)")
	cmd.Flags().StringVar(&completion, "completion", "", "Condorcet cycle resolution: schulze or none")
	cmd.Flags().IntVar(&committee, "committee-size", 0, "proportional approval committee size")
	cmd.Flags().StringVar(&apportion, "apportionment", "", "proportional approval weights: d_hondt, sainte_lague, sainte_lague_1_2, sainte_lague_1_4")
	cmd.Flags().BoolVar(&keepProfile, "keep-profiles", false, "retain generated profiles on trial records")
	cmd.Flags().StringVar(&excelPath, "excel", "", "write an xlsx report to this path")
	cmd.Flags().BoolVar(&serve, "serve", false, "serve results over HTTP after the run")
	cmd.Flags().BoolVar(&printMD, "markdown", false, "print the markdown report instead of JSON")

	return cmd
}

// applyFlags layers explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config, voters, candidates, trials int, seed int64, model, format, methodList string, workers int, completion string, committee int, apportion string, keepProfile bool) {
	if cmd.Flags().Changed("voters") {
		cfg.Run.Generator.Voters = voters
	}
	if cmd.Flags().Changed("candidates") {
		cfg.Run.Generator.Candidates = candidates
	}
	if cmd.Flags().Changed("trials") {
		cfg.Run.Trials = trials
	}
	if cmd.Flags().Changed("seed") {
		cfg.Run.Seed = seed
	}
	if cmd.Flags().Changed("model") {
		cfg.Run.Generator.Model = simulation.ModelKind(model)
	}
	if cmd.Flags().Changed("format") {
		cfg.Run.Generator.Format = election.BallotFormat(format)
	}
	if cmd.Flags().Changed("methods") {
		cfg.Run.Methods = splitList(methodList)
	}
	if cmd.Flags().Changed("workers") {
		cfg.Run.Workers = workers
	}
	if cmd.Flags().Changed("completion") {
		cfg.Run.Completion = completion
	}
	if cmd.Flags().Changed("committee-size") {
		cfg.Run.CommitteeSize = committee
	}
	if cmd.Flags().Changed("apportionment") {
		cfg.Run.Apportionment = apportion
	}
	if cmd.Flags().Changed("keep-profiles") {
		cfg.Run.KeepProfiles = keepProfile
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// openLedger connects the postgres result ledger when configured.
func openLedger(cfg config.Config, logger *internal.Logger) (ports.ResultLedger, error) {
	if cfg.Database.URL == "" {
		return nil, nil
	}
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to result ledger")
	}
	if err := postgres.EnsureSchema(db); err != nil {
		return nil, errors.Wrap(err, "failed to prepare ledger schema")
	}
	logger.Info("result ledger connected")
	return postgres.NewResultRepository(db), nil
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List registered voting methods",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range methods.Names(methods.Options{}) {
				fmt.Println(name)
			}
			return nil
		},
	}
}
