package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledgerkit/txledger/ledger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	blockSize int
	logFormat string
)

// rootCmd is the single entry point: one positional argument (the input CSV
// path), output to standard output, a non-zero exit with a human-readable
// stderr message on error. No flags are required for correctness;
// block-size and log-format are exposed as optional tunables.
var rootCmd = &cobra.Command{
	Use:   "txledger <transactions.csv>",
	Short: "Process a transaction stream into final per-client account snapshots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLog(logFormat)

		path := args[0]
		initialLog(path)

		file, err := os.Open(path)
		if err != nil {
			return &ledger.Error{Kind: ledger.KindInputOpen,
				Wrapped: fmt.Errorf("opening transactions file %q: %w", path, err)}
		}
		defer file.Close()

		var opts []ledger.Option
		if blockSize > 0 {
			opts = append(opts, ledger.WithBlockSize(blockSize))
		}

		return ledger.Process(file, cmd.OutOrStdout(), opts...)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().IntVar(&blockSize, "block-size", ledger.DefaultTxBlockSize,
		"Number of transactions grouped per persisted block file")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "console",
		"Log format: 'json' or 'console'")
}

func setupLog(format string) {
	if strings.ToLower(format) == "json" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
}

func initialLog(path string) {
	log.Info().
		Str("input", path).
		Int("block_size", blockSize).
		Msg("starting transaction processing")
}

// Execute runs the root command, exiting non-zero with a logged message on
// failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("processing failed")
		os.Exit(1)
	}
}
