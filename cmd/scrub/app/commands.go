package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/scrub"
	"github.com/agentstation/scrub/internal/cmd/output"
	"github.com/agentstation/scrub/internal/fillers"
	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/pipeline"
)

// newRepairCommand creates the repair command: the full detect,
// correct, enrich loop over a CSV file.
func (a *App) newRepairCommand() *cobra.Command {
	var (
		outputPath    string
		changelogPath string
		maxIterations int
		fillerName    string
		fillTimeout   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "repair <input.csv>",
		Short: "Repair a customer CSV file",
		Long: `Repair runs the full convergence loop over a CSV file: detection,
deterministic correction, and enrichment, repeated until the data is
clean or the iteration budget runs out.

The repaired file is written next to the input unless -o is given, and
every mutation is appended to the change log. A run that does not
converge still writes its best-effort output; only unreadable input is
an error.`,
		Example: `  scrub repair customers.csv
  scrub repair customers.csv -o clean.csv --filler none
  scrub repair customers.csv --max-iterations 5 -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if outputPath == "" {
				outputPath = defaultOutputPath(input)
			}

			filler, err := fillers.New(fillerName)
			if err != nil {
				return err
			}

			opts := []scrub.Option{
				scrub.WithFile(input),
				scrub.WithFiller(filler),
				scrub.WithLogger(a.logger),
				scrub.WithMaxIterations(maxIterations),
				scrub.WithFillTimeout(fillTimeout),
				scrub.WithPassHook(func(pass int, phase pipeline.Phase, count int) {
					a.logger.Debug().
						Int("pass", pass).
						Str("phase", string(phase)).
						Int("count", count).
						Msg("pipeline stage complete")
				}),
			}

			s, err := scrub.New(opts...)
			if err != nil {
				return err
			}

			// A run that hangs on the enrichment provider still ends.
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.RepairTimeout)
			defer cancel()

			result, err := s.Repair(ctx)
			if err != nil {
				return err
			}

			if err := result.Dataset.EncodeFile(outputPath); err != nil {
				return err
			}
			if err := result.Changes.WriteFile(changelogPath, result.Metadata.StartTime); err != nil {
				return err
			}

			if !result.Converged {
				a.logger.Warn().
					Int("iterations", result.Iterations).
					Int("remaining_issues", result.RemainingIssues()).
					Msg("run did not converge, output is best-effort")
			}
			a.logger.Info().
				Str("output", outputPath).
				Str("changelog", changelogPath).
				Msg("repair complete")

			return a.printSummary(output.NewSummary(result))
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default <input>"+constants.DefaultOutputSuffix+".csv)")
	cmd.Flags().StringVar(&changelogPath, "changelog", a.config.Changelog, "append-only change log destination")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", a.config.MaxIterations, "repair loop iteration budget")
	cmd.Flags().StringVar(&fillerName, "filler", a.config.Filler, "enrichment filler: "+strings.Join(fillers.Names(), ", "))
	cmd.Flags().DurationVar(&fillTimeout, "timeout", a.config.FillTimeout, "per-field enrichment call timeout")

	return cmd
}

// newDetectCommand creates the detect command: a single read-only
// detection pass, no mutation.
func (a *App) newDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <input.csv>",
		Short: "Report data issues without changing anything",
		Long: `Detect runs one validation pass over a CSV file and reports every
finding grouped by column: missing, malformed, non-canonical, and
implausible values, plus duplicate rows. The file is never modified.`,
		Example: `  scrub detect customers.csv
  scrub detect customers.csv -f json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scrub.New(scrub.WithFile(args[0]))
			if err != nil {
				return err
			}

			report := s.Detect(cmd.Context())
			if report.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "no issues found")
				return nil
			}

			format := output.DetectFormat(a.config.Format)
			formatter := output.NewFormatter(format)
			switch format {
			case output.FormatTable, output.FormatWide:
				return formatter.Format(os.Stdout, output.ReportData(report))
			default:
				return formatter.Format(os.Stdout, output.ReportRows(report))
			}
		},
	}
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "scrub version %s\n", a.version)
			fmt.Fprintf(w, "commit: %s\n", a.commit)
			fmt.Fprintf(w, "built: %s\n", a.date)
			fmt.Fprintf(w, "built by: %s\n", a.builtBy)
			fmt.Fprintf(w, "go version: %s\n", runtime.Version())
			fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// newCompletionCommand creates the shell completion command.
func (a *App) newCompletionCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "completion [bash|zsh|fish|powershell]",
		Short:     "Generate shell completion script",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
		},
	}
}

// printSummary renders the run summary in the configured format.
func (a *App) printSummary(summary output.Summary) error {
	format := output.DetectFormat(a.config.Format)
	formatter := output.NewFormatter(format)
	switch format {
	case output.FormatTable, output.FormatWide:
		return formatter.Format(os.Stdout, output.SummaryData(summary))
	default:
		return formatter.Format(os.Stdout, summary)
	}
}

// defaultOutputPath derives the output filename from the input:
// customers.csv becomes customers_scrubbed.csv.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)
	if ext == "" {
		ext = ".csv"
	}
	return stem + constants.DefaultOutputSuffix + ext
}
