package main

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ytget/ytkit/internal/convert"
	"github.com/ytget/ytkit/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		platform.LogError("%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		output  string
		strict  bool
		summary bool
		verbose bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:           "comments2csv [flags] JSON_FILE",
		Short:         "Convert YouTube comments JSON to CSV",
		Example:       "comments2csv -o talks.csv comments.json",
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			platform.InitLogging(platform.LevelFromFlags(quiet, verbose))

			converter := convert.NewConverter(convert.FlattenOptions{Strict: strict})
			report, err := converter.ConvertFile(args[0], output)
			if convert.IsInformational(err) {
				platform.LogGeneral("%s", informationalMessage(err))
				return nil
			}
			if err != nil {
				return err
			}

			platform.LogDebug("%d rows from %d groups (%s)", report.Rows, report.Groups, report.Shape)
			platform.LogGeneral("Successfully saved to: %s", platform.AbsPath(report.OutputPath))
			if summary {
				convert.RenderSummary(cmd.OutOrStdout(), report.Summary)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file (default: input path with a .csv extension)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject documents mixing grouped and flat elements")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print the number of comments per video")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print debug output")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors")

	return cmd
}

// informationalMessage is printed when there was nothing to convert
func informationalMessage(err error) string {
	if errors.Is(err, convert.ErrNoComments) {
		return "No comments found to convert."
	}
	return "JSON file is empty."
}
