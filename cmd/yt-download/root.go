package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ytget/ytkit/internal/download"
)

func newRootCmd() *cobra.Command {
	var (
		opts    commonOptions
		dryRun  bool
		install bool
	)

	cmd := &cobra.Command{
		Use:           "yt-download [flags] URL",
		Short:         "Download Youtube videos or playlists in high quality",
		Example:       `yt-download -f mp3 -o music "https://www.youtube.com/playlist?list=PL..."`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.initLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if install {
				if err := download.Install(ctx); err != nil {
					return err
				}
			}

			service := newDownloader(progressOutput(opts.quiet))
			if dryRun {
				line, err := service.DryRun(ctx, args[0], req)
				if err != nil {
					return reportRetrieval(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
				return nil
			}

			_, err = service.Download(ctx, args[0], req)
			return reportRetrieval(err)
		},
	}

	opts.addPersistentFlags(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the yt-dlp command line instead of downloading")
	cmd.Flags().BoolVar(&install, "install", false, "Install yt-dlp and ffmpeg before downloading")

	cmd.AddCommand(newCommentsCmd(&opts))
	return cmd
}

// progressOutput returns where progress bars are drawn, nil to hide them
func progressOutput(quiet bool) io.Writer {
	if quiet {
		return nil
	}
	return os.Stderr
}
