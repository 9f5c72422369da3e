package main

import (
	"github.com/alessio/shellescape"
	"github.com/spf13/cobra"

	"github.com/ytget/ytkit/internal/platform"
)

// DefaultCommentsFile is where comments are saved without --output
const DefaultCommentsFile = "comments.json"

func newCommentsCmd(opts *commonOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "comments URL",
		Short:   "Save the comments of a video or playlist as JSON",
		Example: `yt-download comments -O talks.json "https://www.youtube.com/watch?v=..."`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := opts.request(cmd)
			if err != nil {
				return err
			}

			service := newDownloader(nil)
			if _, err := service.ExportComments(cmd.Context(), args[0], output, req); err != nil {
				return reportRetrieval(err)
			}

			platform.LogInfo("convert with: comments2csv %s", shellescape.Quote(output))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "O", DefaultCommentsFile, "JSON file to write")
	return cmd
}
