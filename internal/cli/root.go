// Package cli implements the dnstories command line client.
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/DesignerNewsStories/internal/domain"
	"github.com/DesignerNewsStories/internal/infra/api"
	"github.com/DesignerNewsStories/internal/infra/datasource"
	"github.com/DesignerNewsStories/pkg/logging"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	server   string
	token    string
	logLevel string
	timeout  time.Duration

	dataSource domain.StoriesDataSource
}

// defaultServer returns the backend URL, checking DN_API_URL first.
func defaultServer() string {
	if s := os.Getenv("DN_API_URL"); s != "" {
		return s
	}
	return "https://api.designernews.co"
}

// NewRootCmd creates the root cobra command for the dnstories CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "dnstories",
		Short: "Browse Designer News stories from the terminal",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.NewLogger(cmd.ErrOrStderr(), opts.logLevel, "text")
			service, err := api.NewDesignerNewsService(opts.server,
				api.WithTimeout(opts.timeout),
				api.WithToken(opts.token),
				api.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			logger.Debug("Using backend", "server", opts.server)
			opts.dataSource = datasource.NewStoriesRemoteDataSource(service).WithLogger(logger)
			return nil
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.server, "server", defaultServer(), "Designer News API URL (or DN_API_URL env)")
	root.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("DN_API_TOKEN"), "API bearer token (or DN_API_TOKEN env)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP request timeout")

	root.AddCommand(
		newTopCmd(opts),
		newSearchCmd(opts),
	)
	return root
}

func newTopCmd(opts *rootOptions) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "List top stories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd.OutOrStdout(), opts.dataSource.LoadTopStories(cmd.Context(), page))
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search stories",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return printResult(cmd.OutOrStdout(), opts.dataSource.Search(cmd.Context(), args[0], page))
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	return cmd
}

func printResult(w io.Writer, result domain.Result[[]domain.Story]) error {
	stories, err := result.Get()
	if err != nil {
		return err
	}
	for _, s := range stories {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n",
			strconv.FormatInt(s.ID, 10), s.Title, s.CreatedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}
