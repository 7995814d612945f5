package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bigpicture/pkg/server"
)

const defaultAddr = "localhost:8080"

// serveCommand creates the serve command, which hosts the interactive viewer.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		title string
		ttl   time.Duration
		src   sourceFlags
		lay   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "serve [path|tree.json|layout.json]",
		Short: "Serve the interactive diagram over HTTP",
		Long: `Serve the interactive diagram over HTTP.

Every browser tab gets its own session holding a private copy of the layout,
so toggles in one tab never affect another. Sessions idle longer than --ttl
are discarded. The JSON API lives under /api/sessions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], addr, title, ttl, src, lay)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&title, "title", "", "page title (default: root name)")
	cmd.Flags().DurationVar(&ttl, "ttl", server.DefaultSessionTTL, "idle session lifetime")
	src.register(cmd)
	lay.register(cmd)

	return cmd
}

func (c *CLI) runServe(ctx context.Context, input, addr, title string, ttl time.Duration, src sourceFlags, lay layoutFlags) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	in, err := c.load(ctx, runner, input, src, lay)
	if err != nil {
		return err
	}
	prog.done("Loaded "+plural(in.layout.Len(), "box"), "input", input, "kind", in.kind)

	if title == "" {
		title = in.tree.Label
	}
	srv, err := server.New(server.Config{
		Layout:     in.layout,
		Title:      title,
		SessionTTL: ttl,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	printSuccess("Serving %s", title)
	printKeyValue("URL", "http://"+addr+"/")
	printDetail("Press Ctrl+C to stop")
	return srv.ListenAndServe(ctx, addr)
}
