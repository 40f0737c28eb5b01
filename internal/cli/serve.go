package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stategraph/internal/api"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	dataDir   string // reference data directory
	exportDir string // directory receiving exported documents
}

// shutdownTimeout bounds graceful shutdown once the context is
// cancelled.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command running the editor API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the workflow editor API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8777", "listen address")
	cmd.Flags().StringVar(&opts.dataDir, "data", "data", "reference data directory")
	cmd.Flags().StringVar(&opts.exportDir, "export-dir", "exports", "directory for exported documents")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	entities, err := c.loadEntities(opts.dataDir)
	if err != nil {
		return err
	}
	dungeons, err := loadDungeonIndex(opts.dataDir)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           api.New(entities, dungeons, c.Logger, opts.exportDir).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("serving", "addr", opts.addr, "entities", entities.Len(), "dungeons", dungeons.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
