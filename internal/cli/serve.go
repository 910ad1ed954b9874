package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"wastenot/cmd/config"
	"wastenot/internal/utils"
)

const shutdownTimeout = 10 * time.Second

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:          "serve",
		Short:        "Run the HTTP API and the daily reminder job",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = utils.GetConfig("APP_PORT")
			}
			return runServe(rootOpts, port, cmd)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default APP_PORT)")
	return cmd
}

func runServe(opts *RootOptions, port string, cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	services, err := openServices(ctx, opts)
	if err != nil {
		return err
	}

	app, err := config.NewApp(services)
	if err != nil {
		return err
	}

	scheduler, err := config.StartReminders(services)
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(":" + port)
	}()
	log.Infof("WasteNot listening on :%s", port)

	select {
	case <-ctx.Done():
		log.Info("Shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	case err := <-errCh:
		if err != nil && !errors.Is(err, os.ErrClosed) {
			return err
		}
		return nil
	}
}
