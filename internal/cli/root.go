package cli

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"

	"wastenot/cmd/config"
	migration "wastenot/cmd/database/migrate"
	"wastenot/internal/utils"
	"wastenot/pkg/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	Memory     bool
	Verbose    bool
}

// NewRootCommand creates the root command for the WasteNot CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "wastenot",
		Short: "WasteNot - household inventory and expiry tracker",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			utils.LoadConfig(opts.ConfigPath)
			if opts.Verbose {
				log.SetLevel(log.LevelDebug)
			} else {
				log.SetLevel(log.LevelInfo)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", utils.DefaultConfigPath, "path to the YAML config file")
	cmd.PersistentFlags().BoolVar(&opts.Memory, "memory", false, "keep state in memory instead of the database")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewRemindCommand(opts))

	return cmd
}

// openStore returns the in-memory store with --memory, otherwise the
// configured database after migrating it.
func openStore(opts *RootOptions) (store.StoreRepository, error) {
	if opts.Memory {
		return store.NewMemoryStore(), nil
	}

	db, err := config.ConnectDB()
	if err != nil {
		return nil, err
	}
	if err := migration.Migrate(db); err != nil {
		return nil, err
	}
	return store.NewStoreRepository(db), nil
}

func openServices(ctx context.Context, opts *RootOptions) (*config.Services, error) {
	repo, err := openStore(opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return config.NewServices(ctx, repo)
}
