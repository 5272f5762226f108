package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/t0mdavid-m/seqviz/pkg/buildinfo"
	"github.com/t0mdavid-m/seqviz/pkg/config"
)

// Execute runs the seqviz CLI under ctx and returns an error if any
// command fails.
//
// The function sets up the root command with all subcommands (render,
// preview, serve, cache), configures logging based on the --verbose flag,
// and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)
	cfg := config.Default()

	root := &cobra.Command{
		Use:          appName,
		Short:        "Seqviz renders hierarchical clusterings as dendrograms",
		Long:         `Seqviz is a CLI tool for laying out and rendering hierarchical clusterings and phylogenies as dendrograms and node-link diagrams, from Newick or linkage input.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)

			path := configPath
			if path == "" {
				var err error
				if path, err = config.DefaultPath(); err != nil {
					return err
				}
			}
			loaded, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: "+appName+"/config.toml in the user config dir)")

	root.AddCommand(newRenderCmd(&cfg))
	root.AddCommand(newPreviewCmd(&cfg))
	root.AddCommand(newServeCmd(&cfg))
	root.AddCommand(newCacheCmd(&cfg))

	return root.ExecuteContext(ctx)
}
