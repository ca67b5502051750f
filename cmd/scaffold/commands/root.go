// Package commands implements the scaffold command line.
package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/origadmin/scaffold/internal/config"
	"github.com/origadmin/scaffold/internal/errors"
	"github.com/origadmin/scaffold/internal/logger"
)

// BuildInfo carries the values injected at link time.
type BuildInfo struct {
	Version   string
	Commit    string
	TreeState string
	Date      string
	BuiltBy   string
}

// NewRootCmd creates the scaffold command tree. Every call returns an
// independent tree with its own configuration.
func NewRootCmd(build BuildInfo) *cobra.Command {
	v := config.NewViper()
	state := &state{viper: v}

	root := &cobra.Command{
		Use:   config.Application,
		Short: config.Description,
		Long: `scaffold renders syntax models of types, members and documents and
generates solution scaffolds (projects, folders, code files) from them.

Examples:
  scaffold entity Customer --props "Name:string,Email:string"
  scaffold generate -f shop.yaml -o ./src
  scaffold generate -f shop.yaml --dry-run > shop.txtar`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			pterm.SetDefaultOutput(cmd.ErrOrStderr())
			cfg, err := config.Load(v, state.configFile)
			if err != nil {
				return err
			}
			state.cfg = cfg
			if err := logger.Initialize(cfg.Log.JSON, cfg.Log.Debug); err != nil {
				return errors.Wrap(err, "failed to initialize logger")
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&state.configFile, "config", "c", "", "configuration file (default: scaffold.yaml in the working directory)")
	flags.StringP("output", "o", "", "output directory")
	flags.Bool("dry-run", false, "generate in memory and print a txtar archive instead of writing files")
	flags.Bool("debug", false, "enable debug logging")
	flags.Bool("json-log", false, "log as JSON")
	bindFlags(v, root)

	root.AddCommand(
		newEntityCmd(state),
		newGenerateCmd(state),
		newVersionCmd(build),
	)
	return root
}

func bindFlags(v *viper.Viper, root *cobra.Command) {
	flags := root.PersistentFlags()
	for key, name := range map[string]string{
		"output":    "output",
		"dry_run":   "dry-run",
		"log.debug": "debug",
		"log.json":  "json-log",
	} {
		// Binding only fails for a nil flag.
		_ = v.BindPFlag(key, flags.Lookup(name))
	}
}

// Execute runs the command line and exits with status 1 on failure.
func Execute(build BuildInfo) {
	defer logger.Sync()
	if err := NewRootCmd(build).Execute(); err != nil {
		logger.Logger.Errorw("command failed", "error", err)
		pterm.Error.Println(err.Error())
		for _, hint := range errors.GetAllHints(err) {
			pterm.Info.Println(hint)
		}
		logger.Sync()
		os.Exit(1)
	}
}
