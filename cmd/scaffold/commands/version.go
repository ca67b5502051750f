package commands

import (
	"fmt"

	goversion "github.com/caarlos0/go-version"
	"github.com/spf13/cobra"

	"github.com/origadmin/scaffold/internal/config"
)

func newVersionCmd(build BuildInfo) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// The version needs neither configuration nor logging.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := buildVersion(build)
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return nil
			}
			out, err := info.JSONString()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "print version information as JSON")
	return cmd
}

func buildVersion(b BuildInfo) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(config.Application, config.Description, config.WebSite),
		func(i *goversion.Info) {
			i.ASCIIName = config.UI
			if b.Commit != "" {
				i.GitCommit = b.Commit
			}
			if b.Version != "" {
				i.GitVersion = b.Version
			}
			if b.TreeState != "" {
				i.GitTreeState = b.TreeState
			}
			if b.Date != "" {
				i.BuildDate = b.Date
			}
			if b.BuiltBy != "" {
				i.BuiltBy = b.BuiltBy
			}
		},
	)
}
