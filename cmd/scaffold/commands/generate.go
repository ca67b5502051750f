package commands

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/origadmin/scaffold/internal/errors"
	"github.com/origadmin/scaffold/internal/manifest"
)

func newGenerateCmd(s *state) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a solution from a manifest",
		Long: `Generate a solution, its projects and their code from a YAML manifest.
Projects are generated in dependency order; a dependency cycle aborts the run
before anything is written.

Examples:
  scaffold generate -f shop.yaml
  scaffold generate -f shop.yaml -o ./src
  scaffold generate -f shop.yaml --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := afero.ReadFile(afero.NewOsFs(), file)
			if err != nil {
				return errors.Wrapf(err, "read manifest %s", file)
			}
			req, err := manifest.Parse(data)
			if err != nil {
				return errors.Wrapf(err, "manifest %s", file)
			}

			a, err := newApp(s.cfg)
			if err != nil {
				return err
			}
			solution, err := manifest.Build(req, a.factory, manifest.DefaultMappings())
			if err != nil {
				return err
			}
			return a.emit(cmd.Context(), solution, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "scaffold.manifest.yaml", "manifest file")
	return cmd
}
