package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/origadmin/scaffold/internal/artifact"
	"github.com/origadmin/scaffold/internal/syntaxgen"
)

func newEntityCmd(s *state) *cobra.Command {
	var (
		props     string
		namespace string
		folder    string
		withDto   bool
		toStdout  bool
	)

	cmd := &cobra.Command{
		Use:   "entity <Name>",
		Short: "Generate an entity class",
		Long: `Generate an entity class from a property list. A <Name>Id identifier
property is added unless the list already has one.

Examples:
  scaffold entity Customer --props "Name:string,Email:string"
  scaffold entity Order --props "Total:decimal" --dto --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(s.cfg)
			if err != nil {
				return err
			}
			f := a.factory

			entity := f.CreateEntityFromList(args[0], props)
			files := []*artifact.CodeFile{{Name: entity.Name + ".cs", Model: f.CreateDocument(namespace, entity)}}
			if withDto {
				dto := f.CreateDto(entity)
				files = append(files, &artifact.CodeFile{Name: dto.Name + ".cs", Model: f.CreateDocument(namespace, dto)})
			}

			if toStdout {
				for i, file := range files {
					text, err := a.syntax.Render(cmd.Context(), file.Model, syntaxgen.Scope{})
					if err != nil {
						return err
					}
					if i > 0 {
						fmt.Fprintln(cmd.OutOrStdout())
					}
					fmt.Fprint(cmd.OutOrStdout(), text)
				}
				return nil
			}
			return a.emit(cmd.Context(), &artifact.Folder{Name: folder, CodeFiles: files}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&props, "props", "p", "", `properties as "Name:type,..."; a missing type means string`)
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "", "namespace of the generated file")
	cmd.Flags().StringVar(&folder, "folder", "Entities", "folder created below the output directory")
	cmd.Flags().BoolVar(&withDto, "dto", false, "also generate the data-transfer class")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the code instead of writing files")
	return cmd
}
