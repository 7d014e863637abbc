package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TroyNSmith/autostore/internal/calcspec"
)

// NewHashCommand creates the hash command.
func NewHashCommand() *cobra.Command {
	var (
		scheme       string
		templatePath string
	)

	cmd := &cobra.Command{
		Use:   "hash SPEC_FILE",
		Short: "Compute a calculation spec's identity hash",
		Long: "Compute the identity hash of a calculation spec in a YAML file.\n" +
			"A template file registers an ad-hoc projected scheme and uses it.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, err := LoadSpecFile(args[0])
			if err != nil {
				return err
			}

			registry := calcspec.NewRegistry()
			if templatePath != "" {
				tmpl, err := LoadTemplateFile(templatePath)
				if err != nil {
					return err
				}
				scheme = "template"
				if err := registry.Register(scheme, func(s calcspec.Spec) (string, error) {
					return calcspec.ProjectedHash(s, tmpl)
				}); err != nil {
					return err
				}
			}

			hash, err := registry.Compute(spec, scheme)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}

	cmd.Flags().StringVar(&scheme, "scheme", calcspec.SchemeFull, "hash scheme name")
	cmd.Flags().StringVar(&templatePath, "template", "", "YAML projection template file")
	return cmd
}

// NewSchemesCommand creates the schemes command.
func NewSchemesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schemes",
		Short: "List registered hash schemes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range calcspec.NewRegistry().Available() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
