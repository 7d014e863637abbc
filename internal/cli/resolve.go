package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TroyNSmith/autostore/internal/chem"
	"github.com/TroyNSmith/autostore/internal/store"
	"github.com/TroyNSmith/autostore/internal/write"
)

// NewResolveCommand creates the resolve command: the retry path for
// stationary points whose best-effort identity pass failed.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve STATIONARY_POINT_ID",
		Short: "Re-run derived-identity resolution for a stationary point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDB(rootOpts); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid stationary point id %q", args[0])
			}

			st, err := store.Open(rootOpts.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := write.ResolveDerivedIdentity(cmd.Context(), st, chem.Canonical{}, id); err != nil {
				return err
			}

			identities, err := store.IdentitiesForStationaryPoint(cmd.Context(), st.DB(), id)
			if err != nil {
				return err
			}
			for _, ident := range identities {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", ident.Type, ident.Algorithm, ident.Identifier)
			}
			return nil
		},
	}
}
