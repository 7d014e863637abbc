package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/TroyNSmith/autostore/internal/chem"
	"github.com/TroyNSmith/autostore/internal/qcio"
	"github.com/TroyNSmith/autostore/internal/store"
	"github.com/TroyNSmith/autostore/internal/write"
)

// NewWriteEnergyCommand creates the write-energy command.
func NewWriteEnergyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "write-energy FILE...",
		Short: "Persist energy results from result JSON files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDB(rootOpts); err != nil {
				return err
			}
			results, err := loadResults(cmd, args)
			if err != nil {
				return err
			}

			st, err := store.Open(rootOpts.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			tk := chem.Canonical{}
			for i, res := range results {
				keys, err := write.Energy(cmd.Context(), st, tk, res)
				if err != nil {
					return fmt.Errorf("%s: %w", args[i], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: geometry=%d calculation=%d\n",
					args[i], keys.GeometryID, keys.CalculationID)
			}
			return nil
		},
	}
}

// NewWriteStationaryCommand creates the write-stationary command.
func NewWriteStationaryCommand(rootOpts *RootOptions) *cobra.Command {
	var order int

	cmd := &cobra.Command{
		Use:   "write-stationary FILE...",
		Short: "Persist stationary points and resolve derived identities",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireDB(rootOpts); err != nil {
				return err
			}
			results, err := loadResults(cmd, args)
			if err != nil {
				return err
			}

			st, err := store.Open(rootOpts.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			tk := chem.Canonical{}
			for i, res := range results {
				id, err := write.StationaryPoint(cmd.Context(), st, tk, res, order)
				if err != nil {
					return fmt.Errorf("%s: %w", args[i], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: stationary_point=%d\n", args[i], id)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&order, "order", store.OrderUnassigned,
		"stationary point order (0 minimum, 1 saddle, -1 unassigned)")
	return cmd
}

// loadResults parses result files concurrently. The store phase stays
// sequential (single writer); only parsing and validation fan out.
func loadResults(cmd *cobra.Command, paths []string) ([]*qcio.Results, error) {
	results := make([]*qcio.Results, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			res, err := qcio.ParseResults(data)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
