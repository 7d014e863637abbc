package write

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/TroyNSmith/autostore/internal/chem"
	"github.com/TroyNSmith/autostore/internal/qcio"
	"github.com/TroyNSmith/autostore/internal/store"
)

// EnergyKeys identifies the rows created by an Energy write.
type EnergyKeys struct {
	GeometryID    int64
	CalculationID int64
}

// Energy extracts a geometry and a calculation from a result and persists
// them with an energy row in one transaction.
//
// No duplicate check is performed: writing the same result twice produces
// two independent row sets. The geometry's structural hash is stored for
// callers who deduplicate manually (store.GeometriesByHash).
func Energy(ctx context.Context, st *store.Store, tk chem.Toolkit, res *qcio.Results) (EnergyKeys, error) {
	token := uuid.Must(uuid.NewV7()).String()

	geo, calc, err := extract(res, tk)
	if err != nil {
		return EnergyKeys{}, err
	}

	tx, err := st.Begin(ctx)
	if err != nil {
		return EnergyKeys{}, fmt.Errorf("write energy: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := store.InsertGeometry(ctx, tx, geo); err != nil {
		return EnergyKeys{}, fmt.Errorf("write energy: %w", err)
	}
	if err := store.InsertCalculation(ctx, tx, calc); err != nil {
		return EnergyKeys{}, fmt.Errorf("write energy: %w", err)
	}
	ene := store.Energy{
		GeometryID:    geo.ID,
		CalculationID: calc.ID,
		Value:         res.Data.Energy,
	}
	if err := store.InsertEnergy(ctx, tx, &ene); err != nil {
		return EnergyKeys{}, fmt.Errorf("write energy: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return EnergyKeys{}, fmt.Errorf("write energy: commit: %w", err)
	}

	slog.Info("energy written",
		"write_token", token,
		"geometry_id", geo.ID,
		"calculation_id", calc.ID,
		"value", ene.Value,
	)
	return EnergyKeys{GeometryID: geo.ID, CalculationID: calc.ID}, nil
}

// extract builds the geometry and calculation rows from a result,
// populating the geometry's structural hash before any insert happens.
func extract(res *qcio.Results, tk chem.Toolkit) (*store.Geometry, *store.Calculation, error) {
	g, err := res.Geometry()
	if err != nil {
		return nil, nil, err
	}
	hash, err := tk.GeometryHash(g)
	if err != nil {
		return nil, nil, fmt.Errorf("geometry hash: %w", err)
	}

	spec, err := res.Spec()
	if err != nil {
		return nil, nil, err
	}

	geo := &store.Geometry{Geometry: g, Hash: hash}
	calc := &store.Calculation{
		Program: spec.Program,
		Method:  spec.Method,
		Basis:   spec.Basis,
		Input:   spec.Input,
	}
	if spec.ProgramVersion != nil {
		calc.Version = *spec.ProgramVersion
	}
	return geo, calc, nil
}
