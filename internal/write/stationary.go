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

// StationaryPoint persists a stationary point from a result: geometry,
// calculation, and stationary-point rows in one transaction, then a
// best-effort derived-identity pass.
//
// The returned id is valid whenever the error is nil, even if identity
// resolution failed; such failures are logged and retried by calling
// ResolveDerivedIdentity with the same id.
func StationaryPoint(ctx context.Context, st *store.Store, tk chem.Toolkit, res *qcio.Results, order int) (int64, error) {
	token := uuid.Must(uuid.NewV7()).String()

	geo, calc, err := extract(res, tk)
	if err != nil {
		return 0, err
	}

	tx, err := st.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("write stationary point: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if err := store.InsertGeometry(ctx, tx, geo); err != nil {
		return 0, fmt.Errorf("write stationary point: %w", err)
	}
	if err := store.InsertCalculation(ctx, tx, calc); err != nil {
		return 0, fmt.Errorf("write stationary point: %w", err)
	}
	sp := store.StationaryPoint{
		GeometryID:    geo.ID,
		CalculationID: calc.ID,
		Order:         order,
	}
	if err := store.InsertStationaryPoint(ctx, tx, &sp); err != nil {
		return 0, fmt.Errorf("write stationary point: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write stationary point: commit: %w", err)
	}

	slog.Info("stationary point written",
		"write_token", token,
		"stationary_point_id", sp.ID,
		"geometry_id", geo.ID,
		"calculation_id", calc.ID,
		"order", order,
	)

	// Identity enrichment is best-effort; the primary insert is not.
	if err := ResolveDerivedIdentity(ctx, st, tk, sp.ID); err != nil {
		slog.Error("derived identity resolution failed",
			"write_token", token,
			"stationary_point_id", sp.ID,
			"error", err,
		)
	}

	return sp.ID, nil
}
