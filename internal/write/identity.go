package write

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TroyNSmith/autostore/internal/chem"
	"github.com/TroyNSmith/autostore/internal/store"
)

// Stages of the derived-identity pipeline, recorded on failure.
const (
	StageGeometry = "geometry"
	StageToolkit  = "toolkit"
	StageIdentity = "identity"
	StageLink     = "link"
)

// DerivedIdentityError reports a failure while resolving a stationary
// point's derived identity. The triggering stationary-point row is intact;
// the resolution may be retried with the same id.
type DerivedIdentityError struct {
	StationaryPointID int64
	Stage             string
	Err               error
}

func (e *DerivedIdentityError) Error() string {
	return fmt.Sprintf("derived identity for stationary point %d: %s stage: %v",
		e.StationaryPointID, e.Stage, e.Err)
}

func (e *DerivedIdentityError) Unwrap() error {
	return e.Err
}

// ResolveDerivedIdentity computes a stationary point's derived identity
// and links it, deduplicating against existing identity rows.
//
// Steps: load the geometry through the stationary point's foreign key,
// derive the identity via the toolkit, find-or-create the identity row,
// find-or-create the link, commit. The find-or-creates and the link share
// one transaction which rolls back as a unit on failure; the committed
// stationary-point insert is never affected.
//
// Safe to call repeatedly: a second pass reuses the existing identity row
// and leaves an existing link alone.
func ResolveDerivedIdentity(ctx context.Context, st *store.Store, tk chem.Toolkit, stationaryPointID int64) error {
	fail := func(stage string, err error) error {
		return &DerivedIdentityError{StationaryPointID: stationaryPointID, Stage: stage, Err: err}
	}

	sp, err := store.GetStationaryPoint(ctx, st.DB(), stationaryPointID)
	if err != nil {
		return fail(StageGeometry, err)
	}
	geo, err := store.GetGeometry(ctx, st.DB(), sp.GeometryID)
	if err != nil {
		return fail(StageGeometry, err)
	}

	derived, err := tk.Identity(geo.Geometry)
	if err != nil {
		return fail(StageToolkit, err)
	}

	tx, err := st.Begin(ctx)
	if err != nil {
		return fail(StageIdentity, err)
	}
	defer tx.Rollback() // No-op if committed

	ident := store.Identity{Identity: derived}
	created, err := store.FindOrCreateIdentity(ctx, tx, &ident)
	if err != nil {
		return fail(StageIdentity, err)
	}
	linked, err := store.LinkIdentity(ctx, tx, sp.ID, ident.ID)
	if err != nil {
		return fail(StageLink, err)
	}
	if err := tx.Commit(); err != nil {
		return fail(StageLink, err)
	}

	slog.Debug("derived identity resolved",
		"stationary_point_id", sp.ID,
		"identity_id", ident.ID,
		"identifier", derived.Identifier,
		"created", created,
		"linked", linked,
	)
	return nil
}
