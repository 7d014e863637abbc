package store

import (
	"context"
	"fmt"
)

// InsertCalculation inserts a calculation row and sets its ID.
func InsertCalculation(ctx context.Context, q Querier, c *Calculation) error {
	res, err := q.ExecContext(ctx, `
		INSERT INTO calculation (program, version, method, basis, input)
		VALUES (?, ?, ?, ?, ?)
	`, c.Program, c.Version, c.Method, c.Basis, c.Input)
	if err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	c.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert calculation: last insert id: %w", err)
	}
	return nil
}

// InsertGeometry inserts a geometry row and sets its ID. The structural
// hash must already be populated; writing an unhashed geometry is a
// programming error, not a recoverable state.
func InsertGeometry(ctx context.Context, q Querier, g *Geometry) error {
	if g.Hash == "" {
		return fmt.Errorf("insert geometry: structural hash not populated")
	}
	symbols, err := marshalSymbols(g.Symbols)
	if err != nil {
		return fmt.Errorf("insert geometry: %w", err)
	}
	coords, err := marshalCoordinates(g.Coordinates)
	if err != nil {
		return fmt.Errorf("insert geometry: %w", err)
	}

	res, err := q.ExecContext(ctx, `
		INSERT INTO geometry (symbols, coordinates, charge, spin, hash)
		VALUES (?, ?, ?, ?, ?)
	`, symbols, coords, g.Charge, g.Spin, g.Hash)
	if err != nil {
		return fmt.Errorf("insert geometry: %w", err)
	}
	g.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert geometry: last insert id: %w", err)
	}
	return nil
}

// InsertEnergy inserts an energy row. The (geometry, calculation) pair is
// the primary key; inserting the same pair twice is an error.
func InsertEnergy(ctx context.Context, q Querier, e *Energy) error {
	if _, err := q.ExecContext(ctx, `
		INSERT INTO energy (geometry_id, calculation_id, value)
		VALUES (?, ?, ?)
	`, e.GeometryID, e.CalculationID, e.Value); err != nil {
		return fmt.Errorf("insert energy: %w", err)
	}
	return nil
}

// InsertStationaryPoint inserts a stationary point row and sets its ID.
func InsertStationaryPoint(ctx context.Context, q Querier, sp *StationaryPoint) error {
	res, err := q.ExecContext(ctx, `
		INSERT INTO stationary_point (geometry_id, calculation_id, ord)
		VALUES (?, ?, ?)
	`, sp.GeometryID, sp.CalculationID, sp.Order)
	if err != nil {
		return fmt.Errorf("insert stationary point: %w", err)
	}
	sp.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert stationary point: last insert id: %w", err)
	}
	return nil
}

// FindOrCreateIdentity resolves an identity row by (algorithm, identifier),
// creating it if absent. Sets id.ID and reports whether a new row was
// created.
//
// Uses INSERT ... ON CONFLICT DO NOTHING followed by a select so that a
// concurrent writer racing on the same derived value collapses into the
// existing row instead of producing a duplicate. Run inside a transaction
// when combined with LinkIdentity.
func FindOrCreateIdentity(ctx context.Context, q Querier, id *Identity) (created bool, err error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO identity (type, algorithm, identifier)
		VALUES (?, ?, ?)
		ON CONFLICT(algorithm, identifier) DO NOTHING
	`, id.Type, id.Algorithm, id.Identifier)
	if err != nil {
		return false, fmt.Errorf("find or create identity: insert: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("find or create identity: rows affected: %w", err)
	}

	if affected > 0 {
		id.ID, err = res.LastInsertId()
		if err != nil {
			return false, fmt.Errorf("find or create identity: last insert id: %w", err)
		}
		return true, nil
	}

	// Conflict: the row already exists, fetch it.
	err = q.QueryRowContext(ctx, `
		SELECT id FROM identity WHERE algorithm = ? AND identifier = ?
	`, id.Algorithm, id.Identifier).Scan(&id.ID)
	if err != nil {
		return false, fmt.Errorf("find or create identity: select existing: %w", err)
	}
	return false, nil
}

// LinkIdentity associates a stationary point with an identity. The pair is
// linked at most once; re-linking is a no-op and reports linked=false.
func LinkIdentity(ctx context.Context, q Querier, stationaryPointID, identityID int64) (linked bool, err error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO stationary_identity_link (stationary_point_id, identity_id)
		VALUES (?, ?)
		ON CONFLICT(stationary_point_id, identity_id) DO NOTHING
	`, stationaryPointID, identityID)
	if err != nil {
		return false, fmt.Errorf("link identity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("link identity: rows affected: %w", err)
	}
	return affected > 0, nil
}

// AddIdentityMetadata attaches a key-value annotation to an identity row.
func AddIdentityMetadata(ctx context.Context, q Querier, m *IdentityMetadata) error {
	res, err := q.ExecContext(ctx, `
		INSERT INTO identity_metadata (identity_id, attribute, value)
		VALUES (?, ?, ?)
	`, m.IdentityID, m.Attribute, m.Value)
	if err != nil {
		return fmt.Errorf("add identity metadata: %w", err)
	}
	m.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("add identity metadata: last insert id: %w", err)
	}
	return nil
}
