package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// GetCalculation loads a calculation row by primary key.
func GetCalculation(ctx context.Context, q Querier, id int64) (*Calculation, error) {
	var c Calculation
	err := q.QueryRowContext(ctx, `
		SELECT id, program, version, method, basis, input
		FROM calculation WHERE id = ?
	`, id).Scan(&c.ID, &c.Program, &c.Version, &c.Method, &c.Basis, &c.Input)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("calculation %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get calculation: %w", err)
	}
	return &c, nil
}

// GetGeometry loads a geometry row by primary key.
func GetGeometry(ctx context.Context, q Querier, id int64) (*Geometry, error) {
	var (
		g       Geometry
		symbols string
		coords  string
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, symbols, coordinates, charge, spin, hash
		FROM geometry WHERE id = ?
	`, id).Scan(&g.ID, &symbols, &coords, &g.Charge, &g.Spin, &g.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("geometry %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get geometry: %w", err)
	}
	if g.Symbols, err = unmarshalSymbols(symbols); err != nil {
		return nil, fmt.Errorf("get geometry: %w", err)
	}
	if g.Coordinates, err = unmarshalCoordinates(coords); err != nil {
		return nil, fmt.Errorf("get geometry: %w", err)
	}
	return &g, nil
}

// GeometriesByHash returns geometry ids sharing a structural hash, oldest
// first. This is the equality pre-filter: callers compare full contents
// before treating two rows as the same structure.
func GeometriesByHash(ctx context.Context, q Querier, hash string) ([]int64, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id FROM geometry WHERE hash = ? ORDER BY id ASC
	`, hash)
	if err != nil {
		return nil, fmt.Errorf("geometries by hash: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("geometries by hash: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("geometries by hash: %w", err)
	}
	return ids, nil
}

// GetEnergy loads an energy row by its composite key.
func GetEnergy(ctx context.Context, q Querier, geometryID, calculationID int64) (*Energy, error) {
	var e Energy
	err := q.QueryRowContext(ctx, `
		SELECT geometry_id, calculation_id, value
		FROM energy WHERE geometry_id = ? AND calculation_id = ?
	`, geometryID, calculationID).Scan(&e.GeometryID, &e.CalculationID, &e.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("energy (%d, %d): %w", geometryID, calculationID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get energy: %w", err)
	}
	return &e, nil
}

// ListEnergies returns all energy rows, ordered by key for deterministic
// output.
func ListEnergies(ctx context.Context, q Querier) ([]Energy, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT geometry_id, calculation_id, value
		FROM energy ORDER BY geometry_id ASC, calculation_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list energies: %w", err)
	}
	defer rows.Close()

	var out []Energy
	for rows.Next() {
		var e Energy
		if err := rows.Scan(&e.GeometryID, &e.CalculationID, &e.Value); err != nil {
			return nil, fmt.Errorf("list energies: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list energies: %w", err)
	}
	return out, nil
}

// GetStationaryPoint loads a stationary point row by primary key.
func GetStationaryPoint(ctx context.Context, q Querier, id int64) (*StationaryPoint, error) {
	var sp StationaryPoint
	err := q.QueryRowContext(ctx, `
		SELECT id, geometry_id, calculation_id, ord
		FROM stationary_point WHERE id = ?
	`, id).Scan(&sp.ID, &sp.GeometryID, &sp.CalculationID, &sp.Order)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stationary point %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get stationary point: %w", err)
	}
	return &sp, nil
}

// IdentitiesForStationaryPoint returns the identities linked to a
// stationary point, ordered by identity id.
func IdentitiesForStationaryPoint(ctx context.Context, q Querier, stationaryPointID int64) ([]Identity, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT i.id, i.type, i.algorithm, i.identifier
		FROM identity i
		JOIN stationary_identity_link l ON l.identity_id = i.id
		WHERE l.stationary_point_id = ?
		ORDER BY i.id ASC
	`, stationaryPointID)
	if err != nil {
		return nil, fmt.Errorf("identities for stationary point: %w", err)
	}
	defer rows.Close()

	var out []Identity
	for rows.Next() {
		var id Identity
		if err := rows.Scan(&id.ID, &id.Type, &id.Algorithm, &id.Identifier); err != nil {
			return nil, fmt.Errorf("identities for stationary point: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("identities for stationary point: %w", err)
	}
	return out, nil
}

// IdentityMetadataFor returns the metadata entries attached to an identity,
// insertion order.
func IdentityMetadataFor(ctx context.Context, q Querier, identityID int64) ([]IdentityMetadata, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, identity_id, attribute, value
		FROM identity_metadata WHERE identity_id = ? ORDER BY id ASC
	`, identityID)
	if err != nil {
		return nil, fmt.Errorf("identity metadata: %w", err)
	}
	defer rows.Close()

	var out []IdentityMetadata
	for rows.Next() {
		var m IdentityMetadata
		if err := rows.Scan(&m.ID, &m.IdentityID, &m.Attribute, &m.Value); err != nil {
			return nil, fmt.Errorf("identity metadata: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("identity metadata: %w", err)
	}
	return out, nil
}

// CountIdentities returns the number of identity rows. Used by callers
// verifying deduplication behavior.
func CountIdentities(ctx context.Context, q Querier) (int64, error) {
	var n int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM identity`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count identities: %w", err)
	}
	return n, nil
}
