package store

import (
	"context"
	"testing"

	"github.com/TroyNSmith/autostore/internal/chem"
)

func insertFixtureRows(t *testing.T, s *Store) (geoID, calcID int64) {
	t.Helper()
	ctx := context.Background()

	geo := testGeometry()
	if err := InsertGeometry(ctx, s.DB(), geo); err != nil {
		t.Fatalf("InsertGeometry() failed: %v", err)
	}
	calc := &Calculation{Program: "crest", Version: "3.0.2", Method: "gfn2"}
	if err := InsertCalculation(ctx, s.DB(), calc); err != nil {
		t.Fatalf("InsertCalculation() failed: %v", err)
	}
	return geo.ID, calc.ID
}

func TestInsertAndGetEnergy(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	geoID, calcID := insertFixtureRows(t, s)

	ene := &Energy{GeometryID: geoID, CalculationID: calcID, Value: -5.0623}
	if err := InsertEnergy(ctx, s.DB(), ene); err != nil {
		t.Fatalf("InsertEnergy() failed: %v", err)
	}

	got, err := GetEnergy(ctx, s.DB(), geoID, calcID)
	if err != nil {
		t.Fatalf("GetEnergy() failed: %v", err)
	}
	if got.Value != -5.0623 {
		t.Errorf("value = %v, want -5.0623", got.Value)
	}

	// The (geometry, calculation) pair is the primary key.
	if err := InsertEnergy(ctx, s.DB(), ene); err == nil {
		t.Error("duplicate energy insert succeeded")
	}
}

func TestInsertStationaryPoint(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	geoID, calcID := insertFixtureRows(t, s)

	sp := &StationaryPoint{GeometryID: geoID, CalculationID: calcID, Order: OrderMinimum}
	if err := InsertStationaryPoint(ctx, s.DB(), sp); err != nil {
		t.Fatalf("InsertStationaryPoint() failed: %v", err)
	}
	if sp.ID == 0 {
		t.Fatal("stationary point ID not assigned")
	}

	got, err := GetStationaryPoint(ctx, s.DB(), sp.ID)
	if err != nil {
		t.Fatalf("GetStationaryPoint() failed: %v", err)
	}
	if got.GeometryID != geoID || got.CalculationID != calcID || got.Order != OrderMinimum {
		t.Errorf("got %+v", got)
	}
}

func TestFindOrCreateIdentity(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ident := &Identity{Identity: chem.Identity{
		Type:       "stereoisomer",
		Algorithm:  "InChI",
		Identifier: "InChI=1S/H2O",
	}}
	created, err := FindOrCreateIdentity(ctx, s.DB(), ident)
	if err != nil {
		t.Fatalf("FindOrCreateIdentity() failed: %v", err)
	}
	if !created {
		t.Error("first call should create")
	}
	firstID := ident.ID

	again := &Identity{Identity: chem.Identity{
		Type:       "stereoisomer",
		Algorithm:  "InChI",
		Identifier: "InChI=1S/H2O",
	}}
	created, err = FindOrCreateIdentity(ctx, s.DB(), again)
	if err != nil {
		t.Fatalf("second FindOrCreateIdentity() failed: %v", err)
	}
	if created {
		t.Error("second call should reuse the existing row")
	}
	if again.ID != firstID {
		t.Errorf("id = %d, want %d", again.ID, firstID)
	}

	n, err := CountIdentities(ctx, s.DB())
	if err != nil {
		t.Fatalf("CountIdentities() failed: %v", err)
	}
	if n != 1 {
		t.Errorf("identity count = %d, want 1", n)
	}
}

func TestFindOrCreateIdentityDistinctAlgorithms(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := &Identity{Identity: chem.Identity{Type: "stereoisomer", Algorithm: "InChI", Identifier: "X"}}
	b := &Identity{Identity: chem.Identity{Type: "stereoisomer", Algorithm: "rdkit", Identifier: "X"}}
	if _, err := FindOrCreateIdentity(ctx, s.DB(), a); err != nil {
		t.Fatalf("FindOrCreateIdentity(a) failed: %v", err)
	}
	if _, err := FindOrCreateIdentity(ctx, s.DB(), b); err != nil {
		t.Fatalf("FindOrCreateIdentity(b) failed: %v", err)
	}
	if a.ID == b.ID {
		t.Error("same identifier under different algorithms must be distinct rows")
	}
}

func TestLinkIdentityIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	geoID, calcID := insertFixtureRows(t, s)

	sp := &StationaryPoint{GeometryID: geoID, CalculationID: calcID, Order: OrderUnassigned}
	if err := InsertStationaryPoint(ctx, s.DB(), sp); err != nil {
		t.Fatalf("InsertStationaryPoint() failed: %v", err)
	}
	ident := &Identity{Identity: chem.Identity{Type: "stereoisomer", Algorithm: "InChI", Identifier: "InChI=1S/H2O"}}
	if _, err := FindOrCreateIdentity(ctx, s.DB(), ident); err != nil {
		t.Fatalf("FindOrCreateIdentity() failed: %v", err)
	}

	linked, err := LinkIdentity(ctx, s.DB(), sp.ID, ident.ID)
	if err != nil {
		t.Fatalf("LinkIdentity() failed: %v", err)
	}
	if !linked {
		t.Error("first link should insert")
	}

	linked, err = LinkIdentity(ctx, s.DB(), sp.ID, ident.ID)
	if err != nil {
		t.Fatalf("second LinkIdentity() failed: %v", err)
	}
	if linked {
		t.Error("second link should be a no-op")
	}

	identities, err := IdentitiesForStationaryPoint(ctx, s.DB(), sp.ID)
	if err != nil {
		t.Fatalf("IdentitiesForStationaryPoint() failed: %v", err)
	}
	if len(identities) != 1 {
		t.Fatalf("identity count = %d, want 1", len(identities))
	}
	if identities[0].Identifier != "InChI=1S/H2O" {
		t.Errorf("identifier = %q", identities[0].Identifier)
	}
}

func TestIdentityMetadata(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ident := &Identity{Identity: chem.Identity{Type: "stereoisomer", Algorithm: "InChI", Identifier: "InChI=1S/CH4"}}
	if _, err := FindOrCreateIdentity(ctx, s.DB(), ident); err != nil {
		t.Fatalf("FindOrCreateIdentity() failed: %v", err)
	}

	meta := &IdentityMetadata{IdentityID: ident.ID, Attribute: "variant", Value: "1S"}
	if err := AddIdentityMetadata(ctx, s.DB(), meta); err != nil {
		t.Fatalf("AddIdentityMetadata() failed: %v", err)
	}

	got, err := IdentityMetadataFor(ctx, s.DB(), ident.ID)
	if err != nil {
		t.Fatalf("IdentityMetadataFor() failed: %v", err)
	}
	if len(got) != 1 || got[0].Attribute != "variant" || got[0].Value != "1S" {
		t.Errorf("metadata = %+v", got)
	}
}

func TestFindOrCreateIdentityInTransaction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tx, err := s.Begin(ctx)
	if err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}
	ident := &Identity{Identity: chem.Identity{Type: "stereoisomer", Algorithm: "InChI", Identifier: "InChI=1S/N2"}}
	if _, err := FindOrCreateIdentity(ctx, tx, ident); err != nil {
		t.Fatalf("FindOrCreateIdentity() failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}

	n, err := CountIdentities(ctx, s.DB())
	if err != nil {
		t.Fatalf("CountIdentities() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("identity count after rollback = %d, want 0", n)
	}
}
