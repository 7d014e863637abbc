package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/TroyNSmith/autostore/internal/chem"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testGeometry() *Geometry {
	return &Geometry{
		Geometry: chem.Geometry{
			Symbols: []string{"O", "H", "H"},
			Coordinates: [][3]float64{
				{0, 0, 0},
				{0.96, 0, 0},
				{0, 0.96, 0},
			},
		},
		Hash: "deadbeef",
	}
}

func TestOpenIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	s2.Close()
}

func TestOpenAppliesPragmas(t *testing.T) {
	s := openTestStore(t)

	var fk int
	if err := s.db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestInsertAndGetCalculation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	basis := "def2-svp"
	calc := &Calculation{
		Program: "psi4",
		Version: "1.9",
		Method:  "b3lyp",
		Basis:   &basis,
	}
	if err := InsertCalculation(ctx, s.DB(), calc); err != nil {
		t.Fatalf("InsertCalculation() failed: %v", err)
	}
	if calc.ID == 0 {
		t.Fatal("calculation ID not assigned")
	}

	got, err := GetCalculation(ctx, s.DB(), calc.ID)
	if err != nil {
		t.Fatalf("GetCalculation() failed: %v", err)
	}
	if got.Program != "psi4" || got.Method != "b3lyp" || got.Version != "1.9" {
		t.Errorf("got %+v", got)
	}
	if got.Basis == nil || *got.Basis != basis {
		t.Errorf("basis = %v, want %q", got.Basis, basis)
	}
	if got.Input != nil {
		t.Errorf("input = %v, want nil", got.Input)
	}
}

func TestInsertGeometryRequiresHash(t *testing.T) {
	s := openTestStore(t)

	geo := testGeometry()
	geo.Hash = ""
	if err := InsertGeometry(context.Background(), s.DB(), geo); err == nil {
		t.Fatal("InsertGeometry() accepted a geometry without a hash")
	}
}

func TestInsertAndGetGeometry(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	geo := testGeometry()
	geo.Charge = -1
	geo.Spin = 1
	if err := InsertGeometry(ctx, s.DB(), geo); err != nil {
		t.Fatalf("InsertGeometry() failed: %v", err)
	}

	got, err := GetGeometry(ctx, s.DB(), geo.ID)
	if err != nil {
		t.Fatalf("GetGeometry() failed: %v", err)
	}
	if len(got.Symbols) != 3 || got.Symbols[0] != "O" {
		t.Errorf("symbols = %v", got.Symbols)
	}
	if got.Coordinates[1][0] != 0.96 {
		t.Errorf("coordinates[1][0] = %v, want 0.96", got.Coordinates[1][0])
	}
	if got.Charge != -1 || got.Spin != 1 {
		t.Errorf("charge/spin = %d/%d, want -1/1", got.Charge, got.Spin)
	}
	if got.Hash != "deadbeef" {
		t.Errorf("hash = %q", got.Hash)
	}
}

func TestGeometriesByHash(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	g1, g2 := testGeometry(), testGeometry()
	g3 := testGeometry()
	g3.Hash = "other"
	for _, g := range []*Geometry{g1, g2, g3} {
		if err := InsertGeometry(ctx, s.DB(), g); err != nil {
			t.Fatalf("InsertGeometry() failed: %v", err)
		}
	}

	ids, err := GeometriesByHash(ctx, s.DB(), "deadbeef")
	if err != nil {
		t.Fatalf("GeometriesByHash() failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != g1.ID || ids[1] != g2.ID {
		t.Errorf("ids = %v, want [%d %d]", ids, g1.ID, g2.ID)
	}
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := GetGeometry(ctx, s.DB(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetGeometry() error = %v, want ErrNotFound", err)
	}
	if _, err := GetStationaryPoint(ctx, s.DB(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetStationaryPoint() error = %v, want ErrNotFound", err)
	}
	if _, err := GetCalculation(ctx, s.DB(), 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetCalculation() error = %v, want ErrNotFound", err)
	}
	if _, err := GetEnergy(ctx, s.DB(), 1, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEnergy() error = %v, want ErrNotFound", err)
	}
}
