// Package chem is the boundary to the molecular-structure toolkit. The
// store and write pipeline consume the Toolkit interface; the Canonical
// implementation in this package covers structural hashing and
// formula-level identity, and stereo-aware toolkits plug in externally.
package chem

import (
	"fmt"

	"github.com/TroyNSmith/autostore/internal/calcspec"
)

// Geometry is a molecular geometry: element symbols with matching
// Cartesian coordinate rows in Angstroms, total charge, and spin as the
// number of unpaired electrons (2S).
type Geometry struct {
	Symbols     []string
	Coordinates [][3]float64
	Charge      int
	Spin        int
}

// Identity is a derived identity value for a structure.
type Identity struct {
	Type       string // category, e.g. "stereoisomer"
	Algorithm  string // generator, e.g. "InChI"
	Identifier string // opaque value produced by the algorithm
}

// Toolkit computes structural hashes and derived identities. Both methods
// are pure queries: synchronous, CPU-bound, no callbacks into the caller.
type Toolkit interface {
	// GeometryHash returns a content hash of the geometry for equality
	// pre-filtering. Not a uniqueness guarantee.
	GeometryHash(g Geometry) (string, error)
	// Identity derives the geometry's deduplicatable identity.
	Identity(g Geometry) (Identity, error)
}

// Canonical is the default toolkit. Geometry hashes are domain-separated
// digests of the canonical encoding of the geometry fields; identities are
// formula-level InChI strings, the coarsest valid InChI for a structure
// whose connectivity has not been perceived.
type Canonical struct{}

var _ Toolkit = Canonical{}

// GeometryHash implements Toolkit.
func (Canonical) GeometryHash(g Geometry) (string, error) {
	symbols := make(calcspec.Array, len(g.Symbols))
	for i, s := range g.Symbols {
		symbols[i] = calcspec.String(s)
	}
	coords := make(calcspec.Array, len(g.Coordinates))
	for i, row := range g.Coordinates {
		coords[i] = calcspec.Array{
			calcspec.Float(row[0]),
			calcspec.Float(row[1]),
			calcspec.Float(row[2]),
		}
	}
	obj := calcspec.Object{
		"symbols":     symbols,
		"coordinates": coords,
		"charge":      calcspec.Int(int64(g.Charge)),
		"spin":        calcspec.Int(int64(g.Spin)),
	}
	hash, err := calcspec.DigestDomain(calcspec.DomainGeometry, obj)
	if err != nil {
		return "", fmt.Errorf("geometry hash: %w", err)
	}
	return hash, nil
}

// Identity implements Toolkit. The identifier is "InChI=1S/<formula>" with
// a charge layer appended for ions, e.g. "InChI=1S/H2O" for neutral water.
func (Canonical) Identity(g Geometry) (Identity, error) {
	if len(g.Symbols) == 0 {
		return Identity{}, fmt.Errorf("identity: geometry has no atoms")
	}
	identifier := "InChI=1S/" + Formula(g.Symbols)
	if g.Charge != 0 {
		identifier += fmt.Sprintf("/q%+d", g.Charge)
	}
	return Identity{
		Type:       "stereoisomer",
		Algorithm:  "InChI",
		Identifier: identifier,
	}, nil
}
