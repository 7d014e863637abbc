package store

import "github.com/TroyNSmith/autostore/internal/chem"

// Calculation is a row of the calculation table: the persisted subset of a
// calculation spec. Keywords, cmdline_args, and files may be added later
// for programs that do not use an input file.
type Calculation struct {
	ID      int64
	Program string
	Version string
	Method  string
	Basis   *string
	Input   *string
}

// Geometry is a row of the geometry table. Hash must be populated before
// the row is inserted; InsertGeometry rejects rows without it.
type Geometry struct {
	ID int64
	chem.Geometry
	Hash string
}

// Energy is a row of the energy table: one calculation's energy for one
// geometry, keyed by the pair.
type Energy struct {
	GeometryID    int64
	CalculationID int64
	Value         float64 // Hartree
}

// Stationary point orders.
const (
	OrderUnassigned = -1
	OrderMinimum    = 0
	OrderSaddle     = 1
)

// StationaryPoint is a row of the stationary_point table.
type StationaryPoint struct {
	ID            int64
	GeometryID    int64
	CalculationID int64
	Order         int
}

// Identity is a row of the identity table. (Algorithm, Identifier) pairs
// are unique; all stationary points sharing a derived value link to one
// row.
type Identity struct {
	ID int64
	chem.Identity
}

// IdentityMetadata is a key-value annotation on an identity row.
type IdentityMetadata struct {
	ID         int64
	IdentityID int64
	Attribute  string
	Value      string
}
