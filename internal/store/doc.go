// Package store provides SQLite-backed storage for quantum-chemistry
// calculation results.
//
// Entities:
//   - Calculations: program/method/basis rows extracted from results
//   - Geometries: symbols + coordinates with a mandatory structural hash
//   - Energies: one scalar per (geometry, calculation) pair
//   - Stationary points: geometry + calculation + order
//   - Identities: deduplicated derived values, UNIQUE(algorithm, identifier)
//   - Links: many-to-many stationary point <-> identity association
//
// Invariants enforced here:
//   - A geometry row is never written without its structural hash
//   - Identity and link creation go through conflict-tolerant inserts
//     (INSERT ... ON CONFLICT DO NOTHING + select), never read-then-write
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Row functions take a Querier so they compose into caller-owned
// transactions; Store methods run them on the bare connection.
package store
