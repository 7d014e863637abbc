// Package write persists calculation results: energy and stationary-point
// orchestrators plus the derived-identity pipeline.
//
// Each orchestrator opens one transaction, populates the geometry's
// structural hash before its insert, and commits or rolls back atomically.
// Derived-identity resolution is an explicit second phase: it runs after
// the stationary-point commit in its own transaction, and its failure
// never disturbs the committed primary insert. Callers needing the
// identity guarantee re-run ResolveDerivedIdentity.
package write
