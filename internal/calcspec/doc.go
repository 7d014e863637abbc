// Package calcspec models quantum-chemistry calculation specifications and
// computes their identity hashes.
//
// This package contains the canonical value types, the canonical JSON
// encoder, the template projection, and the hash-scheme registry. All other
// internal packages import calcspec; calcspec imports nothing internal.
//
// Key design constraints:
//   - Object keys always serialize in UTF-16 code unit order
//   - Strings are NFC normalized at the serialization boundary
//   - Floats use shortest round-trip formatting (never locale-dependent)
//   - Absent fields and explicit nulls are both excluded from hash input,
//     but Null remains representable inside keyword/extras mappings
package calcspec
