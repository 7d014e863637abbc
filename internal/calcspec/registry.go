package calcspec

import (
	"fmt"
	"sort"
)

// Reserved built-in scheme names.
const (
	SchemeFull    = "full"
	SchemeMinimal = "minimal"
)

// MinimalKeywords is the keyword-key allowlist of the built-in minimal
// scheme: keywords that change the numerical result and therefore belong
// to a calculation's identity. Everything else (printing, resource limits,
// restart options) is ignored by the minimal hash.
var MinimalKeywords = KeySet{
	"reference": nil,
	"scf_type":  nil,
	"grid":      nil,
}

// minimalTemplate projects a spec onto the identity-relevant fields.
var minimalTemplate = Template{
	Program:  true,
	Method:   true,
	Basis:    true,
	Keywords: MinimalKeywords,
}

// HashFunc computes an identity hash for a calculation spec.
type HashFunc func(Spec) (string, error)

// UnknownSchemeError reports a hash computation against an unregistered
// scheme name.
type UnknownSchemeError struct {
	Name string
}

func (e *UnknownSchemeError) Error() string {
	return fmt.Sprintf("unknown hash scheme %q", e.Name)
}

// RegistrationError reports an attempt to silently replace a reserved
// built-in scheme.
type RegistrationError struct {
	Name string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("hash scheme %q is a reserved built-in; use RegisterOverwrite to replace it", e.Name)
}

// Registry maps scheme names to hash functions. Construct one with
// NewRegistry and pass it where hashes are computed; there is no ambient
// process-wide instance.
//
// Concurrency contract: Register before starting concurrent readers.
// Reads never lock; mutating the registry while another goroutine computes
// hashes is unsafe.
type Registry struct {
	schemes map[string]HashFunc
}

// NewRegistry returns a registry initialized with the built-in schemes:
//
//   - full: digest of every set, non-null field of the spec
//   - minimal: digest of {program, method, basis} plus the MinimalKeywords
//     allowlist; other keyword and extras differences do not affect it
func NewRegistry() *Registry {
	return &Registry{schemes: map[string]HashFunc{
		SchemeFull: func(s Spec) (string, error) {
			return Digest(s.Object())
		},
		SchemeMinimal: func(s Spec) (string, error) {
			return ProjectedHash(s, minimalTemplate)
		},
	}}
}

// Register adds a scheme, overwriting any previous user-registered scheme
// of the same name. Returns a *RegistrationError when name collides with a
// reserved built-in.
func (r *Registry) Register(name string, fn HashFunc) error {
	if name == SchemeFull || name == SchemeMinimal {
		return &RegistrationError{Name: name}
	}
	r.schemes[name] = fn
	return nil
}

// RegisterOverwrite adds a scheme, replacing even a reserved built-in.
func (r *Registry) RegisterOverwrite(name string, fn HashFunc) {
	r.schemes[name] = fn
}

// Compute hashes a spec under the named scheme. Returns a
// *UnknownSchemeError when the scheme is not registered.
func (r *Registry) Compute(s Spec, name string) (string, error) {
	fn, ok := r.schemes[name]
	if !ok {
		return "", &UnknownSchemeError{Name: name}
	}
	return fn(s)
}

// Available returns the registered scheme names in sorted order.
func (r *Registry) Available() []string {
	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
