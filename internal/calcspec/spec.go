package calcspec

// Spec is the canonical in-memory representation of a calculation request.
//
// Optional scalar fields use pointers: nil means absent, and absent fields
// never contribute to a hash. Keyword and extras mappings may carry
// explicit Null values for individual keys; those keys serialize as JSON
// null inside the mapping but a nil mapping as a whole is absent.
type Spec struct {
	// Program is the quantum chemistry program (e.g. "psi4", "crest").
	Program string
	// Method is the computational method (e.g. "b3lyp", "gfn2").
	Method string
	// Basis is the basis set, if applicable.
	Basis *string
	// Input is the program input file content, if applicable.
	Input *string
	// Keywords holds program keywords; values are scalars or one level of
	// nested mappings.
	Keywords Object
	// CmdlineArgs holds command-line arguments in invocation order.
	CmdlineArgs []string
	// Files maps file names to contents for programs that need side files.
	Files map[string]string
	// Calctype is the calculation type (e.g. "energy", "hessian").
	Calctype *string
	// ProgramVersion is the program version string.
	ProgramVersion *string
	// Extras holds additional metadata, same shape as Keywords.
	Extras Object
}

// Canonical field names, shared by projection and serialization.
const (
	FieldProgram        = "program"
	FieldMethod         = "method"
	FieldBasis          = "basis"
	FieldInput          = "input"
	FieldKeywords       = "keywords"
	FieldCmdlineArgs    = "cmdline_args"
	FieldFiles          = "files"
	FieldCalctype       = "calctype"
	FieldProgramVersion = "program_version"
	FieldExtras         = "extras"
)

// Object converts the spec to a canonical Object containing every set,
// non-null field. Empty mappings and sequences are treated as unset, so a
// spec that never touched its keywords hashes identically to one that set
// them to an empty mapping.
func (s Spec) Object() Object {
	obj := Object{
		FieldProgram: String(s.Program),
		FieldMethod:  String(s.Method),
	}
	putString(obj, FieldBasis, s.Basis)
	putString(obj, FieldInput, s.Input)
	putString(obj, FieldCalctype, s.Calctype)
	putString(obj, FieldProgramVersion, s.ProgramVersion)
	if len(s.Keywords) > 0 {
		obj[FieldKeywords] = s.Keywords
	}
	if len(s.Extras) > 0 {
		obj[FieldExtras] = s.Extras
	}
	if len(s.CmdlineArgs) > 0 {
		arr := make(Array, len(s.CmdlineArgs))
		for i, a := range s.CmdlineArgs {
			arr[i] = String(a)
		}
		obj[FieldCmdlineArgs] = arr
	}
	if len(s.Files) > 0 {
		files := make(Object, len(s.Files))
		for name, content := range s.Files {
			files[name] = String(content)
		}
		obj[FieldFiles] = files
	}
	return obj
}

func putString(obj Object, key string, v *string) {
	if v != nil {
		obj[key] = String(*v)
	}
}

// Ptr returns a pointer to v, for concise optional-field construction.
func Ptr[T any](v T) *T {
	return &v
}
