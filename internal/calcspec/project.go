package calcspec

import "slices"

// KeySet declares which top-level keys of a keywords/extras mapping matter
// for a projection, and optionally which nested keys matter under each.
// A key mapped to nil keeps the spec's value whole; a key mapped to a
// slice keeps only the named nested keys when the spec's value is itself
// a mapping. A nil KeySet excludes the whole field from the projection.
type KeySet map[string][]string

// Template declares which fields of a Spec contribute to a projected hash.
// Boolean fields mark scalar presence. The template declares which fields
// and keys matter; projected values always come from the spec.
type Template struct {
	Program        bool
	Method         bool
	Basis          bool
	Input          bool
	CmdlineArgs    bool
	Files          bool
	Calctype       bool
	ProgramVersion bool
	Keywords       KeySet
	Extras         KeySet
}

// TemplateOf derives a template from a spec, marking exactly the fields
// set on it. This is how a fully-specified spec can itself serve as a
// projection template.
func TemplateOf(s Spec) Template {
	t := Template{
		Program:        true,
		Method:         true,
		Basis:          s.Basis != nil,
		Input:          s.Input != nil,
		CmdlineArgs:    len(s.CmdlineArgs) > 0,
		Files:          len(s.Files) > 0,
		Calctype:       s.Calctype != nil,
		ProgramVersion: s.ProgramVersion != nil,
	}
	t.Keywords = keySetOf(s.Keywords)
	t.Extras = keySetOf(s.Extras)
	return t
}

// keySetOf captures the key structure of a mapping, one level deep.
func keySetOf(src Object) KeySet {
	if src == nil {
		return nil
	}
	ks := make(KeySet, len(src))
	for k, v := range src {
		if nested, ok := v.(Object); ok {
			ks[k] = nested.SortedKeys()
		} else {
			ks[k] = nil
		}
	}
	return ks
}

// Project restricts a spec to the field set declared by a template,
// recursing one level into the keywords and extras mappings. Fields whose
// value is absent on the spec are omitted from the result even when the
// template names them.
func Project(s Spec, t Template) Object {
	obj := Object{}
	if t.Program {
		obj[FieldProgram] = String(s.Program)
	}
	if t.Method {
		obj[FieldMethod] = String(s.Method)
	}
	if t.Basis {
		putString(obj, FieldBasis, s.Basis)
	}
	if t.Input {
		putString(obj, FieldInput, s.Input)
	}
	if t.Calctype {
		putString(obj, FieldCalctype, s.Calctype)
	}
	if t.ProgramVersion {
		putString(obj, FieldProgramVersion, s.ProgramVersion)
	}
	if t.CmdlineArgs && len(s.CmdlineArgs) > 0 {
		arr := make(Array, len(s.CmdlineArgs))
		for i, a := range s.CmdlineArgs {
			arr[i] = String(a)
		}
		obj[FieldCmdlineArgs] = arr
	}
	if t.Files && len(s.Files) > 0 {
		files := make(Object, len(s.Files))
		for name, content := range s.Files {
			files[name] = String(content)
		}
		obj[FieldFiles] = files
	}
	if t.Keywords != nil {
		if kw := projectKeys(s.Keywords, t.Keywords); len(kw) > 0 {
			obj[FieldKeywords] = kw
		}
	}
	if t.Extras != nil {
		if ex := projectKeys(s.Extras, t.Extras); len(ex) > 0 {
			obj[FieldExtras] = ex
		}
	}
	return obj
}

// projectKeys keeps from src only the keys named by the key set. When the
// key set declares nested keys and the spec's value is a mapping, the
// nested mapping is filtered the same way; values always come from src.
func projectKeys(src Object, keys KeySet) Object {
	out := Object{}
	for k, v := range src {
		nested, declared := keys[k]
		if !declared {
			continue
		}
		if sub, ok := v.(Object); ok && nested != nil {
			filtered := make(Object, len(nested))
			for nk, nv := range sub {
				if slices.Contains(nested, nk) {
					filtered[nk] = nv
				}
			}
			out[k] = filtered
		} else {
			out[k] = v
		}
	}
	return out
}

// ProjectedHash projects a spec onto a template and digests the result.
func ProjectedHash(s Spec, t Template) (string, error) {
	return Digest(Project(s, t))
}
