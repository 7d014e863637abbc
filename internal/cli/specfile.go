package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TroyNSmith/autostore/internal/calcspec"
)

// specDoc is the YAML surface of a calculation spec. Pointer fields keep
// absent distinguishable from empty.
type specDoc struct {
	Program        string            `yaml:"program"`
	Method         string            `yaml:"method"`
	Basis          *string           `yaml:"basis"`
	Input          *string           `yaml:"input"`
	Keywords       map[string]any    `yaml:"keywords"`
	CmdlineArgs    []string          `yaml:"cmdline_args"`
	Files          map[string]string `yaml:"files"`
	Calctype       *string           `yaml:"calctype"`
	ProgramVersion *string           `yaml:"program_version"`
	Extras         map[string]any    `yaml:"extras"`
}

// LoadSpecFile reads a calculation spec from a YAML file.
func LoadSpecFile(path string) (calcspec.Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return calcspec.Spec{}, err
	}

	var doc specDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return calcspec.Spec{}, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Program == "" || doc.Method == "" {
		return calcspec.Spec{}, fmt.Errorf("%s: program and method are required", path)
	}

	spec := calcspec.Spec{
		Program:        doc.Program,
		Method:         doc.Method,
		Basis:          doc.Basis,
		Input:          doc.Input,
		CmdlineArgs:    doc.CmdlineArgs,
		Files:          doc.Files,
		Calctype:       doc.Calctype,
		ProgramVersion: doc.ProgramVersion,
	}
	if spec.Keywords, err = mappingValue(doc.Keywords); err != nil {
		return calcspec.Spec{}, fmt.Errorf("%s: keywords: %w", path, err)
	}
	if spec.Extras, err = mappingValue(doc.Extras); err != nil {
		return calcspec.Spec{}, fmt.Errorf("%s: extras: %w", path, err)
	}
	return spec, nil
}

func mappingValue(m map[string]any) (calcspec.Object, error) {
	if m == nil {
		return nil, nil
	}
	v, err := calcspec.FromGo(m)
	if err != nil {
		return nil, err
	}
	return v.(calcspec.Object), nil
}

// LoadTemplateFile reads a projection template from a YAML file. The file
// is a partial spec document: scalar fields present in it (with any value)
// are included in the projection; keywords/extras mappings declare which
// keys matter, one nesting level deep.
func LoadTemplateFile(path string) (calcspec.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return calcspec.Template{}, err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return calcspec.Template{}, fmt.Errorf("%s: %w", path, err)
	}

	present := func(field string) bool {
		_, ok := doc[field]
		return ok
	}
	t := calcspec.Template{
		Program:        present(calcspec.FieldProgram),
		Method:         present(calcspec.FieldMethod),
		Basis:          present(calcspec.FieldBasis),
		Input:          present(calcspec.FieldInput),
		CmdlineArgs:    present(calcspec.FieldCmdlineArgs),
		Files:          present(calcspec.FieldFiles),
		Calctype:       present(calcspec.FieldCalctype),
		ProgramVersion: present(calcspec.FieldProgramVersion),
	}
	if t.Keywords, err = keySetOfDoc(doc, calcspec.FieldKeywords); err != nil {
		return calcspec.Template{}, fmt.Errorf("%s: %w", path, err)
	}
	if t.Extras, err = keySetOfDoc(doc, calcspec.FieldExtras); err != nil {
		return calcspec.Template{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// keySetOfDoc converts a template document's keywords/extras entry to a
// KeySet: keys mapped to mappings keep only those nested keys, everything
// else keeps the spec value whole.
func keySetOfDoc(doc map[string]any, field string) (calcspec.KeySet, error) {
	raw, ok := doc[field]
	if !ok {
		return nil, nil
	}
	if raw == nil {
		// Declared with no keys: the field participates but projects empty.
		return calcspec.KeySet{}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s must be a mapping", field)
	}
	ks := make(calcspec.KeySet, len(m))
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			nested := make([]string, 0, len(sub))
			for nk := range sub {
				nested = append(nested, nk)
			}
			ks[k] = nested
		} else {
			ks[k] = nil
		}
	}
	return ks, nil
}
