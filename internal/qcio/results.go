// Package qcio decodes external quantum-chemistry result records: the
// structured-input variant carrying a molecular structure, a model, and
// provenance. It converts them to calculation specs and geometries.
package qcio

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/TroyNSmith/autostore/internal/calcspec"
	"github.com/TroyNSmith/autostore/internal/chem"
)

// BohrToAngstrom converts atomic-unit lengths to Angstroms (CODATA 2018).
const BohrToAngstrom = 0.529177210903

// Results is an external calculation result record.
type Results struct {
	InputData  InputData  `json:"input_data"`
	Success    bool       `json:"success"`
	Data       Data       `json:"data"`
	Provenance Provenance `json:"provenance"`
}

// InputData is the input half of a result. Only the structured variant
// (structure + model present) is supported for storage.
type InputData struct {
	Structure *Structure     `json:"structure"`
	Model     *Model         `json:"model"`
	Calctype  string         `json:"calctype"`
	Keywords  map[string]any `json:"keywords"`
	Extras    map[string]any `json:"extras"`
}

// Structure is a molecular structure with coordinates in Bohr.
type Structure struct {
	Symbols      []string    `json:"symbols"`
	Geometry     [][]float64 `json:"geometry"`
	Charge       int         `json:"charge"`
	Multiplicity int         `json:"multiplicity"`
}

// Model names the level of theory.
type Model struct {
	Method string  `json:"method"`
	Basis  *string `json:"basis"`
}

// Data holds computed values.
type Data struct {
	Energy float64 `json:"energy"`
}

// Provenance records which program produced the result.
type Provenance struct {
	Program        string `json:"program"`
	ProgramVersion string `json:"program_version"`
}

// UnsupportedInputError reports a result whose input_data is not the
// recognized structured-input variant.
type UnsupportedInputError struct {
	Missing string // which part of the structured variant is absent
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported input data: structured input requires %s", e.Missing)
}

// ParseResults decodes and validates a result record from JSON.
func ParseResults(data []byte) (*Results, error) {
	var res Results
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return &res, nil
}

// Validate checks that the record is a well-formed structured-input
// result. A missing structure or model is an *UnsupportedInputError; other
// shape violations come back as validation errors.
func (r *Results) Validate() error {
	if r.InputData.Structure == nil {
		return &UnsupportedInputError{Missing: "a structure"}
	}
	if r.InputData.Model == nil {
		return &UnsupportedInputError{Missing: "a model"}
	}
	if err := r.InputData.Structure.Validate(); err != nil {
		return fmt.Errorf("structure: %w", err)
	}
	if err := r.InputData.Model.Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	return validation.ValidateStruct(&r.Provenance,
		validation.Field(&r.Provenance.Program, validation.Required),
	)
}

// Validate checks structural consistency: non-empty symbols, one 3-vector
// per atom, and a physical multiplicity.
func (s *Structure) Validate() error {
	if err := validation.ValidateStruct(s,
		validation.Field(&s.Symbols, validation.Required),
		validation.Field(&s.Geometry, validation.Required, validation.Length(len(s.Symbols), len(s.Symbols))),
		validation.Field(&s.Multiplicity, validation.Min(1)),
	); err != nil {
		return err
	}
	for i, row := range s.Geometry {
		if len(row) != 3 {
			return fmt.Errorf("geometry row %d has %d components, want 3", i, len(row))
		}
	}
	return nil
}

// Validate checks the model names a method.
func (m *Model) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Method, validation.Required),
	)
}

// Spec converts the record to a calculation spec. Fields the external
// format does not carry (e.g. input file content) stay absent.
func (r *Results) Spec() (calcspec.Spec, error) {
	if r.InputData.Model == nil {
		return calcspec.Spec{}, &UnsupportedInputError{Missing: "a model"}
	}
	spec := calcspec.Spec{
		Program: r.Provenance.Program,
		Method:  r.InputData.Model.Method,
		Basis:   r.InputData.Model.Basis,
	}
	if r.InputData.Calctype != "" {
		spec.Calctype = calcspec.Ptr(r.InputData.Calctype)
	}
	if r.Provenance.ProgramVersion != "" {
		spec.ProgramVersion = calcspec.Ptr(r.Provenance.ProgramVersion)
	}
	var err error
	if spec.Keywords, err = toObject(r.InputData.Keywords); err != nil {
		return calcspec.Spec{}, fmt.Errorf("keywords: %w", err)
	}
	if spec.Extras, err = toObject(r.InputData.Extras); err != nil {
		return calcspec.Spec{}, fmt.Errorf("extras: %w", err)
	}
	return spec, nil
}

func toObject(m map[string]any) (calcspec.Object, error) {
	if m == nil {
		return nil, nil
	}
	v, err := calcspec.FromGo(m)
	if err != nil {
		return nil, err
	}
	return v.(calcspec.Object), nil
}

// Geometry converts the record's structure to a geometry with coordinates
// in Angstroms and spin as the unpaired-electron count.
func (r *Results) Geometry() (chem.Geometry, error) {
	st := r.InputData.Structure
	if st == nil {
		return chem.Geometry{}, &UnsupportedInputError{Missing: "a structure"}
	}
	if err := st.Validate(); err != nil {
		return chem.Geometry{}, fmt.Errorf("structure: %w", err)
	}

	coords := make([][3]float64, len(st.Geometry))
	for i, row := range st.Geometry {
		for j, x := range row {
			coords[i][j] = x * BohrToAngstrom
		}
	}
	// An omitted multiplicity defaults to a singlet, matching the input
	// format's own default.
	multiplicity := st.Multiplicity
	if multiplicity == 0 {
		multiplicity = 1
	}
	return chem.Geometry{
		Symbols:     append([]string(nil), st.Symbols...),
		Coordinates: coords,
		Charge:      st.Charge,
		Spin:        multiplicity - 1,
	}, nil
}
