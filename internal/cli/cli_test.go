package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TroyNSmith/autostore/internal/store"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const specYAML = `program: psi4
method: b3lyp
basis: def2-svp
keywords:
  scf_type: df
  print: 2
`

// Same spec with a different value for a keyword outside the template.
const specChangedYAML = `program: psi4
method: b3lyp
basis: def2-svp
keywords:
  scf_type: df
  print: 5
`

const templateYAML = `program:
method:
basis:
keywords:
  scf_type:
`

func TestHashCommandDeterministic(t *testing.T) {
	spec := writeFile(t, "spec.yaml", specYAML)

	out1, err := runCommand(t, "hash", spec)
	require.NoError(t, err)
	out2, err := runCommand(t, "hash", spec)
	require.NoError(t, err)

	assert.Equal(t, out1, out2)
	assert.Len(t, out1, 65, "64 hex characters plus newline")
}

func TestHashCommandSchemes(t *testing.T) {
	spec := writeFile(t, "spec.yaml", specYAML)
	changed := writeFile(t, "changed.yaml", specChangedYAML)

	full1, err := runCommand(t, "hash", spec)
	require.NoError(t, err)
	full2, err := runCommand(t, "hash", changed)
	require.NoError(t, err)
	assert.NotEqual(t, full1, full2, "full hash sees every keyword")

	min1, err := runCommand(t, "hash", spec, "--scheme", "minimal")
	require.NoError(t, err)
	min2, err := runCommand(t, "hash", changed, "--scheme", "minimal")
	require.NoError(t, err)
	assert.Equal(t, min1, min2, "minimal hash ignores keywords outside the allowlist")
}

func TestHashCommandTemplate(t *testing.T) {
	spec := writeFile(t, "spec.yaml", specYAML)
	changed := writeFile(t, "changed.yaml", specChangedYAML)
	tmpl := writeFile(t, "template.yaml", templateYAML)

	h1, err := runCommand(t, "hash", spec, "--template", tmpl)
	require.NoError(t, err)
	h2, err := runCommand(t, "hash", changed, "--template", tmpl)
	require.NoError(t, err)
	assert.Equal(t, h1, h2, "template projection drops the changed keyword")
}

func TestHashCommandUnknownScheme(t *testing.T) {
	spec := writeFile(t, "spec.yaml", specYAML)
	_, err := runCommand(t, "hash", spec, "--scheme", "nope")
	require.Error(t, err)
}

func TestSchemesCommand(t *testing.T) {
	out, err := runCommand(t, "schemes")
	require.NoError(t, err)
	assert.Equal(t, "full\nminimal\n", out)
}

const waterResultJSON = `{
	"input_data": {
		"structure": {
			"symbols": ["O", "H", "H"],
			"geometry": [[0,0,0],[1.8897261259082012,0,0],[0,1.8897261259082012,0]],
			"charge": 0,
			"multiplicity": 1
		},
		"model": {"method": "gfn2"},
		"calctype": "energy"
	},
	"success": true,
	"data": {"energy": -5.062316802835694},
	"provenance": {"program": "crest", "program_version": "3.0.2"}
}`

func TestWriteEnergyCommand(t *testing.T) {
	result := writeFile(t, "water.json", waterResultJSON)
	dbPath := filepath.Join(t.TempDir(), "test.db")

	out, err := runCommand(t, "write-energy", "--db", dbPath, result)
	require.NoError(t, err)
	assert.Contains(t, out, "geometry=")

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()
	energies, err := store.ListEnergies(t.Context(), s.DB())
	require.NoError(t, err)
	assert.Len(t, energies, 1)
}

func TestWriteStationaryCommand(t *testing.T) {
	result := writeFile(t, "water.json", waterResultJSON)
	dbPath := filepath.Join(t.TempDir(), "test.db")

	_, err := runCommand(t, "write-stationary", "--db", dbPath, "--order", "0", result)
	require.NoError(t, err)

	s, err := store.Open(dbPath)
	require.NoError(t, err)
	defer s.Close()
	n, err := store.CountIdentities(t.Context(), s.DB())
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestWriteCommandsRequireDB(t *testing.T) {
	result := writeFile(t, "water.json", waterResultJSON)
	t.Setenv(EnvDB, "")

	_, err := runCommand(t, "write-energy", result)
	require.Error(t, err)
}

func TestLoadTemplateFileNestedKeys(t *testing.T) {
	tmpl := writeFile(t, "template.yaml", "program:\nmethod:\nkeywords:\n  a:\n    c:\n")

	got, err := LoadTemplateFile(tmpl)
	require.NoError(t, err)
	assert.True(t, got.Program)
	assert.True(t, got.Method)
	assert.False(t, got.Basis)
	require.Contains(t, got.Keywords, "a")
	assert.Equal(t, []string{"c"}, got.Keywords["a"])
}
