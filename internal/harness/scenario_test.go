package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "basic-three.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "basic-three", s.Name)
	assert.Len(t, s.Input, 3)
	assert.False(t, s.RetagSwaps)
	require.Len(t, s.Assertions, 6)
	assert.Equal(t, AssertTraceLength, s.Assertions[0].Type)
	assert.Equal(t, 7, s.Assertions[0].Length)
}

func TestLoadScenario_RetagSwaps(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "retagged.yaml"))
	require.NoError(t, err)
	assert.True(t, s.RetagSwaps)
}

func TestLoadScenario_EmptyInput(t *testing.T) {
	s, err := LoadScenario(filepath.Join("testdata", "scenarios", "empty.yaml"))
	require.NoError(t, err)
	assert.Empty(t, s.Input)
	assert.NotNil(t, s.Input, "empty input is an empty list, not absent")
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "scenarios", "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_UnknownField(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "invalid", "unknown-field.yaml"))
	require.Error(t, err, "typo'd keys must fail loudly")
}

func TestLoadScenario_BadAssertionType(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "invalid", "bad-assertion-type.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestLoadScenario_FloatInput(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "invalid", "float-input.yaml"))
	require.Error(t, err, "floats are rejected at the schema boundary")
}

func TestLoadScenario_MissingDescription(t *testing.T) {
	_, err := LoadScenario(filepath.Join("testdata", "invalid", "missing-description.yaml"))
	assert.Error(t, err)
}

func TestValidateAssertion_TraceLengthTooShort(t *testing.T) {
	err := validateAssertion(0, &Assertion{Type: AssertTraceLength, Length: 1})
	assert.Error(t, err)
}

func TestValidateAssertion_SnapshotAtNeedsPayload(t *testing.T) {
	err := validateAssertion(0, &Assertion{Type: AssertSnapshotAt, Index: 3})
	assert.Error(t, err)

	err = validateAssertion(0, &Assertion{Type: AssertSnapshotAt, Index: 3, NarrationContains: "swap"})
	assert.NoError(t, err)
}
