package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fmterrors "github.com/chgroeling/formatify/internal/errors"
	"github.com/chgroeling/formatify/internal/testutil"
	"github.com/chgroeling/formatify/internal/tui"
	"github.com/chgroeling/formatify/internal/values"
)

func stubValuesEditor(t *testing.T, fn func(m *tui.ValuesEditorModel) (*tui.ValuesEditorModel, error)) {
	t.Helper()
	orig := runValuesEditor
	runValuesEditor = fn
	t.Cleanup(func() { runValuesEditor = orig })
}

func TestValues_NoTUIPrintsYAML(t *testing.T) {
	out, _, err := execute(t, "", "values", "%(name) %(user/id) %(day)", "--set", "name=Alice", "--set", "user/id=7", "--set", "unused=x", "--no-tui")
	require.NoError(t, err)
	assert.Equal(t, "name: Alice\nuser:\n  id: \"7\"\n", out)
}

func TestValues_NoTUIFormatEnv(t *testing.T) {
	out, _, err := execute(t, "", "values", "%(NAME)", "--set", "NAME=Alice", "--no-tui", "--format", "env")
	require.NoError(t, err)
	assert.Equal(t, "NAME=\"Alice\"\n", out)
}

func TestValues_UnknownFormat(t *testing.T) {
	_, _, err := execute(t, "", "values", "%(a)", "--no-tui", "--format", "ini")
	require.Error(t, err)
	assert.True(t, fmterrors.IsInvalid(err))
}

func TestValues_EditorWritesFile(t *testing.T) {
	stubValuesEditor(t, func(m *tui.ValuesEditorModel) (*tui.ValuesEditorModel, error) {
		assert.Equal(t, []string{"day"}, m.Unset())
		m.Values["day"] = "Monday"
		m.Done = true
		return m, nil
	})
	target := testutil.TempDir(t) + "/values.toml"

	out, _, err := execute(t, "", "values", "%(name) %(day)", "--set", "name=Alice", "-o", target)
	require.NoError(t, err)
	assert.Empty(t, out)

	m, err := values.LoadFile(target)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"name": "Alice", "day": "Monday"}, m)
}

func TestValues_EditorCancelled(t *testing.T) {
	stubValuesEditor(t, func(m *tui.ValuesEditorModel) (*tui.ValuesEditorModel, error) {
		m.Cancelled = true
		return m, nil
	})

	_, _, err := execute(t, "", "values", "%(a)")
	require.Error(t, err)
	assert.True(t, fmterrors.IsCanceled(err))
}
