package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_Raw(t *testing.T) {
	tempHome(t)

	out, _, err := executeRoot(t, "view", "useState", "01_useState", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "# useState")
	assert.Contains(t, out, "## Tasks")
}

func TestView_Rendered(t *testing.T) {
	tempHome(t)

	out, _, err := executeRoot(t, "view", "useState/01_useState", "--style", "notty", "--width", "80")
	require.NoError(t, err)
	assert.Contains(t, out, "Tasks")
}

func TestView_NotFound(t *testing.T) {
	tempHome(t)

	out, errOut, err := executeRoot(t, "view", "useState", "99_missing", "--style", "notty")
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, ExitCodeFromError(err))
	assert.Empty(t, out)
	assert.Contains(t, errOut, "module not found: useState/99_missing")
}

func TestView_JSON(t *testing.T) {
	tempHome(t)

	out, _, err := executeRoot(t, "-o", "json", "view", "useState", "01_useState")
	require.NoError(t, err)

	var res ViewResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "useState/01_useState", res.Target)
	assert.Equal(t, "useState/01_useState", res.Key)
	assert.Equal(t, "ready", res.Phase)
	assert.NotEmpty(t, res.Title)
	assert.Contains(t, res.Body, "## Tasks")
}

func TestView_JSONNotFound(t *testing.T) {
	tempHome(t)

	out, _, err := executeRoot(t, "-o", "json", "view", "useState", "99_missing")
	require.Error(t, err)

	var res ViewResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "not-found", res.Phase)
	assert.Empty(t, res.Key)
	assert.Equal(t, "module not found: useState/99_missing", res.Message)
}

func TestView_UnlistedLessonLoads(t *testing.T) {
	tempHome(t)

	out, _, err := executeRoot(t, "view", "data_fetching", "01_fetch_api", "--raw")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestView_SuffixMatch(t *testing.T) {
	tempHome(t)

	_, _, err := executeRoot(t, "view", "State", "01_useState", "--raw")
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, ExitCodeFromError(err))

	out, _, err := executeRoot(t, "--match", "suffix", "view", "State", "01_useState", "--raw")
	require.NoError(t, err)
	assert.Contains(t, out, "## Tasks")
}
