package cmdutil

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/hookpad/cli/internal/errors"
	"github.com/hookpad/cli/internal/output"
	"github.com/hookpad/cli/internal/viewer"
)

func TestAddRenderFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	AddRenderFlags(cmd)

	width := cmd.Flags().Lookup("width")
	require.NotNil(t, width)
	assert.Equal(t, "int", width.Value.Type())
	assert.Equal(t, "0", width.DefValue)

	style := cmd.Flags().Lookup("style")
	require.NotNil(t, style)
	assert.Equal(t, "auto", style.DefValue)
}

func TestAddServeFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	AddServeFlags(cmd)

	addr := cmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "127.0.0.1:8080", addr.DefValue)

	timeout := cmd.Flags().Lookup("load-timeout")
	require.NotNil(t, timeout)
	assert.Equal(t, "duration", timeout.Value.Type())
	assert.Equal(t, "10s", timeout.DefValue)
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    viewer.Target
		wantErr bool
	}{
		{"two args", []string{"useState", "01_useState"}, viewer.Target{Group: "useState", File: "01_useState"}, false},
		{"path", []string{"useRef/02_useRef"}, viewer.Target{Group: "useRef", File: "02_useRef"}, false},
		{"no slash", []string{"useState"}, viewer.Target{}, true},
		{"no args", nil, viewer.Target{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTarget(tt.args)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, oerrors.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteData(t *testing.T) {
	rows := []output.LessonRow{{Group: "useRef", Name: "01_useRef", Link: "/topic/useRef/01_useRef"}}

	var buf bytes.Buffer
	require.NoError(t, WriteData(&buf, output.FormatYAML, rows))
	assert.Contains(t, buf.String(), "- group: useRef")

	buf.Reset()
	require.NoError(t, WriteData(&buf, output.FormatJSON, rows))
	assert.Contains(t, buf.String(), `"link": "/topic/useRef/01_useRef"`)
}
