package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()
	assert.NotEmpty(t, info.Version)
	assert.NotEmpty(t, info.GitCommit)
	assert.NotEmpty(t, info.BuildDate)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestGet_LdflagsWin(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origVersion, origCommit })

	Version = "v1.2.3"
	GitCommit = "abc123"

	info := Get()
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "abc123", info.GitCommit)
}

func TestInfo_String(t *testing.T) {
	info := Info{
		Version:   "v1.0.0",
		GitCommit: "abc123",
		BuildDate: "2025-01-01",
		GoVersion: "go1.25.0",
		Platform:  "linux/amd64",
	}

	s := info.String()
	assert.Contains(t, s, "hookpad version v1.0.0")
	assert.Contains(t, s, "abc123")
	assert.Contains(t, s, "2025-01-01")
	assert.Contains(t, s, "go1.25.0")
	assert.Contains(t, s, "linux/amd64")
}
