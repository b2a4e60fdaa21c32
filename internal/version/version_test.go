package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.NotEmpty(t, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfo_Full(t *testing.T) {
	info := Info{
		Version:   "v1.2.3",
		Commit:    "abc123",
		BuildDate: "2026-01-02",
		GoVersion: "go1.25.5",
		Platform:  "linux/amd64",
	}

	assert.Equal(t, "v1.2.3", info.String())
	assert.Equal(t, "v1.2.3 (abc123) built 2026-01-02 go1.25.5 linux/amd64", info.Full())
}
