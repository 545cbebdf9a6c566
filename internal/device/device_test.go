package device

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLowEnd(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name    string
		profile Profile
		want    bool
		rule    string
	}{
		{"capable desktop", Profile{NetworkClass: "4g", MemoryGB: 16, Cores: 8, ViewportWidth: 160}, false, ""},
		{"slow network", Profile{NetworkClass: "2G", MemoryGB: 16, Cores: 8}, true, "network"},
		{"slow-2g", Profile{NetworkClass: "slow-2g"}, true, "network"},
		{"little memory", Profile{MemoryGB: 1, Cores: 8}, true, "memory"},
		{"single core", Profile{MemoryGB: 8, Cores: 1}, true, "cores"},
		{"narrow terminal", Profile{MemoryGB: 8, Cores: 4, ViewportWidth: 30}, true, "viewport"},
		{"unknown everything", Profile{}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rule := th.LowEnd(tt.profile)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func TestTotalMemoryGB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meminfo")
	require.NoError(t, os.WriteFile(path, []byte("MemTotal:        2097152 kB\nMemFree: 1 kB\n"), 0o644))
	assert.Equal(t, 2.0, totalMemoryGB(path))
	assert.Equal(t, 0.0, totalMemoryGB(filepath.Join(t.TempDir(), "missing")))
}

func TestDetectUsesHost(t *testing.T) {
	p := Detect("wifi", 120)
	assert.Equal(t, "wifi", p.NetworkClass)
	assert.Equal(t, 120, p.ViewportWidth)
	assert.Positive(t, p.Cores)
}
