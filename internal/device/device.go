package device

import (
	"bufio"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Thresholds decide when a device counts as low-end. They are policy, not a
// contract; the defaults follow the reference heuristic.
type Thresholds struct {
	SlowNetworks     []string
	MinMemoryGB      float64
	MinCores         int
	MinViewportWidth int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		SlowNetworks:     []string{"slow-2g", "2g"},
		MinMemoryGB:      2,
		MinCores:         2,
		MinViewportWidth: 40,
	}
}

// Profile describes the host. Zero MemoryGB or Cores means unknown and never
// triggers the corresponding rule.
type Profile struct {
	NetworkClass  string
	MemoryGB      float64
	Cores         int
	ViewportWidth int
}

// LowEnd reports whether any rule matches, plus the name of the first one.
func (t Thresholds) LowEnd(p Profile) (bool, string) {
	class := strings.ToLower(strings.TrimSpace(p.NetworkClass))
	for _, slow := range t.SlowNetworks {
		if class != "" && class == strings.ToLower(slow) {
			return true, "network"
		}
	}
	if p.MemoryGB > 0 && p.MemoryGB < t.MinMemoryGB {
		return true, "memory"
	}
	if p.Cores > 0 && p.Cores < t.MinCores {
		return true, "cores"
	}
	if p.ViewportWidth > 0 && p.ViewportWidth < t.MinViewportWidth {
		return true, "viewport"
	}
	return false, ""
}

// Detect fills a Profile from the running host. The network class cannot be
// probed and is taken from configuration.
func Detect(networkClass string, viewportWidth int) Profile {
	return Profile{
		NetworkClass:  networkClass,
		MemoryGB:      totalMemoryGB("/proc/meminfo"),
		Cores:         runtime.NumCPU(),
		ViewportWidth: viewportWidth,
	}
}

func totalMemoryGB(path string) float64 {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[0] == "MemTotal:" {
			kb, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return 0
			}
			return kb / (1024 * 1024)
		}
	}
	return 0
}
