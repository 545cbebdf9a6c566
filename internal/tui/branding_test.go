package tui

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/pders01/showreel/internal/config"
)

func TestShowBanner(t *testing.T) {
	// Capture stdout
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	outC := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		outC <- buf.String()
	}()

	ShowBanner("1.0.0-test")

	w.Close()
	os.Stdout = old
	out := <-outC

	if !strings.Contains(out, "Agency Showreel") {
		t.Errorf("Expected banner to contain 'Agency Showreel', got: %s", out)
	}
	if !strings.Contains(out, "╔") || !strings.Contains(out, "╝") {
		t.Errorf("Expected banner to contain border characters, got: %s", out)
	}
	if !strings.Contains(out, "◆") {
		t.Errorf("Expected banner to contain separator symbols, got: %s", out)
	}
	if !strings.Contains(out, "v1.0.0-test") {
		t.Errorf("Expected banner to contain version 'v1.0.0-test', got: %s", out)
	}
}

func TestBannerLinesDevVersion(t *testing.T) {
	lines := BannerLines("dev")
	last := lines[len(lines)-1]
	if strings.Contains(last, "vdev") {
		t.Errorf("dev builds should not carry a version tag, got %q", last)
	}
	if len(lines) != len(LogoLines)+2 {
		t.Errorf("Expected %d banner lines, got %d", len(LogoLines)+2, len(lines))
	}
}

func TestGetCompactBanner(t *testing.T) {
	message := "Test message"
	result := GetCompactBanner(message)

	if !strings.Contains(result, message) {
		t.Errorf("Expected compact banner to contain '%s', got: %s", message, result)
	}
	if !strings.Contains(result, "█▀▄▀█") {
		t.Errorf("Expected compact banner to contain logo elements, got: %s", result)
	}
}

func TestApplyTheme(t *testing.T) {
	orig := PrimaryColor
	origMuted := MutedColor
	defer func() {
		PrimaryColor = orig
		MutedColor = origMuted
		buildStyles()
	}()

	ApplyTheme(config.UIColors{Primary: "#123456"})

	if PrimaryColor != lipgloss.Color("#123456") {
		t.Errorf("Expected primary color to be replaced, got %v", PrimaryColor)
	}
	if MutedColor != origMuted {
		t.Errorf("Empty entries should keep the built-in color, got %v", MutedColor)
	}
	if LogoStyle.GetForeground() != lipgloss.Color("#123456") {
		t.Errorf("Expected styles to be rebuilt with the new palette")
	}
}
