package util

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncatePlain(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate(short, 10) = %q", got)
	}
	got := Truncate("a considerably longer itinerary line", 12)
	if lipgloss.Width(got) > 12 {
		t.Errorf("truncated width %d exceeds 12: %q", lipgloss.Width(got), got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got)
	}
}

func TestTruncateTinyWidth(t *testing.T) {
	if got := Truncate("anything", 3); got != "..." {
		t.Errorf("Truncate with width 3 = %q", got)
	}
}

func TestTruncateStyled(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("Day 1: Arrival in Goa, beach sunset walk")
	got := Truncate(styled, 20)
	if lipgloss.Width(got) > 20 {
		t.Errorf("styled truncation width %d exceeds 20", lipgloss.Width(got))
	}
}
