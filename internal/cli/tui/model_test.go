package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haskel/cpuwatch/internal/monitor"
)

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func TestModel_ViewBeforeSize(t *testing.T) {
	m := NewModel("0.1.0")
	if m.View() != "Loading..." {
		t.Errorf("expected loading view, got %q", m.View())
	}
}

func TestModel_WaitingForFirstSample(t *testing.T) {
	m := sized(NewModel("0.1.0"))

	view := m.View()
	if !strings.Contains(view, "waiting for the first sample") {
		t.Errorf("expected waiting message, got:\n%s", view)
	}
}

func TestModel_UsageMsg(t *testing.T) {
	m := sized(NewModel("0.1.0"))

	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	updated, cmd := m.Update(UsageMsg{Usage: monitor.Usage{50, 25, 75}, At: at})
	if cmd != nil {
		t.Error("expected no command for usage update")
	}
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"Overall", " 50.00%", "Core 0", " 25.00%", "Core 1", " 75.00%", "15:04:05"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_UsageMsgIsCopied(t *testing.T) {
	m := sized(NewModel("0.1.0"))

	u := monitor.Usage{10, 10}
	updated, _ := m.Update(UsageMsg{Usage: u, At: time.Now()})
	u[0] = 99

	if got := updated.(Model).usage.Aggregate(); got != 10 {
		t.Errorf("model shares the caller's slice, aggregate %f", got)
	}
}

func TestModel_Quit(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, cmd := NewModel("0.1.0").Update(tt.key)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if _, ok := cmd().(tea.QuitMsg); !ok {
				t.Error("expected tea.QuitMsg")
			}
			if !updated.(Model).Quitting() {
				t.Error("expected model to be quitting")
			}
		})
	}
}

func TestModel_OtherKeysIgnored(t *testing.T) {
	updated, cmd := NewModel("0.1.0").Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd != nil {
		t.Error("expected no command")
	}
	if updated.(Model).Quitting() {
		t.Error("expected model to keep running")
	}
}

func TestRenderProgressBar_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
	}{
		{"empty", 0},
		{"half", 50},
		{"full", 100},
		{"over", 150},
		{"negative", -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := renderProgressBar("CPU", tt.percent, 10)
			cells := strings.Count(bar, "█") + strings.Count(bar, "░")
			if cells != 10 {
				t.Errorf("expected 10 bar cells, got %d in %q", cells, bar)
			}
		})
	}
}

func TestGetProgressColor(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{10, string(colorSuccess)},
		{70, string(colorWarning)},
		{95, string(colorDanger)},
	}

	for _, tt := range tests {
		if got := string(getProgressColor(tt.percent)); got != tt.want {
			t.Errorf("getProgressColor(%v) = %s, want %s", tt.percent, got, tt.want)
		}
	}
}
