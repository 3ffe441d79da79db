package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwiater/benchlog/internal/benchlog"
	"github.com/mwiater/benchlog/internal/report"
)

func aggregator() *report.Aggregator {
	a := report.NewAggregator()
	a.Add(&benchlog.Result{
		Source: "p3_2xlarge.log",
		Records: []benchlog.Record{
			{BatchSize: 128, ExamplesPerSec: 1298},
			{BatchSize: 128, ExamplesPerSec: 1302},
			{BatchSize: 256, ExamplesPerSec: 510},
		},
	})
	a.Add(&benchlog.Result{
		Source:  "g4dn.log",
		Records: []benchlog.Record{{BatchSize: 128, ExamplesPerSec: 900}},
	})
	return a
}

func TestModel_ToggleGrouping(t *testing.T) {
	m := newModel(aggregator())
	if got := len(m.table.Rows()); got != 2 {
		t.Fatalf("expected 2 batch rows, got %d", got)
	}
	if m.table.Rows()[0][0] != "bs=128" {
		t.Fatalf("unexpected first row: %v", m.table.Rows()[0])
	}

	m2, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = m2.(*model)
	if m.mode != byFile {
		t.Fatalf("expected by-file mode after tab, got %v", m.mode)
	}
	if got := len(m.table.Rows()); got != 3 {
		t.Fatalf("expected 3 file rows, got %d", got)
	}
	if m.table.Rows()[2][0] != "g4dn bs=128" {
		t.Fatalf("unexpected last row: %v", m.table.Rows()[2])
	}

	m2, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = m2.(*model)
	if m.mode != byBatch {
		t.Fatalf("expected by-batch mode after second tab, got %v", m.mode)
	}
}

func TestModel_RowsFormatThousands(t *testing.T) {
	m := newModel(aggregator())
	row := m.table.Rows()[0]
	if row[1] != "3" {
		t.Fatalf("expected N=3, got %q", row[1])
	}
	if row[6] != "1,302" {
		t.Fatalf("expected max 1,302, got %q", row[6])
	}
}

func TestModel_QuitAndView(t *testing.T) {
	m := newModel(aggregator())
	_, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})

	out := m.View()
	if !strings.Contains(out, "benchlog by batch size") || !strings.Contains(out, "bs=256") {
		t.Fatalf("unexpected view: %s", out)
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Fatal("expected empty view after quitting")
	}
}

func TestModel_EmptyView(t *testing.T) {
	m := newModel(report.NewAggregator())
	if !strings.Contains(m.View(), "no benchmark records found") {
		t.Fatalf("unexpected view: %s", m.View())
	}
}
