package tui

import (
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tankeroidz/internal/config"
	"github.com/vovakirdan/tankeroidz/internal/core"
	"github.com/vovakirdan/tankeroidz/internal/games/tankeroidz"
	"github.com/vovakirdan/tankeroidz/internal/storage"
)

type fakeRecorder struct {
	saved []storage.RoundRecord
	best  int
	err   error
}

func (f *fakeRecorder) SaveRound(rec storage.RoundRecord) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, rec)
	return "round-id", nil
}

func (f *fakeRecorder) HighScore(string, string) (int, error) {
	return f.best, nil
}

func newTestModel(t *testing.T, store ScoreRecorder) (Model, *tankeroidz.Game) {
	t.Helper()
	g, err := tankeroidz.New(config.Default(), config.DifficultyNormal)
	if err != nil {
		t.Fatalf("tankeroidz.New() error = %v", err)
	}
	cfg := core.DefaultConfig()
	cfg.Seed = 42
	m := NewModel(g, store, cfg, log.New(io.Discard))
	m.Init()
	return m, g
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return nm
}

func TestModelHeldKeyDrivesTank(t *testing.T) {
	m, g := newTestModel(t, nil)

	m = update(t, m, runeKey('w'))
	m = update(t, m, TickMsg{})
	if got := g.Round().Tank().Speed; got != 1 {
		t.Fatalf("tank speed = %v, expected 1 while w is held", got)
	}

	// No repeats arrive: the hold lapses and the tank stops
	for range firstHoldTicks {
		m = update(t, m, TickMsg{})
	}
	if got := g.Round().Tank().Speed; got != 0 {
		t.Errorf("tank speed = %v, expected 0 after the key went quiet", got)
	}
}

func TestModelSavesRoundOnce(t *testing.T) {
	rec := &fakeRecorder{best: 5}
	m, g := newTestModel(t, rec)

	m = update(t, m, TickMsg{})
	g.Round().Tank().Health = 0
	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})

	if len(rec.saved) != 1 {
		t.Fatalf("saved %d rounds, expected 1", len(rec.saved))
	}
	got := rec.saved[0]
	if got.GameID != "tankeroidz" || got.Difficulty != "normal" || got.Seed != 42 || got.Ticks != 2 {
		t.Errorf("saved record = %+v", got)
	}
	if !strings.Contains(m.View(), "Best 5") {
		t.Error("game-over footer should show the previous best")
	}

	// Restart and die again
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	if m.state.GameOver {
		t.Fatal("restart should start a new round")
	}
	g.Round().Tank().Health = 0
	update(t, m, TickMsg{})
	if len(rec.saved) != 2 {
		t.Errorf("saved %d rounds, expected 2", len(rec.saved))
	}
	if rec.saved[1].Seed != 43 {
		t.Errorf("second round seed = %d, expected 43", rec.saved[1].Seed)
	}
}

func TestModelReportsStorageFailure(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	m, g := newTestModel(t, rec)

	g.Round().Tank().Health = 0
	m = update(t, m, TickMsg{})

	if !strings.Contains(m.summary, "not saved") {
		t.Errorf("summary = %q, expected a not saved note", m.summary)
	}
}

func TestModelRestartIgnoredWhileRunning(t *testing.T) {
	m, g := newTestModel(t, nil)
	m = update(t, m, runeKey('r'))
	update(t, m, TickMsg{})

	if g.Rounds() != 1 {
		t.Errorf("Rounds() = %d, expected 1", g.Rounds())
	}
}

func TestModelQuit(t *testing.T) {
	m, _ := newTestModel(t, nil)
	next, cmd := m.Update(runeKey('q'))

	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if next.(Model).View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelViewFitsWindow(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	out := m.View()
	if !strings.Contains(out, "SCORE") {
		t.Error("View() should include the HUD")
	}
	if !strings.Contains(out, "fire") {
		t.Error("View() should include the key help")
	}
	if lines := strings.Count(out, "\n") + 1; lines != 20 {
		t.Errorf("View() has %d lines, expected 20", lines)
	}
}
