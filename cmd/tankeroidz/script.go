package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tankeroidz/internal/core"
)

// scriptEvent is one entry of an input script: the key edges delivered
// before the given tick.
type scriptEvent struct {
	Tick    int      `yaml:"tick"`
	Press   []string `yaml:"press"`
	Release []string `yaml:"release"`
}

// inputScript replays key edges by tick number, starting at 0.
type inputScript struct {
	frames map[int]core.InputFrame
	last   int
}

// parseScript decodes a YAML list of events. Several events may share a tick;
// their edges are merged.
func parseScript(data []byte) (inputScript, error) {
	var events []scriptEvent
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&events); err != nil && !errors.Is(err, io.EOF) {
		return inputScript{}, fmt.Errorf("script: %w", err)
	}

	sc := inputScript{frames: make(map[int]core.InputFrame)}
	for i, ev := range events {
		if ev.Tick < 0 {
			return inputScript{}, fmt.Errorf("script: event %d: negative tick %d", i, ev.Tick)
		}
		frame, ok := sc.frames[ev.Tick]
		if !ok {
			frame = core.NewInputFrame()
		}
		for _, name := range ev.Release {
			a, err := parseActionName(name)
			if err != nil {
				return inputScript{}, fmt.Errorf("script: event %d: %w", i, err)
			}
			frame.Release(a)
		}
		for _, name := range ev.Press {
			a, err := parseActionName(name)
			if err != nil {
				return inputScript{}, fmt.Errorf("script: event %d: %w", i, err)
			}
			frame.Press(a)
		}
		sc.frames[ev.Tick] = frame
		sc.last = max(sc.last, ev.Tick)
	}
	return sc, nil
}

// frame returns the edges for tick, or an empty frame.
func (sc inputScript) frame(tick int) core.InputFrame {
	if f, ok := sc.frames[tick]; ok {
		return f
	}
	return core.NewInputFrame()
}

// parseActionName accepts action names in any case, e.g. "fire" or "TurnLeft".
func parseActionName(name string) (core.Action, error) {
	name = strings.TrimSpace(name)
	for a := core.ActionTurnLeft; a <= core.ActionQuit; a++ {
		if strings.EqualFold(a.String(), name) {
			return a, nil
		}
	}
	return core.ActionNone, fmt.Errorf("unknown action %q", name)
}
