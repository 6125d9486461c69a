package tankeroidz

import "math"

// BodySnapshot is the replay-relevant state of one enemy, bullet or power-up.
type BodySnapshot struct {
	Kind      string  `yaml:"kind,omitempty"` // Power-up name; empty otherwise
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Rot       float64 `yaml:"rot"`
	Radius    float64 `yaml:"radius"`
	MoveSpeed float64 `yaml:"move_speed"`
	Health    float64 `yaml:"health"`
	Age       int     `yaml:"age"`
}

// ModifierSnapshot is one active modifier on the tank.
type ModifierSnapshot struct {
	Attribute string `yaml:"attribute"`
	Spec      string `yaml:"spec"`
	Remaining int    `yaml:"remaining"`
}

// TankSnapshot is the tank's replay-relevant state.
type TankSnapshot struct {
	X         float64            `yaml:"x"`
	Y         float64            `yaml:"y"`
	Rot       float64            `yaml:"rot"`
	Health    float64            `yaml:"health"`
	Power     float64            `yaml:"power"`
	Dir       int                `yaml:"dir"`
	Speed     float64            `yaml:"speed"`
	Firing    bool               `yaml:"firing"`
	Boosting  bool               `yaml:"boosting"`
	LastShot  int                `yaml:"last_shot"`
	Modifiers []ModifierSnapshot `yaml:"modifiers,omitempty"`
}

// Snapshot is the complete round state at a tick boundary, used for replay
// checks and the simulate command's output.
type Snapshot struct {
	Tick           int            `yaml:"tick"`
	State          string         `yaml:"state"`
	Score          float64        `yaml:"score"`
	SpawnCountdown float64        `yaml:"spawn_countdown"`
	RNGState       uint64         `yaml:"rng_state"`
	Tank           TankSnapshot   `yaml:"tank"`
	Enemies        []BodySnapshot `yaml:"enemies,omitempty"`
	Bullets        []BodySnapshot `yaml:"bullets,omitempty"`
	PowerUps       []BodySnapshot `yaml:"powerups,omitempty"`
}

// Snapshot captures the round's current state.
func (r *Round) Snapshot() Snapshot {
	t := r.reg.Tank
	ts := TankSnapshot{
		X:        t.Pos.X,
		Y:        t.Pos.Y,
		Rot:      t.Rot,
		Health:   t.Health,
		Power:    t.Power,
		Dir:      t.Dir,
		Speed:    t.Speed,
		Firing:   t.Firing,
		Boosting: t.Boosting,
		LastShot: t.lastShot,
	}
	for _, a := range t.ActiveModifiers() {
		mod, remaining, _ := t.ModifierOn(a)
		ts.Modifiers = append(ts.Modifiers, ModifierSnapshot{
			Attribute: a.String(),
			Spec:      mod.String(),
			Remaining: remaining,
		})
	}

	snap := Snapshot{
		Tick:           r.tick,
		State:          r.state.String(),
		Score:          r.score,
		SpawnCountdown: r.spawnCountdown,
		RNGState:       r.rng.State(),
		Tank:           ts,
	}
	for _, e := range r.reg.Enemies.Live() {
		snap.Enemies = append(snap.Enemies, bodySnapshot("", &e.Entity))
	}
	for _, b := range r.reg.Bullets.Live() {
		snap.Bullets = append(snap.Bullets, bodySnapshot("", &b.Entity))
	}
	for _, p := range r.reg.PowerUps.Live() {
		snap.PowerUps = append(snap.PowerUps, bodySnapshot(p.Kind.Name, &p.Entity))
	}
	return snap
}

func bodySnapshot(kind string, e *Entity) BodySnapshot {
	return BodySnapshot{
		Kind:      kind,
		X:         e.Pos.X,
		Y:         e.Pos.Y,
		Rot:       e.Rot,
		Radius:    e.Radius(),
		MoveSpeed: e.MoveSpeed,
		Health:    e.Health,
		Age:       e.Age,
	}
}

// Hash returns a hash of the snapshot for determinism testing.
// Floats are hashed by their exact bit patterns.
func (s *Snapshot) Hash() uint64 {
	h := uint64(s.Tick) //#nosec G115 -- hash computation
	h = hashString(h, s.State)
	h = hashFloat(h, s.Score)
	h = hashFloat(h, s.SpawnCountdown)
	h = h*31 + s.RNGState

	t := s.Tank
	for _, v := range []float64{t.X, t.Y, t.Rot, t.Health, t.Power, t.Speed} {
		h = hashFloat(h, v)
	}
	h = h*31 + uint64(t.Dir+1)    //#nosec G115 -- hash computation
	h = h*31 + uint64(t.LastShot) //#nosec G115 -- hash computation
	h = hashBool(h, t.Firing)
	h = hashBool(h, t.Boosting)
	for _, m := range t.Modifiers {
		h = hashString(h, m.Attribute)
		h = hashString(h, m.Spec)
		h = h*31 + uint64(m.Remaining) //#nosec G115 -- hash computation
	}

	for _, group := range [][]BodySnapshot{s.Enemies, s.Bullets, s.PowerUps} {
		h = h*31 + uint64(len(group))
		for _, b := range group {
			h = hashString(h, b.Kind)
			for _, v := range []float64{b.X, b.Y, b.Rot, b.Radius, b.MoveSpeed, b.Health} {
				h = hashFloat(h, v)
			}
			h = h*31 + uint64(b.Age) //#nosec G115 -- hash computation
		}
	}
	return h
}

func hashFloat(h uint64, v float64) uint64 {
	return h*31 + math.Float64bits(v)
}

func hashBool(h uint64, v bool) uint64 {
	if v {
		return h*31 + 1
	}
	return h * 31
}

func hashString(h uint64, s string) uint64 {
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h*31 + uint64(len(s))
}
