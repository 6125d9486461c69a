package tankeroidz

import (
	"github.com/vovakirdan/tankeroidz/internal/core"
)

// Tint is a multiplicative color overlay, channel values 0..255.
type Tint struct {
	R, G, B uint8
}

// Multiply blends o over t the way an RGB multiply blend does.
func (t Tint) Multiply(o Tint) Tint {
	return Tint{
		R: uint8(int(t.R) * int(o.R) / 256), //#nosec G115 -- product/256 fits in a byte
		G: uint8(int(t.G) * int(o.G) / 256), //#nosec G115 -- product/256 fits in a byte
		B: uint8(int(t.B) * int(o.B) / 256), //#nosec G115 -- product/256 fits in a byte
	}
}

// Color converts the tint to a true-color screen color.
func (t Tint) Color() core.Color {
	return core.RGB(t.R, t.G, t.B)
}

// activeModifier is one attribute's modifier slot. A slot holds at most one
// modifier, so installing over an occupied slot replaces it and its timer.
type activeModifier struct {
	mod       Modifier
	remaining int // ticks; meaningful only when timed
	timed     bool
	tint      Tint
	hasTint   bool
	active    bool
}

// Entity is a simulated body on the field.
type Entity struct {
	Pos core.Vec2
	Rot float64 // Degrees, 0 = up, positive = counter-clockwise

	radius, width, height float64

	Speed     float64 // -1 reverse, 0 idle, 1 forward
	MoveSpeed float64 // Pixels per tick
	TurnRate  float64 // Degrees per tick

	Health, MaxHealth, HealthRegen float64
	Power, MaxPower, PowerRegen    float64

	DamageModifier float64
	WallWalking    float64 // Nonzero wraps at field edges instead of blocking
	Impact         float64 // Damage dealt to whatever this collides with

	Age int // Ticks alive

	mods [attributeCount]activeModifier
}

func newEntity(radius float64) Entity {
	e := Entity{
		MaxHealth:      1,
		Health:         1,
		DamageModifier: 1,
	}
	e.SetRadius(radius)
	return e
}

// Radius is the collision radius.
func (e *Entity) Radius() float64 { return e.radius }

// Width is the bounding width.
func (e *Entity) Width() float64 { return e.width }

// Height is the bounding height.
func (e *Entity) Height() float64 { return e.height }

// SetRadius sets the radius and makes the bounds a square around it.
func (e *Entity) SetRadius(r float64) {
	e.radius = r
	e.width, e.height = r*2, r*2
}

// SetWidth changes the bounding width. When the new width is the smaller
// dimension the radius becomes half the mean dimension.
func (e *Entity) SetWidth(w float64) {
	if w < e.height {
		e.radius = (w + e.height) / 4
	}
	e.width = w
}

// SetHeight is SetWidth for the other axis.
func (e *Entity) SetHeight(h float64) {
	if h < e.width {
		e.radius = (e.width + h) / 4
	}
	e.height = h
}

// slot maps an attribute to the field that stores its raw value.
func (e *Entity) slot(a Attribute) *float64 {
	switch a {
	case AttrMoveSpeed:
		return &e.MoveSpeed
	case AttrTurnRate:
		return &e.TurnRate
	case AttrSpeed:
		return &e.Speed
	case AttrHealthRegen:
		return &e.HealthRegen
	case AttrPowerRegen:
		return &e.PowerRegen
	case AttrDamageModifier:
		return &e.DamageModifier
	case AttrWallWalking:
		return &e.WallWalking
	case AttrImpact:
		return &e.Impact
	default:
		return nil
	}
}

// Raw returns the stored value of a, ignoring modifiers.
func (e *Entity) Raw(a Attribute) float64 {
	if p := e.slot(a); p != nil {
		return *p
	}
	return 0
}

// Effective returns the raw value of a with its active modifier applied.
func (e *Entity) Effective(a Attribute) float64 {
	raw := e.Raw(a)
	if a < 0 || a >= attributeCount {
		return raw
	}
	if m := e.mods[a]; m.active {
		return m.mod.Apply(raw)
	}
	return raw
}

// ApplyDamage subtracts amount scaled by the effective damage modifier.
// A negative modifier turns damage into healing.
func (e *Entity) ApplyDamage(amount float64) {
	e.Health -= amount * e.Effective(AttrDamageModifier)
}

// Dead reports whether health has run out.
func (e *Entity) Dead() bool {
	return e.Health <= 0
}

// InstallModifier puts mod on attribute a, replacing whatever was there.
// A duration of 0 makes it permanent. A nil tint clears any overlay.
func (e *Entity) InstallModifier(a Attribute, mod Modifier, duration int, tint *Tint) {
	if a < 0 || a >= attributeCount {
		return
	}
	slot := activeModifier{
		mod:       mod,
		remaining: duration,
		timed:     duration > 0,
		active:    true,
	}
	if tint != nil {
		slot.tint, slot.hasTint = *tint, true
	}
	e.mods[a] = slot
}

// RemoveModifier clears attribute a's modifier and overlay.
func (e *Entity) RemoveModifier(a Attribute) {
	if a < 0 || a >= attributeCount {
		return
	}
	e.mods[a] = activeModifier{}
}

// ModifierOn returns the modifier active on a and its remaining ticks.
// Remaining is 0 for permanent modifiers.
func (e *Entity) ModifierOn(a Attribute) (mod Modifier, remaining int, ok bool) {
	if a < 0 || a >= attributeCount || !e.mods[a].active {
		return Modifier{}, 0, false
	}
	m := e.mods[a]
	return m.mod, m.remaining, true
}

// ActiveModifiers returns the attributes that currently carry a modifier.
func (e *Entity) ActiveModifiers() []Attribute {
	var out []Attribute
	for a := range e.mods {
		if e.mods[a].active {
			out = append(out, Attribute(a))
		}
	}
	return out
}

// TickModifiers advances every timed modifier by ticks and removes those that
// reach zero. A modifier and its overlay disappear together.
func (e *Entity) TickModifiers(ticks int) (expired []Attribute) {
	for a := range e.mods {
		m := &e.mods[a]
		if !m.active || !m.timed {
			continue
		}
		m.remaining -= ticks
		if m.remaining <= 0 {
			*m = activeModifier{}
			expired = append(expired, Attribute(a))
		}
	}
	return expired
}

// Regenerate adds one tick's worth of health and power regeneration and
// clamps both to their maximums.
func (e *Entity) Regenerate(tickRate int) {
	rate := float64(tickRate)
	e.Health += e.Effective(AttrHealthRegen) / rate
	if e.Health > e.MaxHealth {
		e.Health = e.MaxHealth
	}
	e.Power += e.Effective(AttrPowerRegen) / rate
	if e.Power > e.MaxPower {
		e.Power = e.MaxPower
	}
}

// HealthFraction returns health/max_health, or 0 without a maximum.
func (e *Entity) HealthFraction() float64 {
	if e.MaxHealth <= 0 {
		return 0
	}
	return e.Health / e.MaxHealth
}

// PowerFraction returns power/max_power, or 0 without a maximum.
func (e *Entity) PowerFraction() float64 {
	if e.MaxPower <= 0 {
		return 0
	}
	return e.Power / e.MaxPower
}

// Collides reports whether the two entities' circles touch or overlap.
func (e *Entity) Collides(o *Entity) bool {
	return core.CirclesCollide(e.Pos, e.radius, o.Pos, o.radius)
}
