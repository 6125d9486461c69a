package tankeroidz

import (
	"github.com/vovakirdan/tankeroidz/internal/config"
	"github.com/vovakirdan/tankeroidz/internal/core"
)

// Tank is the player's entity.
type Tank struct {
	Entity

	Dir      int  // Turn intent: -1 left, 0 none, 1 right
	Firing   bool // Fire key is held
	Boosting bool // Boost key is held

	GunLength float64
	Gun       core.Vec2 // Gun tip, recomputed every movement step

	// Fire cooldown. lastShot is a run tick; hasShot is false until the first bullet.
	cooldownTicks float64
	lastShot      int
	hasShot       bool

	BaseTint Tint
}

func newTank(tc config.TankConfig, profile config.DifficultyProfile, tickRate int) *Tank {
	t := &Tank{Entity: newEntity(tc.Radius)}
	t.Pos = core.Vec2{X: tc.X, Y: tc.Y}
	t.MoveSpeed = profile.TankSpeed
	t.TurnRate = profile.TankTurnRate
	if profile.WallWalking {
		t.WallWalking = 1
	}
	t.MaxHealth, t.Health, t.HealthRegen = tc.MaxHealth, tc.MaxHealth, tc.HealthRegen
	t.MaxPower, t.Power, t.PowerRegen = tc.MaxPower, tc.MaxPower, tc.PowerRegen
	t.DamageModifier = tc.DamageModifier
	t.GunLength = t.Height()/2 + tc.GunOverhang
	t.cooldownTicks = tc.FireCooldown * float64(tickRate)
	if len(tc.Color) == 3 {
		t.BaseTint = Tint{R: uint8(tc.Color[0]), G: uint8(tc.Color[1]), B: uint8(tc.Color[2])} //#nosec G115 -- validated to 0..255
	}
	t.updateGun()
	return t
}

// updateGun recomputes the gun tip from position and rotation.
func (t *Tank) updateGun() {
	t.Gun = t.Pos.Add(core.Heading(t.Rot).Scale(t.GunLength))
}

// canFire reports whether a shot is allowed on run tick tick.
func (t *Tank) canFire(tick int) bool {
	if !t.Firing {
		return false
	}
	return !t.hasShot || float64(tick-t.lastShot) > t.cooldownTicks
}

func (t *Tank) markShot(tick int) {
	t.lastShot = tick
	t.hasShot = true
}

// ClearIntents drops every latched input.
func (t *Tank) ClearIntents() {
	t.Speed = 0
	t.Dir = 0
	t.Firing = false
	t.Boosting = false
}

// InWallWalk reports whether the wrap boundary policy is in effect.
func (t *Tank) InWallWalk() bool {
	return t.Effective(AttrWallWalking) != 0
}

// ApplyPowerUp installs the power-up's modifier and overlay on the tank.
func (t *Tank) ApplyPowerUp(p *PowerUp) {
	t.InstallModifier(p.Kind.Attribute, p.Kind.Modifier, p.Kind.Duration, p.Kind.Tint)
}

// Tint is the base color multiplied by every active overlay.
func (t *Tank) Tint() Tint {
	out := t.BaseTint
	for a := range t.mods {
		if m := t.mods[a]; m.active && m.hasTint {
			out = out.Multiply(m.tint)
		}
	}
	return out
}

// Enemy drifts toward where the tank was when it spawned.
type Enemy struct {
	Entity
}

// Bullet is a projectile fired from the tank's gun.
type Bullet struct {
	Entity
}

func newBullet(bc config.BulletConfig, at core.Vec2, rot float64) *Bullet {
	b := &Bullet{Entity: newEntity(bc.Radius)}
	b.Pos = at
	b.Rot = rot
	b.MoveSpeed = bc.MoveSpeed
	b.Impact = bc.Impact
	return b
}

// PowerUp is a pickup dropped by a destroyed enemy.
type PowerUp struct {
	Entity
	Kind *PowerUpKind
}

// powerUpRadius is the pickup's collision radius.
const powerUpRadius = 4

func newPowerUp(kind *PowerUpKind, at core.Vec2) *PowerUp {
	p := &PowerUp{Entity: newEntity(powerUpRadius), Kind: kind}
	p.Pos = at
	return p
}
