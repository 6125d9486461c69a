package tankeroidz

import "github.com/vovakirdan/tankeroidz/internal/core"

// movementSystem turns and drives the tank, applies the boundary policy and
// moves bullets and enemies along their headings. Bullets and enemies are not
// bounded here; collisionSystem removes them once they leave the field.
func (r *Round) movementSystem() {
	t := r.reg.Tank
	f := r.set.field

	boost := 1.0
	if t.Boosting {
		boost = r.set.profile.TankBoostPct / 100
	}
	step := t.Effective(AttrSpeed) * t.Effective(AttrMoveSpeed) * boost
	t.Rot -= float64(t.Dir) * t.Effective(AttrTurnRate)

	next := t.Pos.Add(core.Heading(t.Rot).Scale(step))
	if t.InWallWalk() {
		next.X = core.Wrap(next.X, f.W)
		next.Y = core.Wrap(next.Y, f.H)
	} else {
		// Blocked, not clipped: the axis keeps its pre-move value.
		if next.X < 0 || next.X > f.W {
			next.X = t.Pos.X
		}
		if next.Y < 0 || next.Y > f.H {
			next.Y = t.Pos.Y
		}
	}
	t.Pos = next
	t.updateGun()

	for _, b := range r.reg.Bullets.Live() {
		advance(&b.Entity)
	}
	for _, e := range r.reg.Enemies.Live() {
		advance(&e.Entity)
	}
}

// advance moves e one tick along its heading.
func advance(e *Entity) {
	e.Pos = e.Pos.Add(core.Heading(e.Rot).Scale(e.Effective(AttrMoveSpeed)))
}
