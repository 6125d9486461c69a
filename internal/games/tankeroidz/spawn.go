package tankeroidz

import "github.com/vovakirdan/tankeroidz/internal/core"

// spawnSystem counts down to the next enemy and spawns it when the countdown
// reaches zero.
func (r *Round) spawnSystem() {
	r.spawnCountdown--
	if r.spawnCountdown > 0 {
		return
	}
	r.spawnEnemy()
	r.spawnCountdown = r.set.spawnInterval
}

// spawnEnemy places an enemy on a random field edge, aimed at the tank.
// Smaller enemies move faster and every enemy hits as hard as it is wide.
func (r *Round) spawnEnemy() *Enemy {
	f := r.set.field
	ec := r.set.enemy

	e := &Enemy{Entity: newEntity(1)}
	if r.rng.Intn(2) == 0 {
		// Left or right edge
		e.Pos.X = f.W * float64(r.rng.Intn(2))
		e.Pos.Y = float64(r.rng.Between(0, int(f.H)))
	} else {
		// Top or bottom edge
		e.Pos.X = float64(r.rng.Between(0, int(f.W)))
		e.Pos.Y = f.H * float64(r.rng.Intn(2))
	}

	radius := r.rng.Between(ec.MinRadius, ec.MaxRadius)
	e.SetRadius(float64(radius))
	e.MoveSpeed = (ec.MaxSpeed + float64(ec.MinRadius) - float64(radius)) * r.set.profile.EnemySpeedPct / 100
	e.Impact = float64(radius)
	e.Rot = core.AimDegrees(e.Pos, r.reg.Tank.Pos)

	r.reg.Enemies.Add(e)
	r.log.Debug("enemy spawned", "tick", r.tick, "radius", radius, "speed", e.MoveSpeed)
	return e
}
