package tankeroidz

import "github.com/vovakirdan/tankeroidz/internal/core"

// collisionSystem resolves every pairwise interaction for the tick.
//
// Each pass walks a snapshot taken before it starts and skips anything
// already marked for removal, so an entity that died earlier in the pass
// takes no part in later checks. When several pairings are possible the
// first one in snapshot order wins. Removals are committed at the end.
func (r *Round) collisionSystem() {
	r.collideBullets()
	r.collideEnemies()
	r.collidePowerUps()
	r.reg.Commit()
}

// collideBullets removes bullets that left the field (inclusive bounds) and
// resolves at most one enemy hit per remaining bullet.
func (r *Round) collideBullets() {
	enemies := r.reg.Enemies.Snapshot()
	for _, b := range r.reg.Bullets.Snapshot() {
		if r.reg.Bullets.Removed(b) {
			continue
		}
		if !r.set.field.ContainsInclusive(b.Pos) {
			r.reg.Bullets.Remove(b)
			continue
		}
		for _, e := range enemies {
			if r.reg.Enemies.Removed(e) {
				continue
			}
			if b.Collides(&e.Entity) {
				r.resolveBulletHit(b, e)
				break
			}
		}
	}
}

func (r *Round) resolveBulletHit(b *Bullet, e *Enemy) {
	if !r.invariant(r.reg.Bullets.Contains(b) && r.reg.Enemies.Contains(e),
		"bullet hit resolved against an entity removed this tick") {
		return
	}
	r.dropPowerUp(e.Pos)
	r.addScore(e.Effective(AttrMoveSpeed) * r.set.killMultiplier)
	r.reg.Enemies.Remove(e)
	r.reg.Bullets.Remove(b)
}

// dropPowerUp rolls the difficulty's drop chance and, on success, places a
// random catalog power-up at pos.
func (r *Round) dropPowerUp(pos core.Vec2) {
	chance := r.set.profile.PowerUpChance
	if chance <= 0 || r.set.catalog.Len() == 0 {
		return
	}
	if r.rng.Intn(100) >= chance {
		return
	}
	kind := r.set.catalog.Choose(r.rng)
	r.reg.PowerUps.Add(newPowerUp(kind, pos))
	r.log.Debug("power-up dropped", "name", kind.Name, "x", pos.X, "y", pos.Y)
}

// collideEnemies handles, per enemy in order: leaving the field (exclusive
// bounds), ramming the tank, and mutual destruction with another enemy.
func (r *Round) collideEnemies() {
	tank := r.reg.Tank
	enemies := r.reg.Enemies.Snapshot()
	for _, e := range enemies {
		if r.reg.Enemies.Removed(e) {
			continue
		}
		if !r.set.field.ContainsExclusive(e.Pos) {
			r.reg.Enemies.Remove(e)
			continue
		}
		if e.Collides(&tank.Entity) {
			tank.ApplyDamage(e.Effective(AttrImpact))
			r.reg.Enemies.Remove(e)
			continue
		}
		for _, other := range enemies {
			if other == e || r.reg.Enemies.Removed(other) {
				continue
			}
			if e.Collides(&other.Entity) {
				r.resolveEnemyCrash(e, other)
				break
			}
		}
	}
}

func (r *Round) resolveEnemyCrash(a, b *Enemy) {
	if !r.invariant(r.reg.Enemies.Contains(a) && r.reg.Enemies.Contains(b),
		"enemy crash resolved against an enemy removed this tick") {
		return
	}
	r.reg.Enemies.Remove(a)
	r.reg.Enemies.Remove(b)
}

// collidePowerUps applies power-ups the tank drives over. A collected
// power-up is marked dead and swept by statusSystem.
func (r *Round) collidePowerUps() {
	tank := r.reg.Tank
	for _, p := range r.reg.PowerUps.Snapshot() {
		if r.reg.PowerUps.Removed(p) || p.Dead() {
			continue
		}
		if p.Collides(&tank.Entity) {
			tank.ApplyPowerUp(p)
			p.Health = 0
			r.log.Debug("power-up collected", "name", p.Kind.Name, "attribute", p.Kind.Attribute)
		}
	}
}
