package tankeroidz

// statusSystem checks for the tank's death, sweeps dead entities, drains
// boost power, regenerates and ages modifiers, in that order. Death is checked
// before regeneration so a tank at zero health never heals back above it.
// It returns true when the round ended this tick.
func (r *Round) statusSystem() bool {
	t := r.reg.Tank
	if t.Dead() {
		r.end()
		r.sweepDead()
		return true
	}

	r.sweepDead()

	if t.Boosting && t.Speed != 0 {
		t.Power -= t.MaxPower * r.set.boostDrain
	}

	t.Regenerate(r.set.tickRate)

	for _, a := range t.TickModifiers(1) {
		r.log.Debug("modifier expired", "attribute", a, "tick", r.tick)
	}
	return false
}

// sweepDead removes every enemy, bullet and power-up at or below zero health.
func (r *Round) sweepDead() {
	for _, e := range r.reg.Enemies.Snapshot() {
		if e.Dead() {
			r.reg.Enemies.Remove(e)
		}
	}
	for _, b := range r.reg.Bullets.Snapshot() {
		if b.Dead() {
			r.reg.Bullets.Remove(b)
		}
	}
	for _, p := range r.reg.PowerUps.Snapshot() {
		if p.Dead() {
			r.reg.PowerUps.Remove(p)
		}
	}
	r.reg.Commit()
}

// scoringSystem awards survival points at a fixed interval of running time.
func (r *Round) scoringSystem() {
	if r.tick%r.set.survivalTicks == 0 {
		r.addScore(float64(r.set.survivalPoints))
	}
}
