package tankeroidz

// ageSystem counts one more tick of life for everything on the field.
func (r *Round) ageSystem() {
	r.reg.Tank.Age++
	for _, e := range r.reg.Enemies.Live() {
		e.Age++
	}
	for _, b := range r.reg.Bullets.Live() {
		b.Age++
	}
	for _, p := range r.reg.PowerUps.Live() {
		p.Age++
	}
}

// fireSystem spawns a bullet at the gun tip while the fire key is held and
// the cooldown has elapsed.
func (r *Round) fireSystem() {
	t := r.reg.Tank
	if !t.canFire(r.tick) {
		return
	}
	b := newBullet(r.set.bullet, t.Gun, t.Rot)
	if !r.invariant(r.reg.Bullets.Add(b), "bullet added twice") {
		return
	}
	t.markShot(r.tick)
}
