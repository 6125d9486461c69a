package tankeroidz

// Registry owns every live entity in a round. Each entity belongs to exactly
// one collection.
type Registry struct {
	Tank     *Tank
	Enemies  Collection[Enemy]
	Bullets  Collection[Bullet]
	PowerUps Collection[PowerUp]
}

// Commit applies pending removals in every collection and returns the total.
func (r *Registry) Commit() int {
	return r.Enemies.Commit() + r.Bullets.Commit() + r.PowerUps.Commit()
}

// Pending returns the number of removals not yet committed.
func (r *Registry) Pending() int {
	return r.Enemies.Pending() + r.Bullets.Pending() + r.PowerUps.Pending()
}

// Counts returns the live enemy, bullet and power-up counts.
func (r *Registry) Counts() (enemies, bullets, powerUps int) {
	return r.Enemies.Len(), r.Bullets.Len(), r.PowerUps.Len()
}
