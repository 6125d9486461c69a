package tankeroidz

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/tankeroidz/internal/config"
	"github.com/vovakirdan/tankeroidz/internal/core"
)

func newTestRound(t *testing.T, mutate func(*config.Config)) *Round {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	r, err := NewRound(cfg, config.DifficultyNormal, 42)
	if err != nil {
		t.Fatalf("NewRound() error = %v", err)
	}
	return r
}

func addEnemy(r *Round, x, y, radius float64) *Enemy {
	e := &Enemy{Entity: newEntity(radius)}
	e.Pos = core.Vec2{X: x, Y: y}
	e.Impact = radius
	r.reg.Enemies.Add(e)
	return e
}

func addBullet(r *Round, x, y float64) *Bullet {
	b := newBullet(config.Default().Bullet, core.Vec2{X: x, Y: y}, 0)
	r.reg.Bullets.Add(b)
	return b
}

func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Press(a)
	}
	return f
}

func release(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Release(a)
	}
	return f
}

func TestNewRoundTankDefaults(t *testing.T) {
	r := newTestRound(t, nil)
	tank := r.Tank()

	if tank.Pos != (core.Vec2{X: 150, Y: 150}) {
		t.Errorf("tank position = %v, expected (150, 150)", tank.Pos)
	}
	if tank.Radius() != 16 {
		t.Errorf("tank radius = %v, expected 16", tank.Radius())
	}
	if tank.GunLength != 22 {
		t.Errorf("GunLength = %v, expected 22", tank.GunLength)
	}
	if tank.Gun != (core.Vec2{X: 150, Y: 128}) {
		t.Errorf("gun tip = %v, expected (150, 128)", tank.Gun)
	}
	if r.State() != StateRunning {
		t.Errorf("State() = %v, expected running", r.State())
	}
}

func TestNewRoundRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		field  string
		parse  bool
	}{
		{"unparseable modifier", func(c *config.Config) { c.PowerUps[0].Modifier = "*fast" }, "powerups[0].modifier", true},
		{"unknown attribute", func(c *config.Config) { c.PowerUps[1].Attribute = "armor" }, "powerups[1].attribute", false},
		{"zero tick rate", func(c *config.Config) { c.Field.TickRate = 0 }, "field.tick_rate", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)

			_, err := NewRound(cfg, config.DifficultyNormal, 1)
			var cfgErr *config.Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("NewRound() = %v, expected *config.Error", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Error.Field = %q, expected %q", cfgErr.Field, tt.field)
			}
			if tt.parse && !errors.Is(err, ErrInvalidModifier) {
				t.Errorf("error %v should wrap ErrInvalidModifier", err)
			}
		})
	}

	if _, err := NewRound(config.Default(), "nightmare", 1); err == nil {
		t.Error("NewRound with unknown difficulty should fail")
	}
}

func TestEnemyRamsTank(t *testing.T) {
	r := newTestRound(t, nil)
	tank := r.Tank()

	// Stationary enemy 10px from the tank's center, radius 11
	e := addEnemy(r, 160, 150, 11)
	if !tank.Collides(&e.Entity) {
		t.Fatal("enemy should collide with the tank")
	}

	r.collisionSystem()

	if tank.Health != 89 {
		t.Errorf("tank health = %v, expected 89", tank.Health)
	}
	if r.reg.Enemies.Len() != 0 {
		t.Errorf("enemies = %d, expected 0", r.reg.Enemies.Len())
	}
}

func TestAbsorbTurnsHitIntoHealing(t *testing.T) {
	r := newTestRound(t, nil)
	tank := r.Tank()
	tank.Health = 50

	absorb, ok := r.Catalog().Lookup("absorb")
	if !ok {
		t.Fatal("default catalog should contain absorb")
	}
	tank.ApplyPowerUp(&PowerUp{Kind: absorb})

	addEnemy(r, 150, 150, 10)
	r.collisionSystem()

	if tank.Health != 60 {
		t.Errorf("tank health = %v, expected 60", tank.Health)
	}
}

func TestEnemiesDestroyEachOther(t *testing.T) {
	r := newTestRound(t, nil)
	addEnemy(r, 300, 250, 5)
	addEnemy(r, 305, 250, 5)

	r.collisionSystem()

	if r.reg.Enemies.Len() != 0 {
		t.Errorf("enemies = %d, expected both removed", r.reg.Enemies.Len())
	}
	if r.Score() != 0 {
		t.Errorf("score = %d, expected 0", r.Score())
	}
	if r.Tank().Health != 100 {
		t.Errorf("tank health = %v, expected untouched", r.Tank().Health)
	}
}

func TestEnemyCrashResolvedBeforeLaterRam(t *testing.T) {
	// The tank sits at (150,150) with radius 16. The second enemy touches
	// the tank, the first touches only the second.
	tests := []struct {
		name        string
		rammerFirst bool
		wantHealth  float64
		wantLeft    int
	}{
		{"crash first", false, 100, 0},
		{"ram first", true, 95, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRound(t, nil)
			if tt.rammerFirst {
				addEnemy(r, 130, 150, 5)
				addEnemy(r, 120, 150, 5)
			} else {
				addEnemy(r, 120, 150, 5)
				addEnemy(r, 130, 150, 5)
			}

			r.collisionSystem()

			if got := r.Tank().Health; got != tt.wantHealth {
				t.Errorf("tank health = %v, expected %v", got, tt.wantHealth)
			}
			if got := r.reg.Enemies.Len(); got != tt.wantLeft {
				t.Errorf("enemies = %d, expected %d", got, tt.wantLeft)
			}
		})
	}
}

func TestBulletOutsideFieldRemovedBeforeHit(t *testing.T) {
	r := newTestRound(t, nil)
	addBullet(r, r.Field().W+1, 100)
	addEnemy(r, r.Field().W-5, 100, 11)

	r.collisionSystem()

	if r.reg.Bullets.Len() != 0 {
		t.Errorf("bullets = %d, expected 0", r.reg.Bullets.Len())
	}
	if r.reg.Enemies.Len() != 1 {
		t.Errorf("enemies = %d, expected the enemy to survive", r.reg.Enemies.Len())
	}
	if r.Score() != 0 {
		t.Errorf("score = %d, expected 0", r.Score())
	}
}

func TestBulletOnFieldEdgeStillHits(t *testing.T) {
	r := newTestRound(t, nil)
	addBullet(r, r.Field().W, 100)
	addEnemy(r, r.Field().W-5, 100, 11)

	r.collisionSystem()

	if r.reg.Bullets.Len() != 0 || r.reg.Enemies.Len() != 0 {
		t.Errorf("bullets=%d enemies=%d, expected hit on the inclusive edge", r.reg.Bullets.Len(), r.reg.Enemies.Len())
	}
}

func TestBulletHitsFirstEnemyOnly(t *testing.T) {
	r := newTestRound(t, nil)
	addBullet(r, 300, 100)
	first := addEnemy(r, 305, 100, 5)
	first.MoveSpeed = 3
	second := addEnemy(r, 292, 100, 5)

	r.collisionSystem()

	if r.reg.Enemies.Contains(first) {
		t.Error("first enemy in creation order should be destroyed")
	}
	if !r.reg.Enemies.Contains(second) {
		t.Error("second enemy should survive")
	}
	if r.Score() != 6 {
		t.Errorf("score = %d, expected move_speed*2 = 6", r.Score())
	}
}

func TestEnemyOnFieldEdgeRemoved(t *testing.T) {
	r := newTestRound(t, nil)
	addEnemy(r, 0, 100, 5)
	addEnemy(r, 200, r.Field().H, 5)
	inside := addEnemy(r, 400, 20, 5)

	r.collisionSystem()

	if r.reg.Enemies.Len() != 1 || !r.reg.Enemies.Contains(inside) {
		t.Errorf("enemies = %d, expected only the inside enemy left", r.reg.Enemies.Len())
	}
}

func TestPowerUpDropAndPickup(t *testing.T) {
	r := newTestRound(t, func(c *config.Config) {
		p := c.Difficulties["normal"]
		p.PowerUpChance = 100
		c.Difficulties["normal"] = p
	})

	addBullet(r, 300, 100)
	e := addEnemy(r, 300, 100, 5)
	r.collisionSystem()

	if r.reg.PowerUps.Len() != 1 {
		t.Fatalf("power-ups = %d, expected a guaranteed drop", r.reg.PowerUps.Len())
	}
	drop := r.reg.PowerUps.Live()[0]
	if drop.Pos != e.Pos {
		t.Errorf("drop position = %v, expected enemy position %v", drop.Pos, e.Pos)
	}

	// Move the drop under the tank and pick it up
	tank := r.Tank()
	drop.Pos = tank.Pos
	r.collisionSystem()

	if !drop.Dead() {
		t.Error("collected power-up should be marked dead")
	}
	if _, _, ok := tank.ModifierOn(drop.Kind.Attribute); !ok {
		t.Errorf("tank should carry a modifier on %v", drop.Kind.Attribute)
	}

	r.statusSystem()
	if r.reg.PowerUps.Len() != 0 {
		t.Errorf("power-ups = %d, expected the collected one swept", r.reg.PowerUps.Len())
	}
}

func TestNoDropAtZeroChance(t *testing.T) {
	r := newTestRound(t, func(c *config.Config) {
		p := c.Difficulties["normal"]
		p.PowerUpChance = 0
		c.Difficulties["normal"] = p
	})
	before := r.rng.State()

	addBullet(r, 300, 100)
	addEnemy(r, 300, 100, 5)
	r.collisionSystem()

	if r.reg.PowerUps.Len() != 0 {
		t.Errorf("power-ups = %d, expected none", r.reg.PowerUps.Len())
	}
	if r.rng.State() != before {
		t.Error("a zero drop chance should not consume randomness")
	}
}

func TestSpeedBoostPickupScalesMovement(t *testing.T) {
	r := newTestRound(t, nil)
	tank := r.Tank()
	kind, _ := r.Catalog().Lookup("speedboost")
	r.reg.PowerUps.Add(newPowerUp(kind, tank.Pos))

	r.collisionSystem()
	r.statusSystem()

	if got := tank.Effective(AttrMoveSpeed); got != 6 {
		t.Errorf("Effective(move_speed) = %v, expected 6", got)
	}
	if _, remaining, _ := tank.ModifierOn(AttrMoveSpeed); remaining != 299 {
		t.Errorf("remaining = %d, expected 299 after one status step", remaining)
	}
	if tank.Tint() == tank.BaseTint {
		t.Error("speedboost should tint the tank")
	}
}

func TestWallWalkingWraps(t *testing.T) {
	tests := []struct {
		name  string
		x     float64
		rot   float64
		wantX float64
	}{
		{"exit right enters at 0", 479, -90, 0},
		{"exit left enters at width", 1, 90, 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRound(t, nil)
			tank := r.Tank()
			tank.WallWalking = 1
			tank.Pos = core.Vec2{X: tt.x, Y: 100}
			tank.Rot = tt.rot
			tank.Speed = 1

			r.movementSystem()

			if tank.Pos.X != tt.wantX {
				t.Errorf("X = %v, expected %v", tank.Pos.X, tt.wantX)
			}
		})
	}
}

func TestWallWalkingFromPowerUp(t *testing.T) {
	r := newTestRound(t, nil)
	tank := r.Tank()
	kind, _ := r.Catalog().Lookup("wallwalking")
	tank.ApplyPowerUp(&PowerUp{Kind: kind})
	tank.Pos = core.Vec2{X: 150, Y: 2}
	tank.Speed = 1

	r.movementSystem()

	if tank.Pos.Y != r.Field().H {
		t.Errorf("Y = %v, expected wrap to %v", tank.Pos.Y, r.Field().H)
	}
}

func TestWallsBlockWithoutWallWalking(t *testing.T) {
	r := newTestRound(t, nil)
	tank := r.Tank()
	tank.Pos = core.Vec2{X: 479, Y: 100}
	tank.Rot = -90
	tank.Speed = 1

	r.movementSystem()

	if tank.Pos.X != 479 {
		t.Errorf("X = %v, expected motion blocked at 479", tank.Pos.X)
	}
	if math.Abs(tank.Pos.Y-100) > 1e-9 {
		t.Errorf("Y = %v, expected 100", tank.Pos.Y)
	}
}

func TestTankTurnsAndDrives(t *testing.T) {
	r := newTestRound(t, nil)
	tank := r.Tank()

	tank.Dir = 1
	r.movementSystem()
	if tank.Rot != -5 {
		t.Errorf("Rot = %v, expected -5 (clockwise)", tank.Rot)
	}

	tank.Dir = 0
	tank.Rot = 0
	tank.Speed = 1
	r.movementSystem()
	if math.Abs(tank.Pos.Y-146) > 1e-9 || math.Abs(tank.Pos.X-150) > 1e-9 {
		t.Errorf("Pos = %v, expected (150, 146)", tank.Pos)
	}
	if math.Abs(tank.Gun.Y-124) > 1e-9 {
		t.Errorf("Gun.Y = %v, expected 124", tank.Gun.Y)
	}

	tank.Boosting = true
	r.movementSystem()
	if math.Abs(tank.Pos.Y-(146-4*1.75)) > 1e-9 {
		t.Errorf("boosted Y = %v, expected %v", tank.Pos.Y, 146-4*1.75)
	}
}

func TestBoostDrainsPower(t *testing.T) {
	r := newTestRound(t, nil)
	tank := r.Tank()
	tank.Boosting = true
	tank.Speed = 1

	r.statusSystem()

	want := 100 - 2 + 10.0/30
	if math.Abs(tank.Power-want) > 1e-9 {
		t.Errorf("Power = %v, expected %v", tank.Power, want)
	}

	// Boosting while standing still costs nothing
	tank.Power = 50
	tank.Speed = 0
	r.statusSystem()
	if math.Abs(tank.Power-(50+10.0/30)) > 1e-9 {
		t.Errorf("Power = %v, expected regen only", tank.Power)
	}
}

func TestFireCooldown(t *testing.T) {
	r := newTestRound(t, nil)

	r.HandleInput(press(core.ActionFire))
	r.Tick()
	if r.reg.Bullets.Len() != 1 {
		t.Fatalf("bullets after tick 1 = %d, expected 1", r.reg.Bullets.Len())
	}

	// 0.333s at 30 ticks/s is 9.99 ticks, so the next shot is on tick 11
	for tick := 2; tick <= 10; tick++ {
		r.Tick()
		if r.reg.Bullets.Len() != 1 {
			t.Fatalf("bullets after tick %d = %d, expected 1", tick, r.reg.Bullets.Len())
		}
	}
	r.Tick()
	if r.reg.Bullets.Len() != 2 {
		t.Errorf("bullets after tick 11 = %d, expected 2", r.reg.Bullets.Len())
	}

	r.HandleInput(release(core.ActionFire))
	for range 20 {
		r.Tick()
	}
	if n := r.reg.Bullets.Len(); n != 0 {
		t.Errorf("bullets = %d, expected all to have left the field", n)
	}
}

func TestBulletSpawnsAtGunTip(t *testing.T) {
	r := newTestRound(t, nil)
	r.HandleInput(press(core.ActionFire))
	r.fireSystem()

	b := r.reg.Bullets.Live()[0]
	if b.Pos != r.Tank().Gun || b.Rot != r.Tank().Rot {
		t.Errorf("bullet at %v rot %v, expected gun tip %v rot %v", b.Pos, b.Rot, r.Tank().Gun, r.Tank().Rot)
	}
	if b.Radius() != 6 || b.Impact != 10 || b.MoveSpeed != 10 {
		t.Errorf("bullet stats r=%v impact=%v speed=%v, expected 6/10/10", b.Radius(), b.Impact, b.MoveSpeed)
	}
}

func TestSpawnCadence(t *testing.T) {
	r := newTestRound(t, nil)

	for range 89 {
		r.Tick()
	}
	if r.reg.Enemies.Len() != 0 {
		t.Fatalf("enemies after 89 ticks = %d, expected 0", r.reg.Enemies.Len())
	}

	r.Tick()
	if r.reg.Enemies.Len() != 1 {
		t.Fatalf("enemies after 90 ticks = %d, expected 1", r.reg.Enemies.Len())
	}
	if r.spawnCountdown != 22.5 {
		t.Errorf("spawnCountdown = %v, expected 22.5", r.spawnCountdown)
	}

	e := r.reg.Enemies.Live()[0]
	f := r.Field()
	if e.Pos.X != 0 && e.Pos.X != f.W && e.Pos.Y != 0 && e.Pos.Y != f.H {
		t.Errorf("enemy at %v, expected on a field edge", e.Pos)
	}
	radius := e.Radius()
	if radius < 4 || radius > 11 {
		t.Errorf("radius = %v, expected 4..11", radius)
	}
	if e.MoveSpeed != 12-radius {
		t.Errorf("move_speed = %v, expected %v", e.MoveSpeed, 12-radius)
	}
	if e.Impact != radius {
		t.Errorf("impact = %v, expected radius %v", e.Impact, radius)
	}

	// Heading points at the tank
	toTank := r.Tank().Pos.Sub(e.Pos)
	h := core.Heading(e.Rot)
	cos := (h.X*toTank.X + h.Y*toTank.Y) / toTank.Len()
	if cos < 0.9999 {
		t.Errorf("enemy heading is off target (cos = %v)", cos)
	}
}

func TestEnemySpeedScalesWithDifficulty(t *testing.T) {
	cfg := config.Default()
	r, err := NewRound(cfg, config.DifficultyHard, 3)
	if err != nil {
		t.Fatal(err)
	}
	e := r.spawnEnemy()
	want := (8 + 4 - e.Radius()) * 1.3
	if math.Abs(e.MoveSpeed-want) > 1e-9 {
		t.Errorf("move_speed = %v, expected %v", e.MoveSpeed, want)
	}
}

func TestSurvivalScoring(t *testing.T) {
	r := newTestRound(t, nil)

	for range 89 {
		r.Tick()
	}
	if r.Score() != 0 {
		t.Errorf("score after 89 ticks = %d, expected 0", r.Score())
	}
	r.Tick()
	if r.Score() != 10 {
		t.Errorf("score after 90 ticks = %d, expected 10", r.Score())
	}
}

func TestDeathEndsRoundBeforeRegen(t *testing.T) {
	r := newTestRound(t, nil)
	tank := r.Tank()
	tank.Health = 1
	addEnemy(r, 150, 150, 5)

	if ended := r.Tick(); !ended {
		t.Fatal("Tick() should report the round ended")
	}
	if r.State() != StateEnded {
		t.Errorf("State() = %v, expected ended", r.State())
	}
	if tank.Health != -4 {
		t.Errorf("tank health = %v, expected -4 with no regeneration", tank.Health)
	}

	res, ok := r.Result()
	if !ok {
		t.Fatal("Result() should be available once ended")
	}
	if res.Ticks != 1 || res.Difficulty != "normal" || res.Seed != 42 {
		t.Errorf("Result() = %+v", res)
	}

	// Ended is terminal
	if r.Tick() {
		t.Error("Tick() after end should do nothing")
	}
	if r.Ticks() != 1 {
		t.Errorf("Ticks() = %d, expected 1", r.Ticks())
	}
	r.HandleInput(press(core.ActionPause))
	if r.State() != StateEnded {
		t.Errorf("State() = %v, expected to stay ended", r.State())
	}
}

func TestPauseSuspendsAndClearsIntents(t *testing.T) {
	r := newTestRound(t, nil)
	tank := r.Tank()

	r.HandleInput(press(core.ActionForward, core.ActionTurnLeft, core.ActionFire, core.ActionBoost))
	r.Tick()
	if tank.Speed != 1 || tank.Dir != -1 || !tank.Firing || !tank.Boosting {
		t.Fatalf("intents not latched: speed=%v dir=%v fire=%v boost=%v", tank.Speed, tank.Dir, tank.Firing, tank.Boosting)
	}

	r.HandleInput(press(core.ActionPause))
	if r.State() != StatePaused {
		t.Fatalf("State() = %v, expected paused", r.State())
	}
	pos, ticks := tank.Pos, r.Ticks()
	for range 10 {
		r.HandleInput(press(core.ActionForward))
		r.Tick()
	}
	if tank.Pos != pos || r.Ticks() != ticks {
		t.Error("nothing should move while paused")
	}

	r.HandleInput(press(core.ActionPause))
	if r.State() != StateRunning {
		t.Fatalf("State() = %v, expected running", r.State())
	}
	if tank.Speed != 0 || tank.Dir != 0 || tank.Firing || tank.Boosting {
		t.Error("resuming should clear latched intents")
	}
}

func TestInputLatchesUntilRelease(t *testing.T) {
	r := newTestRound(t, nil)
	tank := r.Tank()

	r.HandleInput(press(core.ActionReverse, core.ActionTurnRight))
	r.HandleInput(core.NewInputFrame())
	if tank.Speed != -1 || tank.Dir != 1 {
		t.Errorf("speed=%v dir=%v, expected latched -1/1", tank.Speed, tank.Dir)
	}

	r.HandleInput(release(core.ActionReverse, core.ActionTurnRight))
	if tank.Speed != 0 || tank.Dir != 0 {
		t.Errorf("speed=%v dir=%v, expected cleared on release", tank.Speed, tank.Dir)
	}

	// Press and release in the same frame leaves the key held
	f := press(core.ActionFire)
	f.Release(core.ActionFire)
	r.HandleInput(f)
	if !tank.Firing {
		t.Error("a tap within one frame should latch fire")
	}
}

func TestAgeCountsRunningTicks(t *testing.T) {
	r := newTestRound(t, nil)
	e := addEnemy(r, 400, 250, 4)

	for range 5 {
		r.Tick()
	}
	if r.Tank().Age != 5 || e.Age != 5 {
		t.Errorf("ages tank=%d enemy=%d, expected 5", r.Tank().Age, e.Age)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	play := func(seed int64) Snapshot {
		r, err := NewRound(config.Default(), config.DifficultyHard, seed)
		if err != nil {
			t.Fatal(err)
		}
		for tick := range 900 {
			switch tick {
			case 0:
				r.HandleInput(press(core.ActionFire, core.ActionForward))
			case 40:
				r.HandleInput(press(core.ActionTurnLeft))
			case 90:
				r.HandleInput(release(core.ActionTurnLeft))
			case 300:
				r.HandleInput(press(core.ActionBoost, core.ActionTurnRight))
			case 360:
				r.HandleInput(release(core.ActionBoost, core.ActionTurnRight))
			}
			if r.Tick() {
				break
			}
		}
		return r.Snapshot()
	}

	a, b := play(1234), play(1234)
	if a.Hash() != b.Hash() {
		t.Errorf("same seed produced different hashes: %d vs %d", a.Hash(), b.Hash())
	}
	if a.Score != b.Score || a.Tick != b.Tick {
		t.Errorf("same seed diverged: score %v/%v tick %d/%d", a.Score, b.Score, a.Tick, b.Tick)
	}

	c := play(4321)
	if a.Hash() == c.Hash() {
		t.Error("different seeds should not produce identical runs")
	}
}
