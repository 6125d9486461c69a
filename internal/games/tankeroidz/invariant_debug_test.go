//go:build tankdebug

package tankeroidz

import "testing"

func TestInvariantViolationPanics(t *testing.T) {
	r := newTestRound(t, nil)
	stray := &Bullet{Entity: newEntity(6)}
	e := addEnemy(r, 300, 200, 5)

	defer func() {
		if recover() == nil {
			t.Error("expected a panic under tankdebug")
		}
	}()
	r.resolveBulletHit(stray, e)
}
