package tankeroidz

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(12345), NewRNG(12345)
	for i := range 1000 {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("draw %d: %d != %d", i, x, y)
		}
	}
}

func TestRNGZeroSeed(t *testing.T) {
	if NewRNG(0).Next() != NewRNG(1).Next() {
		t.Error("seed 0 should behave like seed 1")
	}
}

func TestRNGRanges(t *testing.T) {
	rng := NewRNG(7)
	seen := map[int]bool{}
	for range 5000 {
		v := rng.Between(4, 11)
		if v < 4 || v > 11 {
			t.Fatalf("Between(4, 11) = %d, out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Errorf("Between(4, 11) produced %d distinct values, expected 8", len(seen))
	}

	if got := rng.Intn(0); got != 0 {
		t.Errorf("Intn(0) = %d, expected 0", got)
	}
	if got := rng.Between(5, 5); got != 5 {
		t.Errorf("Between(5, 5) = %d, expected 5", got)
	}
}

func TestRandomSeed(t *testing.T) {
	seed, err := RandomSeed()
	if err != nil {
		t.Fatalf("RandomSeed() error = %v", err)
	}
	if seed <= 0 {
		t.Errorf("RandomSeed() = %d, expected positive", seed)
	}
}
