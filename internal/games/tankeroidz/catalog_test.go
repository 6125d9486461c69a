package tankeroidz

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tankeroidz/internal/config"
)

func TestCompileDefaultCatalog(t *testing.T) {
	c, err := CompileCatalog(config.Default().PowerUps)
	if err != nil {
		t.Fatalf("CompileCatalog() error = %v", err)
	}
	if c.Len() != 5 {
		t.Errorf("Len() = %d, expected 5", c.Len())
	}

	tests := []struct {
		name     string
		attr     Attribute
		duration int
		glyph    rune
		tinted   bool
	}{
		{"speedboost", AttrMoveSpeed, 300, 'S', true},
		{"healthpack", AttrHealthRegen, 90, 'H', false},
		{"energypack", AttrPowerRegen, 90, 'E', false},
		{"absorb", AttrDamageModifier, 90, 'A', true},
		{"wallwalking", AttrWallWalking, 300, 'W', true},
	}
	for _, tt := range tests {
		k, ok := c.Lookup(tt.name)
		if !ok {
			t.Errorf("Lookup(%q) missing", tt.name)
			continue
		}
		if k.Attribute != tt.attr || k.Duration != tt.duration {
			t.Errorf("%s = %v/%d, expected %v/%d", tt.name, k.Attribute, k.Duration, tt.attr, tt.duration)
		}
		if k.Glyph() != tt.glyph {
			t.Errorf("%s Glyph() = %q, expected %q", tt.name, k.Glyph(), tt.glyph)
		}
		if (k.Tint != nil) != tt.tinted {
			t.Errorf("%s tinted = %v, expected %v", tt.name, k.Tint != nil, tt.tinted)
		}
		if k.Weight != 1 {
			t.Errorf("%s Weight = %d, expected default 1", tt.name, k.Weight)
		}
	}

	if _, ok := c.Lookup("shield"); ok {
		t.Error("Lookup(shield) should fail")
	}
}

func TestCompileCatalogErrors(t *testing.T) {
	base := config.PowerUpSpec{Name: "x", Attribute: "move_speed", Modifier: "*2", Duration: 10}
	tests := []struct {
		name  string
		edit  func(*config.PowerUpSpec)
		field string
	}{
		{"attribute", func(s *config.PowerUpSpec) { s.Attribute = "luck" }, "powerups[0].attribute"},
		{"modifier", func(s *config.PowerUpSpec) { s.Modifier = "%2" }, "powerups[0].modifier"},
		{"duration", func(s *config.PowerUpSpec) { s.Duration = -1 }, "powerups[0].duration"},
		{"tint", func(s *config.PowerUpSpec) { s.Tint = []int{1, 2} }, "powerups[0].tint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := base
			tt.edit(&spec)
			_, err := CompileCatalog([]config.PowerUpSpec{spec})

			var cfgErr *config.Error
			if !errors.As(err, &cfgErr) {
				t.Fatalf("CompileCatalog() = %v, expected *config.Error", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, expected %q", cfgErr.Field, tt.field)
			}
		})
	}
}

func TestCatalogChooseFollowsWeights(t *testing.T) {
	c, err := CompileCatalog([]config.PowerUpSpec{
		{Name: "rare", Attribute: "move_speed", Modifier: "*2", Weight: 1},
		{Name: "common", Attribute: "power_regen", Modifier: "+5", Weight: 9},
	})
	if err != nil {
		t.Fatal(err)
	}

	rng := NewRNG(11)
	counts := map[string]int{}
	for range 10000 {
		counts[c.Choose(rng).Name]++
	}
	if counts["rare"] == 0 {
		t.Error("rare kind never chosen")
	}
	if counts["common"] < 7*counts["rare"] {
		t.Errorf("counts = %v, expected common about nine times as often", counts)
	}
}

func TestEmptyCatalogChoosesNothing(t *testing.T) {
	c, err := CompileCatalog(nil)
	if err != nil {
		t.Fatal(err)
	}
	if k := c.Choose(NewRNG(1)); k != nil {
		t.Errorf("Choose() = %v, expected nil", k)
	}
}
