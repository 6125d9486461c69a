// Package config provides YAML-based balance configuration for Tankeroidz:
// field size, entity parameters, the power-up catalog and difficulty profiles.
package config

import (
	"fmt"
	"sort"
)

// Config is the full balance file.
type Config struct {
	Field        FieldConfig                  `yaml:"field"`
	Tank         TankConfig                   `yaml:"tank"`
	Bullet       BulletConfig                 `yaml:"bullet"`
	Enemy        EnemyConfig                  `yaml:"enemy"`
	Spawn        SpawnConfig                  `yaml:"spawn"`
	Scoring      ScoringConfig                `yaml:"scoring"`
	PowerUps     []PowerUpSpec                `yaml:"powerups"`
	Difficulties map[string]DifficultyProfile `yaml:"difficulties"`
}

// FieldConfig defines the playing field in field pixels.
type FieldConfig struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	TickRate int     `yaml:"tick_rate"` // Simulation ticks per second
}

// TankConfig defines the player tank's starting stats.
type TankConfig struct {
	X              float64 `yaml:"x"`
	Y              float64 `yaml:"y"`
	Radius         float64 `yaml:"radius"`
	GunOverhang    float64 `yaml:"gun_overhang"` // Gun length past half the hull height
	MaxHealth      float64 `yaml:"max_health"`
	HealthRegen    float64 `yaml:"health_regen"` // Per second
	MaxPower       float64 `yaml:"max_power"`
	PowerRegen     float64 `yaml:"power_regen"`     // Per second
	FireCooldown   float64 `yaml:"fire_cooldown"`   // Seconds between shots
	BoostDrainPct  float64 `yaml:"boost_drain_pct"` // Percent of max power per tick
	DamageModifier float64 `yaml:"damage_modifier"`
	Color          []int   `yaml:"color"`
}

// BulletConfig defines projectile stats. All bullets are identical.
type BulletConfig struct {
	Radius    float64 `yaml:"radius"`
	Impact    float64 `yaml:"impact"`
	MoveSpeed float64 `yaml:"move_speed"`
}

// EnemyConfig defines the range enemies are sampled from at spawn.
type EnemyConfig struct {
	MinRadius int     `yaml:"min_radius"`
	MaxRadius int     `yaml:"max_radius"`
	MaxSpeed  float64 `yaml:"max_speed"`
}

// SpawnConfig defines the enemy spawn cadence in seconds.
type SpawnConfig struct {
	InitialDelay float64 `yaml:"initial_delay"`
	Interval     float64 `yaml:"interval"`
}

// ScoringConfig defines how points are awarded.
type ScoringConfig struct {
	KillMultiplier   float64 `yaml:"kill_multiplier"`   // Points per unit of enemy move speed
	SurvivalPoints   int     `yaml:"survival_points"`   // Awarded every SurvivalInterval
	SurvivalInterval float64 `yaml:"survival_interval"` // Seconds
}

// PowerUpSpec is one catalog entry. Attribute and Modifier are checked when the
// catalog is compiled for a round, since only the simulation knows the
// attribute names.
type PowerUpSpec struct {
	Name      string `yaml:"name"`
	Attribute string `yaml:"attribute"`
	Modifier  string `yaml:"modifier"`
	Duration  int    `yaml:"duration"` // Ticks; 0 means permanent
	Tint      []int  `yaml:"tint,omitempty"`
	Weight    int    `yaml:"weight,omitempty"` // 0 is treated as 1
}

// DifficultyProfile holds the per-round values that a difficulty selects.
type DifficultyProfile struct {
	TankTurnRate  float64 `yaml:"tank_turn_rate"` // Degrees per tick
	TankSpeed     float64 `yaml:"tank_speed"`     // Pixels per tick
	WallWalking   bool    `yaml:"wall_walking"`
	EnemySpeedPct float64 `yaml:"enemy_speed_pct"`
	TankBoostPct  float64 `yaml:"tank_boost_pct"`
	PowerUpChance int     `yaml:"powerup_chance"` // 0..100
}

// Profile returns the difficulty profile selected by preset.
func (c Config) Profile(preset DifficultyPreset) (DifficultyProfile, error) {
	p, ok := c.Difficulties[string(preset)]
	if !ok {
		return DifficultyProfile{}, &Error{
			Field:  "difficulties." + string(preset),
			Reason: fmt.Sprintf("unknown difficulty (have %v)", c.DifficultyNames()),
		}
	}
	return p, nil
}

// DifficultyNames returns the configured difficulty names in sorted order.
func (c Config) DifficultyNames() []string {
	names := make([]string, 0, len(c.Difficulties))
	for name := range c.Difficulties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks structural constraints. Modifier specs and attribute names
// are validated later by the simulation's catalog compiler.
func (c Config) Validate() error {
	switch {
	case c.Field.Width <= 0:
		return &Error{Field: "field.width", Reason: "must be positive"}
	case c.Field.Height <= 0:
		return &Error{Field: "field.height", Reason: "must be positive"}
	case c.Field.TickRate <= 0:
		return &Error{Field: "field.tick_rate", Reason: "must be positive"}
	case c.Tank.Radius <= 0:
		return &Error{Field: "tank.radius", Reason: "must be positive"}
	case c.Tank.MaxHealth <= 0:
		return &Error{Field: "tank.max_health", Reason: "must be positive"}
	case c.Tank.FireCooldown < 0:
		return &Error{Field: "tank.fire_cooldown", Reason: "must not be negative"}
	case c.Bullet.Radius <= 0:
		return &Error{Field: "bullet.radius", Reason: "must be positive"}
	case c.Enemy.MinRadius <= 0:
		return &Error{Field: "enemy.min_radius", Reason: "must be positive"}
	case c.Enemy.MaxRadius < c.Enemy.MinRadius:
		return &Error{Field: "enemy.max_radius", Reason: fmt.Sprintf("%d is below min_radius %d", c.Enemy.MaxRadius, c.Enemy.MinRadius)}
	case c.Spawn.Interval <= 0:
		return &Error{Field: "spawn.interval", Reason: "must be positive"}
	case c.Spawn.InitialDelay < 0:
		return &Error{Field: "spawn.initial_delay", Reason: "must not be negative"}
	case c.Scoring.SurvivalInterval <= 0:
		return &Error{Field: "scoring.survival_interval", Reason: "must be positive"}
	case len(c.Difficulties) == 0:
		return &Error{Field: "difficulties", Reason: "at least one profile is required"}
	}

	if err := validateColor("tank.color", c.Tank.Color, false); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.PowerUps))
	for i, p := range c.PowerUps {
		field := fmt.Sprintf("powerups[%d]", i)
		if p.Name == "" {
			return &Error{Field: field + ".name", Reason: "must not be empty"}
		}
		if seen[p.Name] {
			return &Error{Field: field + ".name", Reason: fmt.Sprintf("duplicate power-up %q", p.Name)}
		}
		seen[p.Name] = true
		if p.Duration < 0 {
			return &Error{Field: field + ".duration", Reason: "must not be negative"}
		}
		if p.Weight < 0 {
			return &Error{Field: field + ".weight", Reason: "must not be negative"}
		}
		if err := validateColor(field+".tint", p.Tint, true); err != nil {
			return err
		}
	}

	for _, name := range c.DifficultyNames() {
		d := c.Difficulties[name]
		field := "difficulties." + name
		if d.PowerUpChance < 0 || d.PowerUpChance > 100 {
			return &Error{Field: field + ".powerup_chance", Reason: fmt.Sprintf("%d is outside 0..100", d.PowerUpChance)}
		}
		if d.PowerUpChance > 0 && len(c.PowerUps) == 0 {
			return &Error{Field: field + ".powerup_chance", Reason: "power-ups can drop but the catalog is empty"}
		}
		if d.TankSpeed <= 0 {
			return &Error{Field: field + ".tank_speed", Reason: "must be positive"}
		}
		if d.TankTurnRate <= 0 {
			return &Error{Field: field + ".tank_turn_rate", Reason: "must be positive"}
		}
		if d.EnemySpeedPct < 0 {
			return &Error{Field: field + ".enemy_speed_pct", Reason: "must not be negative"}
		}
		if d.TankBoostPct <= 0 {
			return &Error{Field: field + ".tank_boost_pct", Reason: "must be positive"}
		}
	}
	return nil
}

func validateColor(field string, rgb []int, optional bool) error {
	if len(rgb) == 0 && optional {
		return nil
	}
	if len(rgb) != 3 {
		return &Error{Field: field, Reason: fmt.Sprintf("want 3 channels, got %d", len(rgb))}
	}
	for _, ch := range rgb {
		if ch < 0 || ch > 255 {
			return &Error{Field: field, Reason: fmt.Sprintf("channel %d is outside 0..255", ch)}
		}
	}
	return nil
}
