package config

import (
	_ "embed"
)

//go:embed defaults/tankeroidz.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors defaults/tankeroidz.yaml.
func Default() Config {
	return Config{
		Field: FieldConfig{
			Width:    480,
			Height:   320,
			TickRate: 30,
		},
		Tank: TankConfig{
			X:              150,
			Y:              150,
			Radius:         16,
			GunOverhang:    6,
			MaxHealth:      100,
			HealthRegen:    0.2,
			MaxPower:       100,
			PowerRegen:     10,
			FireCooldown:   0.333,
			BoostDrainPct:  2,
			DamageModifier: 1,
			Color:          []int{150, 150, 150},
		},
		Bullet: BulletConfig{
			Radius:    6,
			Impact:    10,
			MoveSpeed: 10,
		},
		Enemy: EnemyConfig{
			MinRadius: 4,
			MaxRadius: 11,
			MaxSpeed:  8,
		},
		Spawn: SpawnConfig{
			InitialDelay: 3,
			Interval:     0.75,
		},
		Scoring: ScoringConfig{
			KillMultiplier:   2,
			SurvivalPoints:   10,
			SurvivalInterval: 3,
		},
		PowerUps: []PowerUpSpec{
			{Name: "speedboost", Attribute: "move_speed", Modifier: "*1.5", Duration: 300, Tint: []int{200, 200, 128}},
			{Name: "healthpack", Attribute: "health_regen", Modifier: "+10", Duration: 90},
			{Name: "energypack", Attribute: "power_regen", Modifier: "+30", Duration: 90},
			{Name: "absorb", Attribute: "damage_modifier", Modifier: "*-1", Duration: 90, Tint: []int{50, 200, 50}},
			{Name: "wallwalking", Attribute: "wall_walking", Modifier: "1", Duration: 300, Tint: []int{255, 255, 255}},
		},
		Difficulties: map[string]DifficultyProfile{
			"easy": {
				TankTurnRate:  6,
				TankSpeed:     4,
				EnemySpeedPct: 75,
				TankBoostPct:  200,
				PowerUpChance: 30,
			},
			"normal": {
				TankTurnRate:  5,
				TankSpeed:     4,
				EnemySpeedPct: 100,
				TankBoostPct:  175,
				PowerUpChance: 20,
			},
			"hard": {
				TankTurnRate:  5,
				TankSpeed:     4,
				EnemySpeedPct: 130,
				TankBoostPct:  150,
				PowerUpChance: 10,
			},
		},
	}
}

// DefaultYAML returns the embedded default balance file.
func DefaultYAML() []byte {
	return defaultYAML
}
