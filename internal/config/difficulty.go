package config

import "strings"

// DifficultyPreset names a difficulty profile in the balance file.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// DefaultDifficulty is used when none is requested.
const DefaultDifficulty = DifficultyNormal

// ParsePreset normalizes a user-supplied difficulty name. Empty input selects
// DefaultDifficulty. Names are not checked here; Config.Profile does that so
// custom profiles in a user file are accepted.
func ParsePreset(name string) DifficultyPreset {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultDifficulty
	}
	return DifficultyPreset(name)
}
