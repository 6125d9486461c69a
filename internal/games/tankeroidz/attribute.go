package tankeroidz

// Attribute enumerates the entity stats a Modifier can target.
type Attribute int

const (
	AttrMoveSpeed Attribute = iota
	AttrTurnRate
	AttrSpeed
	AttrHealthRegen
	AttrPowerRegen
	AttrDamageModifier
	AttrWallWalking
	AttrImpact
	attributeCount
)

var attributeNames = [attributeCount]string{
	AttrMoveSpeed:      "move_speed",
	AttrTurnRate:       "turn_rate",
	AttrSpeed:          "speed",
	AttrHealthRegen:    "health_regen",
	AttrPowerRegen:     "power_regen",
	AttrDamageModifier: "damage_modifier",
	AttrWallWalking:    "wall_walking",
	AttrImpact:         "impact",
}

// String returns the attribute's name as used in the balance file.
func (a Attribute) String() string {
	if a < 0 || a >= attributeCount {
		return "unknown"
	}
	return attributeNames[a]
}

// ParseAttribute looks up an attribute by name. "turn_radius" is accepted as
// an alias of turn_rate.
func ParseAttribute(name string) (Attribute, bool) {
	if name == "turn_radius" {
		return AttrTurnRate, true
	}
	for a, n := range attributeNames {
		if n == name {
			return Attribute(a), true
		}
	}
	return 0, false
}

// Attributes returns every modifiable attribute in declaration order.
func Attributes() []Attribute {
	out := make([]Attribute, attributeCount)
	for i := range out {
		out[i] = Attribute(i)
	}
	return out
}
