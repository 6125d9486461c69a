package tankeroidz

import (
	"fmt"

	"github.com/vovakirdan/tankeroidz/internal/config"
)

// PowerUpKind is a compiled catalog entry.
type PowerUpKind struct {
	Name      string
	Attribute Attribute
	Modifier  Modifier
	Duration  int   // Ticks; 0 means permanent
	Tint      *Tint // nil when the power-up has no overlay
	Weight    int
}

// Glyph is the rune the power-up is drawn with.
func (k *PowerUpKind) Glyph() rune {
	for _, r := range k.Name {
		if r >= 'a' && r <= 'z' {
			return r - 'a' + 'A'
		}
		return r
	}
	return '?'
}

// Catalog is the set of power-ups a round can drop. It is built once per
// round from configuration and never shared between rounds.
type Catalog struct {
	kinds []PowerUpKind
	total int
}

// CompileCatalog validates and compiles the configured power-ups. Unknown
// attributes and unparseable modifier specs fail with a *config.Error.
func CompileCatalog(specs []config.PowerUpSpec) (*Catalog, error) {
	c := &Catalog{kinds: make([]PowerUpKind, 0, len(specs))}
	for i, s := range specs {
		field := fmt.Sprintf("powerups[%d]", i)

		attr, ok := ParseAttribute(s.Attribute)
		if !ok {
			return nil, &config.Error{Field: field + ".attribute", Reason: fmt.Sprintf("unknown attribute %q", s.Attribute)}
		}
		mod, err := ParseModifier(s.Modifier)
		if err != nil {
			return nil, &config.Error{Field: field + ".modifier", Reason: "unparseable modifier", Err: err}
		}
		if s.Duration < 0 {
			return nil, &config.Error{Field: field + ".duration", Reason: "must not be negative"}
		}

		kind := PowerUpKind{
			Name:      s.Name,
			Attribute: attr,
			Modifier:  mod,
			Duration:  s.Duration,
			Weight:    s.Weight,
		}
		if kind.Weight <= 0 {
			kind.Weight = 1
		}
		if len(s.Tint) != 0 {
			if len(s.Tint) != 3 {
				return nil, &config.Error{Field: field + ".tint", Reason: fmt.Sprintf("want 3 channels, got %d", len(s.Tint))}
			}
			kind.Tint = &Tint{R: uint8(s.Tint[0]), G: uint8(s.Tint[1]), B: uint8(s.Tint[2])} //#nosec G115 -- validated to 0..255
		}
		c.kinds = append(c.kinds, kind)
		c.total += kind.Weight
	}
	return c, nil
}

// Len returns the number of kinds.
func (c *Catalog) Len() int {
	return len(c.kinds)
}

// Lookup finds a kind by name.
func (c *Catalog) Lookup(name string) (*PowerUpKind, bool) {
	for i := range c.kinds {
		if c.kinds[i].Name == name {
			return &c.kinds[i], true
		}
	}
	return nil, false
}

// Choose picks a kind with probability proportional to its weight.
// It returns nil for an empty catalog.
func (c *Catalog) Choose(rng *RNG) *PowerUpKind {
	if c.total <= 0 {
		return nil
	}
	roll := rng.Intn(c.total)
	cumulative := 0
	for i := range c.kinds {
		cumulative += c.kinds[i].Weight
		if roll < cumulative {
			return &c.kinds[i]
		}
	}
	return &c.kinds[len(c.kinds)-1]
}
