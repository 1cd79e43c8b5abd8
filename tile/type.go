package tile

import (
	"fmt"
	"strings"
)

// Type is the semantic meaning of one grid cell.
type Type int

const (
	Clear Type = iota
	Obstacle
	Breakable
	Hole
	Goal
	Spawn
)

var typeNames = [...]string{
	Clear:     "clear",
	Obstacle:  "obstacle",
	Breakable: "breakable",
	Hole:      "hole",
	Goal:      "goal",
	Spawn:     "spawn",
}

// Types lists every tile type in declaration order.
var Types = []Type{Clear, Obstacle, Breakable, Hole, Goal, Spawn}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("tile.Type(%d)", int(t))
	}
	return typeNames[t]
}

// Valid reports whether t is one of the known tile types.
func (t Type) Valid() bool {
	return t >= Clear && t <= Spawn
}

// Value returns the numeric value level assets use for t. Spawn is -1.
func (t Type) Value() int {
	if t == Spawn {
		return -1
	}
	return int(t)
}

// Solid reports whether blocks of this type stop a moving body.
func (t Type) Solid() bool {
	return t == Obstacle || t == Breakable
}

// TypeFromValue is the inverse of Value.
func TypeFromValue(v int) (Type, bool) {
	if v == -1 {
		return Spawn, true
	}
	t := Type(v)
	if t == Spawn || !t.Valid() {
		return Clear, false
	}
	return t, true
}

// ParseType parses a type name as produced by String. Matching ignores case
// and surrounding spaces.
func ParseType(s string) (Type, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for t, n := range typeNames {
		if n == name {
			return Type(t), nil
		}
	}
	return Clear, fmt.Errorf("tile: unknown type %q", s)
}

// MarshalText and UnmarshalText let Type round-trip through text encodings.
func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("tile: invalid type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	parsed, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
