// Package seat defines the four table positions and the two partnerships.
package seat

import (
	"fmt"
	"strings"
)

// Direction 座位方向，按顺时针排列
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// All lists the seats clockwise starting from North.
var All = [4]Direction{North, East, South, West}

// Partnership 搭档方
type Partnership int

const (
	NorthSouth Partnership = iota
	EastWest
)

// Next returns the clockwise neighbour.
func (d Direction) Next() Direction {
	return d.Offset(1)
}

// Partner returns the seat opposite d.
func (d Direction) Partner() Direction {
	return d.Offset(2)
}

// Offset returns the seat n steps clockwise from d. n may be negative.
func (d Direction) Offset(n int) Direction {
	return Direction(((int(d)+n)%4 + 4) % 4)
}

// Partnership returns the side d sits on.
func (d Direction) Partnership() Partnership {
	switch d {
	case North, South:
		return NorthSouth
	case East, West:
		return EastWest
	}
	panic(fmt.Sprintf("seat: invalid direction %d", int(d)))
}

// SameSide reports whether d and o are partners (or the same seat).
func (d Direction) SameSide(o Direction) bool {
	return d.Partnership() == o.Partnership()
}

// Abbreviation returns the single-letter code used on the wire.
func (d Direction) Abbreviation() string {
	switch d {
	case North:
		return "N"
	case East:
		return "E"
	case South:
		return "S"
	case West:
		return "W"
	}
	panic(fmt.Sprintf("seat: invalid direction %d", int(d)))
}

func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Valid reports whether d is one of the four seats.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// ParseDirection accepts "N", "north", etc.
func ParseDirection(s string) (Direction, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return 0, fmt.Errorf("empty direction")
	}
	switch s[0] {
	case 'N':
		return North, nil
	case 'E':
		return East, nil
	case 'S':
		return South, nil
	case 'W':
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Seats returns the two seats of p, North/East first.
func (p Partnership) Seats() [2]Direction {
	switch p {
	case NorthSouth:
		return [2]Direction{North, South}
	case EastWest:
		return [2]Direction{East, West}
	}
	panic(fmt.Sprintf("seat: invalid partnership %d", int(p)))
}

// Opponents returns the other side.
func (p Partnership) Opponents() Partnership {
	switch p {
	case NorthSouth:
		return EastWest
	case EastWest:
		return NorthSouth
	}
	panic(fmt.Sprintf("seat: invalid partnership %d", int(p)))
}

func (p Partnership) String() string {
	switch p {
	case NorthSouth:
		return "NS"
	case EastWest:
		return "EW"
	}
	return fmt.Sprintf("Partnership(%d)", int(p))
}
