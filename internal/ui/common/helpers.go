package common

import (
	"github.com/palemoky/rubber-bridge/internal/game/card"
)

// TruncateName truncates a player name to the specified maximum length.
func TruncateName(name string, maxLen int) string {
	runes := []rune(name)
	if len(runes) > maxLen {
		return string(runes[:maxLen-1]) + "…"
	}
	return name
}

// SuitStyle renders s in the colour of its suit.
func SuitStyle(suit card.Suit, s string) string {
	if suit.IsRed() {
		return RedStyle.Render(s)
	}
	return BlackStyle.Render(s)
}

// SeatName expands a seat abbreviation for display.
func SeatName(abbr string) string {
	switch abbr {
	case "N":
		return "North"
	case "E":
		return "East"
	case "S":
		return "South"
	case "W":
		return "West"
	}
	return abbr
}
