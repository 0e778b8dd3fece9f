// Package rule holds the legality checks of contract bridge: which calls may
// be made during the auction, which cards may be played to a trick, and who
// wins a finished trick.
package rule

import (
	"github.com/palemoky/rubber-bridge/internal/game/bid"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
)

// IsBidLegal reports whether by may call next.
//
// previous is the last non-pass call of the auction (zero if none yet) and
// contract the running contract built so far; the contract's level and strain
// are those of the last plain bid.
func IsBidLegal(previous bid.Bid, contract bid.Contract, next bid.Bid, by seat.Direction) bool {
	if next.IsPass() {
		return true
	}
	if previous.IsZero() {
		return next.IsPlain()
	}

	switch next.Special() {
	case bid.SpecialDouble:
		return previous.IsPlain() &&
			!contract.Declarer.SameSide(by) &&
			contract.Doubled == 0
	case bid.SpecialRedouble:
		return previous.IsDouble() &&
			contract.Declarer.SameSide(by)
	case bid.NotSpecial:
		if previous.IsPlain() {
			return next.IsHigherThan(previous)
		}
		return next.IsHigherThan(lastPlain(contract))
	case bid.SpecialPass:
		return true
	}
	return false
}

// lastPlain rebuilds the last plain bid from the contract, for when the
// previous call was a double or redouble.
func lastPlain(c bid.Contract) bid.Bid {
	if c.IsPassedOut() {
		return bid.Bid{}
	}
	b, err := bid.New(c.Level, c.Strain)
	if err != nil {
		return bid.Bid{}
	}
	return b
}
