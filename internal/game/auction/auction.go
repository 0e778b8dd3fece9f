// Package auction runs the bidding phase of a deal.
package auction

import (
	"fmt"
	"slices"

	"github.com/palemoky/rubber-bridge/internal/apperrors"
	"github.com/palemoky/rubber-bridge/internal/game/bid"
	"github.com/palemoky/rubber-bridge/internal/game/rule"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
)

// Call 一次叫牌记录
type Call struct {
	Seat seat.Direction
	Bid  bid.Bid
}

// Auction 叫牌状态机
//
// Turn order is the caller's business; the auction only checks legality.
type Auction struct {
	contract  bid.Contract
	passCount int
	previous  bid.Bid // 最近一次非 PASS 叫品
	calls     []Call
	snapshots []bid.Contract
	declarer  seat.Direction
}

// New returns an empty auction.
func New() *Auction {
	return &Auction{}
}

// Bid records b made by seat by.
func (a *Auction) Bid(by seat.Direction, b bid.Bid) error {
	if a.Ended() {
		return fmt.Errorf("%w: auction is over", apperrors.ErrWrongPhase)
	}
	if b.IsZero() {
		return fmt.Errorf("%w: empty call", apperrors.ErrIllegalBid)
	}
	if !a.IsLegal(by, b) {
		return fmt.Errorf("%w: %s by %s", apperrors.ErrIllegalBid, b, by)
	}

	a.calls = append(a.calls, Call{Seat: by, Bid: b})
	if b.IsPass() {
		a.passCount++
		if a.Ended() && !a.PassedOut() {
			a.close()
		}
		return nil
	}

	a.passCount = 0
	a.previous = b
	a.contract = a.contract.Apply(b, by)
	a.snapshots = append(a.snapshots, a.contract)
	return nil
}

// close fixes the declarer once the final contract is known.
func (a *Auction) close() {
	final := a.contract
	a.declarer = final.Declarer
	for _, snap := range a.snapshots {
		if snap.Strain == final.Strain && snap.Declarer.SameSide(final.Declarer) {
			a.declarer = snap.Declarer
			break
		}
	}
	a.contract.Declarer = a.declarer
}

// IsLegal reports whether by may call b now.
func (a *Auction) IsLegal(by seat.Direction, b bid.Bid) bool {
	return rule.IsBidLegal(a.previous, a.contract, b, by)
}

// LegalBids returns the legal calls for by in vocabulary order, or nil once
// the auction has ended.
func (a *Auction) LegalBids(by seat.Direction) []bid.Bid {
	if a.Ended() {
		return nil
	}
	var out []bid.Bid
	for _, b := range bid.Vocabulary() {
		if a.IsLegal(by, b) {
			out = append(out, b)
		}
	}
	return out
}

// Ended reports whether four passes opened the auction or three passes
// followed a non-pass call.
func (a *Auction) Ended() bool {
	if a.passCount >= 4 {
		return true
	}
	return a.passCount == 3 && !a.previous.IsZero()
}

// PassedOut reports whether all four seats passed without a bid.
func (a *Auction) PassedOut() bool {
	return a.Ended() && a.previous.IsZero()
}

// Contract returns the running contract. After the auction ends its
// Declarer is the declarer of the deal.
func (a *Auction) Contract() bid.Contract {
	return a.contract
}

// Declarer returns the declarer; valid once the auction ended with a contract.
func (a *Auction) Declarer() seat.Direction {
	return a.declarer
}

// OpeningLeader is the seat left of declarer.
func (a *Auction) OpeningLeader() seat.Direction {
	return a.declarer.Next()
}

// PassCount returns the number of consecutive passes.
func (a *Auction) PassCount() int {
	return a.passCount
}

// History returns every call in order.
func (a *Auction) History() []Call {
	return slices.Clone(a.calls)
}

// ContractLog returns the contract after each non-pass call.
func (a *Auction) ContractLog() []bid.Contract {
	return slices.Clone(a.snapshots)
}
