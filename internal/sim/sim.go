// Package sim plays whole rubbers by choosing uniformly among the legal
// calls and cards, either against a local Game or as bots at a remote table.
package sim

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/game/score"
)

// ErrTooManyDeals is returned when a rubber is still running after the
// deal limit.
var ErrTooManyDeals = errors.New("sim: rubber did not finish")

// Chooser picks one of the legal calls or cards offered to the seat on turn.
type Chooser interface {
	ChooseBid(legal []string) string
	ChooseCard(legal []string) string
}

// Random 随机选择合法动作
type Random struct {
	rng      *rand.Rand
	passRate float64
	reach    int
}

// NewRandom returns a seeded Chooser. It passes with probability 0.7 and
// otherwise takes one of the four cheapest non-pass calls, so auctions stay
// short and contracts stay makeable often enough for rubbers to end.
func NewRandom(seed uint64) *Random {
	return &Random{
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		passRate: 0.7,
		reach:    4,
	}
}

// Shuffle lets a Random also drive the deck shuffle.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	r.rng.Shuffle(n, swap)
}

func (r *Random) ChooseBid(legal []string) string {
	if len(legal) == 0 {
		return ""
	}
	if len(legal) == 1 || r.rng.Float64() < r.passRate {
		return legal[0]
	}
	others := legal[1:min(len(legal), 1+r.reach)]
	return others[r.rng.IntN(len(others))]
}

func (r *Random) ChooseCard(legal []string) string {
	if len(legal) == 0 {
		return ""
	}
	return legal[r.rng.IntN(len(legal))]
}

// Report 一盘的模拟结果
type Report struct {
	Deals     []game.DealResult // 计分的牌副
	PassedOut int
	Scores    *score.Score
	Winner    string // NS / EW，平局为空
}

// PlayRubber drives g from its current phase to the end of the rubber.
// Passed-out deals count toward maxDeals.
func PlayRubber(g *game.Game, c Chooser, maxDeals int) (*Report, error) {
	rep := &Report{}
	for {
		switch g.Phase() {
		case game.PhaseDealCards:
			if g.DealNumber() >= maxDeals {
				return rep, fmt.Errorf("%w after %d deals", ErrTooManyDeals, g.DealNumber())
			}
			if err := g.DealCards(); err != nil {
				return rep, err
			}

		case game.PhaseAuction:
			if err := g.Bid(c.ChooseBid(g.LegalBids())); err != nil {
				return rep, fmt.Errorf("deal %d: %w", g.DealNumber(), err)
			}
			if g.Phase() == game.PhaseDealCards {
				rep.PassedOut++
			}

		case game.PhasePlay:
			if err := g.PlayCard(c.ChooseCard(g.LegalCards())); err != nil {
				return rep, fmt.Errorf("deal %d: %w", g.DealNumber(), err)
			}

		case game.PhaseDisplayScore:
			r, _ := g.LastDeal()
			rep.Deals = append(rep.Deals, r)
			if err := g.PrepareNewDeal(); err != nil {
				return rep, err
			}

		case game.PhaseGameOver:
			r, _ := g.LastDeal()
			rep.Deals = append(rep.Deals, r)
			rep.Scores = g.Scores()
			if w, ok := g.Scores().Winner(); ok {
				rep.Winner = w.String()
			}
			return rep, nil
		}
	}
}
