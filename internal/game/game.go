// Package game drives one rubber of contract bridge at a single table.
//
// A Game is a synchronous state machine: it does no locking and expects
// callers to serialize commands against it.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/palemoky/rubber-bridge/internal/apperrors"
	"github.com/palemoky/rubber-bridge/internal/game/auction"
	"github.com/palemoky/rubber-bridge/internal/game/bid"
	"github.com/palemoky/rubber-bridge/internal/game/card"
	"github.com/palemoky/rubber-bridge/internal/game/play"
	"github.com/palemoky/rubber-bridge/internal/game/score"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
)

// Phase 牌局阶段
type Phase int

const (
	PhaseDealCards Phase = iota
	PhaseAuction
	PhasePlay
	PhaseDisplayScore
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDealCards:
		return "deal_cards"
	case PhaseAuction:
		return "auction"
	case PhasePlay:
		return "play"
	case PhaseDisplayScore:
		return "display_score"
	case PhaseGameOver:
		return "game_over"
	}
	panic(fmt.Sprintf("game: invalid phase %d", int(p)))
}

// Player 座位上的玩家
type Player struct {
	Name string
	Seat seat.Direction
	Hand card.Hand
}

// DealResult summarizes a scored deal.
type DealResult struct {
	Number     int
	Dealer     seat.Direction
	Contract   bid.Contract
	TricksNS   int
	TricksEW   int
	Vulnerable bool // declaring side, before the deal was scored
	Points     int  // declarer's score for the deal alone
	RubberOver bool
}

// DeclarerTricks returns the tricks taken by the declaring side.
func (r DealResult) DeclarerTricks() int {
	if r.Contract.Declarer.Partnership() == seat.NorthSouth {
		return r.TricksNS
	}
	return r.TricksEW
}

// Made reports whether the contract was made.
func (r DealResult) Made() bool {
	return r.DeclarerTricks() >= r.Contract.TricksNeeded()
}

// Game 一张牌桌上的一局盘式桥牌
type Game struct {
	players  [4]*Player
	auction  *auction.Auction
	play     *play.Play
	score    *score.Score
	phase    Phase
	dealer   seat.Direction
	turn     seat.Direction
	shuffler card.Shuffler
	deals    int
	lastDeal *DealResult
}

// Option configures a Game.
type Option func(*Game)

// WithShuffler sets the randomness used for every deal.
func WithShuffler(s card.Shuffler) Option {
	return func(g *Game) { g.shuffler = s }
}

// WithPlayerNames names the players, indexed by seat.
func WithPlayerNames(names [4]string) Option {
	return func(g *Game) {
		for i, n := range names {
			if n != "" {
				g.players[i].Name = n
			}
		}
	}
}

// WithDealer sets the dealer of the first deal.
func WithDealer(d seat.Direction) Option {
	return func(g *Game) { g.dealer = d }
}

// New returns a game waiting for the first deal. North deals first unless
// WithDealer says otherwise.
func New(opts ...Option) *Game {
	g := &Game{
		auction: auction.New(),
		phase:   PhaseDealCards,
		dealer:  seat.North,
	}
	for _, d := range seat.All {
		g.players[d] = &Player{Name: d.String(), Seat: d}
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.shuffler == nil {
		g.shuffler = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	g.turn = g.dealer
	g.score = score.New(
		g.players[seat.North].Name+"/"+g.players[seat.South].Name,
		g.players[seat.East].Name+"/"+g.players[seat.West].Name,
	)
	return g
}

func (g *Game) requirePhase(want Phase) error {
	if g.phase != want {
		return fmt.Errorf("%w: %s required, game is in %s", apperrors.ErrWrongPhase, want, g.phase)
	}
	return nil
}

// DealCards shuffles and deals 13 cards to every seat. The dealer calls first.
func (g *Game) DealCards() error {
	if err := g.requirePhase(PhaseDealCards); err != nil {
		return err
	}

	deck := card.NewDeck()
	deck.Shuffle(g.shuffler)
	hands, err := deck.Deal()
	if err != nil {
		panic(err)
	}
	for _, d := range seat.All {
		g.players[d].Hand = hands[d]
	}

	g.deals++
	g.turn = g.dealer
	g.phase = PhaseAuction
	return nil
}

// Bid makes a call for the seat on turn.
func (g *Game) Bid(s string) error {
	return g.BidAs(g.turn, s)
}

// BidAs makes a call for seat by, which must be on turn.
func (g *Game) BidAs(by seat.Direction, s string) error {
	if err := g.requirePhase(PhaseAuction); err != nil {
		return err
	}
	if by != g.turn {
		return fmt.Errorf("%w: %s to call", apperrors.ErrNotYourTurn, g.turn)
	}
	b, err := bid.Parse(s)
	if err != nil {
		return err
	}
	if err := g.auction.Bid(by, b); err != nil {
		return err
	}

	switch {
	case g.auction.PassedOut():
		return g.PrepareNewDeal()
	case g.auction.Ended():
		g.play = play.New(g.auction.Contract().Strain)
		g.turn = g.auction.OpeningLeader()
		g.phase = PhasePlay
	default:
		g.turn = g.turn.Next()
	}
	return nil
}

// PlayCard plays a card from the hand of the seat on turn.
func (g *Game) PlayCard(s string) error {
	return g.PlayCardAs(g.Controller(), s)
}

// PlayCardAs plays a card for seat by. When dummy is on turn the declarer
// plays from dummy's hand.
func (g *Game) PlayCardAs(by seat.Direction, s string) error {
	if err := g.requirePhase(PhasePlay); err != nil {
		return err
	}
	if by != g.Controller() {
		return fmt.Errorf("%w: %s to play", apperrors.ErrNotYourTurn, g.Controller())
	}
	c, err := card.Parse(s)
	if err != nil {
		return err
	}

	res, err := g.play.PlayCard(g.turn, c, &g.players[g.turn].Hand)
	if err != nil {
		return err
	}
	if !res.TrickComplete {
		g.turn = g.turn.Next()
		return nil
	}

	g.turn = res.Winner
	if res.PlayOver {
		g.scoreDeal()
	}
	return nil
}

func (g *Game) scoreDeal() {
	contract := g.auction.Contract()
	ns, ew := g.play.Tricks()
	side := contract.Declarer.Partnership()
	vulnerable := g.score.Team(side).Vulnerable

	result := &DealResult{
		Number:     g.deals,
		Dealer:     g.dealer,
		Contract:   contract,
		TricksNS:   ns,
		TricksEW:   ew,
		Vulnerable: vulnerable,
	}
	result.Points = score.CalculateContract(contract, result.DeclarerTricks(), vulnerable)
	result.RubberOver = g.score.Record(contract, ns, ew)
	g.lastDeal = result

	if result.RubberOver {
		g.phase = PhaseGameOver
	} else {
		g.phase = PhaseDisplayScore
	}
}

// PrepareNewDeal discards the auction, rotates the dealer and waits for
// the next deal. Valid during the auction or after a deal was scored.
func (g *Game) PrepareNewDeal() error {
	if g.phase != PhaseAuction && g.phase != PhaseDisplayScore {
		return fmt.Errorf("%w: cannot start a new deal in %s", apperrors.ErrWrongPhase, g.phase)
	}
	g.auction = auction.New()
	g.play = nil
	g.dealer = g.dealer.Next()
	g.turn = g.dealer
	g.phase = PhaseDealCards
	return nil
}
