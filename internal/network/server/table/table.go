// Package table hosts bridge tables: four seats around one game, with every
// command from every connection serialized through the table's mutex.
package table

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/palemoky/rubber-bridge/internal/apperrors"
	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/convert"
	"github.com/palemoky/rubber-bridge/internal/network/server/types"
)

// PhaseWaiting is reported for a table whose first rubber has not started.
const PhaseWaiting = "waiting"

// Seat 牌桌上的一个座位
type Seat struct {
	Client types.ClientInterface
	Ready  bool
}

// Table 一张牌桌
type Table struct {
	Code      string
	CreatedAt time.Time

	seats      [4]*Seat
	game       *game.Game
	gameOpts   []game.Option
	rubbers    int
	lastActive time.Time
	mu         sync.Mutex
}

// New creates an empty table. opts are applied to every rubber's game.
func New(code string, opts ...game.Option) *Table {
	now := time.Now()
	return &Table{
		Code:       code,
		CreatedAt:  now,
		lastActive: now,
		gameOpts:   opts,
	}
}

// --- 座位 ---

// Join seats client at the requested seat, or at the first free seat when
// want is empty.
func (t *Table) Join(client types.ClientInterface, want string) (*protocol.TableJoinedPayload, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seatOf(client.GetID()); ok {
		return nil, fmt.Errorf("%w: already seated at %s", apperrors.ErrSeatTaken, t.Code)
	}
	d, err := t.pickSeat(want)
	if err != nil {
		return nil, err
	}

	t.seats[d] = &Seat{Client: client}
	t.touch()
	client.SetTable(t.Code)
	log.Printf("👤 玩家 %s 入座 %s 牌桌 %s", client.GetName(), d, t.Code)

	t.broadcastExcept(client.GetID(), codec.MustNewMessage(protocol.MsgPlayerJoined, protocol.PlayerJoinedPayload{
		Player: t.seatInfo(d),
	}))

	// 牌局进行中入座，立即下发当前状态
	if t.game != nil {
		t.sendState(d)
	}

	return &protocol.TableJoinedPayload{
		Code:    t.Code,
		Seat:    d.Abbreviation(),
		Players: t.seatInfos(),
	}, nil
}

func (t *Table) pickSeat(want string) (seat.Direction, error) {
	if want == "" {
		for _, d := range seat.All {
			if t.seats[d] == nil {
				return d, nil
			}
		}
		return 0, fmt.Errorf("%w: %s", apperrors.ErrTableFull, t.Code)
	}

	d, err := seat.ParseDirection(want)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", apperrors.ErrParse, err)
	}
	if t.seats[d] != nil {
		return 0, fmt.Errorf("%w: %s", apperrors.ErrSeatTaken, d)
	}
	return d, nil
}

// Leave frees the seat held by client and reports whether the table is now
// empty. The rubber in progress is kept so a replacement can take the seat.
func (t *Table) Leave(client types.ClientInterface) (empty bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, ok := t.seatOf(client.GetID())
	if !ok {
		return t.seated() == 0
	}

	t.seats[d] = nil
	t.touch()
	client.SetTable("")
	log.Printf("👋 玩家 %s 离开牌桌 %s (座位 %s)", client.GetName(), t.Code, d)

	t.broadcast(codec.MustNewMessage(protocol.MsgPlayerLeft, protocol.PlayerLeftPayload{
		Seat:       d.Abbreviation(),
		PlayerID:   client.GetID(),
		PlayerName: client.GetName(),
	}))
	return t.seated() == 0
}

// SetReady toggles the ready flag. Once all four seats are ready and no
// rubber is running, a rubber starts and the first deal is dealt.
func (t *Table) SetReady(client types.ClientInterface, ready bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, ok := t.seatOf(client.GetID())
	if !ok {
		return apperrors.ErrNotAtTable
	}
	t.seats[d].Ready = ready
	t.touch()

	t.broadcast(codec.MustNewMessage(protocol.MsgPlayerReady, protocol.PlayerReadyPayload{
		Seat:     d.Abbreviation(),
		PlayerID: client.GetID(),
		Ready:    ready,
	}))

	if t.allReady() && !t.rubberRunning() {
		t.startRubber()
	}
	return nil
}

// --- 牌局 ---

// Bid makes a call for the client's seat. A passed-out deal is redealt
// straight away.
func (t *Table) Bid(client types.ClientInterface, call string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, err := t.actor(client)
	if err != nil {
		return err
	}
	if err := t.game.BidAs(d, call); err != nil {
		return err
	}
	t.touch()

	if t.game.Phase() == game.PhaseDealCards {
		log.Printf("🔁 牌桌 %s 第 %d 副四家都 PASS，重新发牌", t.Code, t.game.DealNumber())
		t.deal()
		return nil
	}
	t.broadcastState()
	return nil
}

// PlayCard plays a card for the client's seat, or from dummy when the
// client is declarer. It returns the rubber's results when the card ended
// the rubber.
func (t *Table) PlayCard(client types.ClientInterface, c string) ([]types.RubberPlayer, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, err := t.actor(client)
	if err != nil {
		return nil, err
	}
	if err := t.game.PlayCardAs(d, c); err != nil {
		return nil, err
	}
	t.touch()
	t.broadcastState()

	switch t.game.Phase() {
	case game.PhaseDisplayScore:
		t.broadcastDealResult()
	case game.PhaseGameOver:
		t.broadcastDealResult()
		t.broadcast(codec.MustNewMessage(protocol.MsgRubberOver, convert.RubberOver(t.game.Scores())))
		log.Printf("🏆 牌桌 %s 第 %d 盘结束\n%s", t.Code, t.rubbers, t.game.Scores())
		return t.rubberPlayers(), nil
	case game.PhaseDealCards, game.PhaseAuction, game.PhasePlay:
	}
	return nil, nil
}

// NextDeal moves past a scored deal: the next deal of the rubber, or a
// fresh rubber once the previous one is over.
func (t *Table) NextDeal(client types.ClientInterface) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.seatOf(client.GetID()); !ok {
		return apperrors.ErrNotAtTable
	}
	if t.game == nil {
		return fmt.Errorf("%w: no rubber in progress", apperrors.ErrWrongPhase)
	}

	switch t.game.Phase() {
	case game.PhaseDisplayScore:
		if err := t.game.PrepareNewDeal(); err != nil {
			return err
		}
		t.deal()
	case game.PhaseGameOver:
		if t.seated() < len(t.seats) {
			return fmt.Errorf("%w: waiting for four players", apperrors.ErrWrongPhase)
		}
		t.startRubber()
	case game.PhaseDealCards, game.PhaseAuction, game.PhasePlay:
		return fmt.Errorf("%w: deal in progress", apperrors.ErrWrongPhase)
	}
	t.touch()
	return nil
}

func (t *Table) startRubber() {
	var names [4]string
	for _, d := range seat.All {
		names[d] = t.seats[d].Client.GetName()
	}
	opts := append([]game.Option{game.WithPlayerNames(names)}, t.gameOpts...)
	t.game = game.New(opts...)
	t.rubbers++
	log.Printf("🎮 牌桌 %s 开始第 %d 盘: %v", t.Code, t.rubbers, names)
	t.deal()
}

func (t *Table) deal() {
	if err := t.game.DealCards(); err != nil {
		log.Printf("⚠️  牌桌 %s 发牌失败: %v", t.Code, err)
		return
	}
	t.broadcastState()
}

// actor returns the client's seat when a game is running.
func (t *Table) actor(client types.ClientInterface) (seat.Direction, error) {
	d, ok := t.seatOf(client.GetID())
	if !ok {
		return 0, apperrors.ErrNotAtTable
	}
	if t.game == nil {
		return 0, fmt.Errorf("%w: no rubber in progress", apperrors.ErrWrongPhase)
	}
	return d, nil
}

func (t *Table) rubberPlayers() []types.RubberPlayer {
	s := t.game.Scores()
	winner, decided := s.Winner()
	var out []types.RubberPlayer
	for _, d := range seat.All {
		st := t.seats[d]
		if st == nil {
			continue
		}
		side := d.Partnership()
		out = append(out, types.RubberPlayer{
			PlayerID:   st.Client.GetID(),
			PlayerName: st.Client.GetName(),
			Won:        decided && winner == side,
			Points:     s.Team(side).Total() - s.Team(side.Opponents()).Total(),
		})
	}
	return out
}

// --- 查询 ---

// Phase returns the game phase, or PhaseWaiting before the first rubber.
func (t *Table) Phase() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.game == nil {
		return PhaseWaiting
	}
	return t.game.Phase().String()
}

// PlayerCount returns the number of occupied seats.
func (t *Table) PlayerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.seated()
}

// IdleSince returns the time of the last seat change or command.
func (t *Table) IdleSince() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastActive
}

// Snapshot returns the persisted summary of the table.
func (t *Table) Snapshot() *types.TableSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := &types.TableSnapshot{
		Code:      t.Code,
		Phase:     PhaseWaiting,
		Players:   make([]string, len(t.seats)),
		CreatedAt: t.CreatedAt.Unix(),
		UpdatedAt: t.lastActive.Unix(),
	}
	for i, st := range t.seats {
		if st != nil {
			snap.Players[i] = st.Client.GetName()
		}
	}
	if t.game != nil {
		snap.Phase = t.game.Phase().String()
		snap.DealNumber = t.game.DealNumber()
		snap.Dealer = t.game.Dealer().Abbreviation()
		if c := t.game.Contract(); !c.IsPassedOut() {
			snap.Contract = c.String()
		}
		snap.ScoreNS = t.game.Scores().NS.Total()
		snap.ScoreEW = t.game.Scores().EW.Total()
	}
	return snap
}

// --- helpers，调用方持有锁 ---

func (t *Table) seatOf(playerID string) (seat.Direction, bool) {
	for _, d := range seat.All {
		if st := t.seats[d]; st != nil && st.Client.GetID() == playerID {
			return d, true
		}
	}
	return 0, false
}

func (t *Table) seated() int {
	n := 0
	for _, st := range t.seats {
		if st != nil {
			n++
		}
	}
	return n
}

func (t *Table) allReady() bool {
	for _, st := range t.seats {
		if st == nil || !st.Ready {
			return false
		}
	}
	return true
}

func (t *Table) rubberRunning() bool {
	return t.game != nil && t.game.Phase() != game.PhaseGameOver
}

func (t *Table) touch() {
	t.lastActive = time.Now()
}
