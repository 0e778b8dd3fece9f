package model

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/game/seat"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/convert"
	"github.com/palemoky/rubber-bridge/internal/ui/common"
	"github.com/palemoky/rubber-bridge/internal/ui/view"
)

// LocalModel is a hot-seat table: four players share one terminal and the
// screen always shows the table from the seat that must act.
type LocalModel struct {
	screen
	names [4]string
	opts  []game.Option
	game  *game.Game
	// 上一个行动的座位，计分阶段沿用其视角
	viewer  seat.Direction
	rubbers int
}

// NewLocalModel starts a rubber for the named players. opts are applied to
// every rubber's game.
func NewLocalModel(names [4]string, opts ...game.Option) *LocalModel {
	m := &LocalModel{
		screen: screen{input: newInput("call, card, next or help")},
		names:  names,
		opts:   opts,
	}
	m.newRubber()
	return m
}

func (m *LocalModel) newRubber() {
	opts := append([]game.Option{game.WithPlayerNames(m.names)}, m.opts...)
	m.game = game.New(opts...)
	m.rubbers++
	m.deal()
}

func (m *LocalModel) deal() {
	if err := m.game.DealCards(); err != nil {
		m.err = err.Error()
		return
	}
	m.viewer = m.game.Controller()
}

func (m *LocalModel) Init() tea.Cmd {
	return nil
}

func (m *LocalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && (k.Type == tea.KeyCtrlC || k.Type == tea.KeyEsc) {
		return m, tea.Quit
	}

	line, submitted, cmd := m.screen.update(msg)
	if !submitted {
		return m, cmd
	}

	c, err := ParseCommand(line)
	if err != nil {
		m.err = err.Error()
		return m, nil
	}
	return m, m.execute(c)
}

func (m *LocalModel) execute(c Command) tea.Cmd {
	m.help = false
	switch c.Kind {
	case CmdQuit:
		return tea.Quit
	case CmdHelp:
		m.help = true
	case CmdCall:
		m.call(c.Token)
	case CmdCard:
		m.play(c.Token)
	case CmdNext:
		m.next()
	default:
		m.err = "not available at a local table, type 'help'"
	}
	return nil
}

func (m *LocalModel) call(token string) {
	by := m.game.Turn()
	if err := m.game.Bid(token); err != nil {
		m.err = err.Error()
		return
	}
	m.notice = fmt.Sprintf("%s: %s", by, token)

	switch m.game.Phase() {
	case game.PhaseDealCards:
		m.notice = "Passed out. Redealing, " + m.game.Dealer().String() + " deals."
		m.deal()
	case game.PhasePlay:
		m.notice = "Contract " + m.game.Contract().String() + ". " + m.game.Turn().String() + " leads."
		m.viewer = m.game.Controller()
	default:
		m.viewer = m.game.Controller()
	}
}

func (m *LocalModel) play(token string) {
	if err := m.game.PlayCard(token); err != nil {
		m.err = err.Error()
		return
	}
	m.notice = ""

	switch m.game.Phase() {
	case game.PhaseDisplayScore, game.PhaseGameOver:
		r, _ := m.game.LastDeal()
		m.notice = dealSummary(r)
		if r.RubberOver {
			m.notice += " Rubber over."
		}
	default:
		if last, ok := m.game.LastTrick(); ok && len(m.game.CurrentTrick()) == 0 {
			m.notice = "Trick to " + last.Winner.String() + "."
		}
		m.viewer = m.game.Controller()
	}
}

func (m *LocalModel) next() {
	switch m.game.Phase() {
	case game.PhaseDisplayScore:
		if err := m.game.PrepareNewDeal(); err != nil {
			m.err = err.Error()
			return
		}
		m.notice = m.game.Dealer().String() + " deals."
		m.deal()
	case game.PhaseGameOver:
		m.notice = fmt.Sprintf("Rubber %d begins.", m.rubbers+1)
		m.newRubber()
	default:
		m.err = "the deal is still in progress"
	}
}

func dealSummary(r game.DealResult) string {
	result := "made"
	if !r.Made() {
		result = fmt.Sprintf("down %d", r.Contract.TricksNeeded()-r.DeclarerTricks())
	}
	return fmt.Sprintf("%s %s with %d tricks: %+d.", r.Contract, result, r.DeclarerTricks(), r.Points)
}

// State returns the table as seen from the seat whose turn it is.
func (m *LocalModel) State() protocol.TableStatePayload {
	players := make([]protocol.SeatInfo, 0, 4)
	for _, p := range m.game.Players() {
		players = append(players, protocol.SeatInfo{Seat: p.Seat.Abbreviation(), Name: p.Name, Ready: true, Online: true})
	}
	return convert.TableState("local", m.game.View(m.viewer), players)
}

// Game exposes the game for inspection.
func (m *LocalModel) Game() *game.Game {
	return m.game
}

func (m *LocalModel) View() string {
	st := m.State()

	var sb strings.Builder
	sb.WriteString(view.Table(&st, m.width))
	sb.WriteString("\n")
	if m.help {
		sb.WriteString("\n" + view.LocalHelp + "\n")
	}
	if m.notice != "" {
		sb.WriteString("\n" + common.NoticeStyle.Render(m.notice))
	}
	if m.err != "" {
		sb.WriteString("\n" + common.ErrorStyle.Render(m.err))
	}
	prompt := fmt.Sprintf("%s > ", m.viewer)
	sb.WriteString("\n" + common.PromptStyle.Render(prompt+m.input.View()))
	return common.DocStyle.Render(sb.String())
}
