package model

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/rubber-bridge/internal/network/client"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
	"github.com/palemoky/rubber-bridge/internal/ui/common"
	"github.com/palemoky/rubber-bridge/internal/ui/view"
)

// OnlineModel is the main model for online game mode.
type OnlineModel struct {
	screen
	client *client.Client
	msgs   chan tea.Msg

	connected  bool
	playerID   string
	playerName string

	tableCode string
	seat      string
	players   []protocol.SeatInfo
	state     *protocol.TableStatePayload

	tables    []protocol.TableListItem
	board     []protocol.LeaderboardEntry
	showBoard bool
}

// NewOnlineModel creates a new OnlineModel. An empty name keeps the
// nickname the server assigns.
func NewOnlineModel(serverURL, name string) *OnlineModel {
	m := &OnlineModel{
		screen:     screen{input: newInput("create, join CODE, ready, call, card or help")},
		client:     client.NewClient(serverURL),
		msgs:       make(chan tea.Msg, 256),
		playerName: name,
	}

	m.client.OnMessage = func(msg *protocol.Message) { m.forward(ServerMessage{Msg: msg}) }
	m.client.OnReconnecting = func(attempt, maxTries int) {
		m.forward(ReconnectingMsg{Attempt: attempt, MaxTries: maxTries})
	}
	m.client.OnReconnect = func() { m.forward(ReconnectSuccessMsg{}) }
	m.client.OnClose = func() { m.forward(DisconnectedMsg{}) }
	return m
}

func (m *OnlineModel) forward(msg tea.Msg) {
	select {
	case m.msgs <- msg:
	default:
	}
}

func (m *OnlineModel) Init() tea.Cmd {
	return tea.Batch(m.connectToServer(), textinput.Blink, m.listen())
}

func (m *OnlineModel) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

func (m *OnlineModel) listen() tea.Cmd {
	return func() tea.Msg {
		return <-m.msgs
	}
}

func (m *OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ConnectedMsg:
		m.connected = true
		m.client.EnableReconnect()
		m.client.StartHeartbeat()
		_ = m.client.GetTableList()
		return m, nil

	case ConnectionErrorMsg:
		m.err = "connection failed: " + msg.Err.Error()
		return m, nil

	case ServerMessage:
		m.handleServerMessage(msg.Msg)
		return m, m.listen()

	case ReconnectingMsg:
		m.notice = fmt.Sprintf("Reconnecting (%d/%d)…", msg.Attempt, msg.MaxTries)
		return m, m.listen()

	case ReconnectSuccessMsg:
		m.notice = "Reconnected."
		return m, m.listen()

	case DisconnectedMsg:
		m.connected = false
		m.err = "disconnected from server"
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			m.client.Close()
			return m, tea.Quit
		}
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

func (m *OnlineModel) execute(c Command) tea.Cmd {
	m.help = false
	var err error
	switch c.Kind {
	case CmdQuit:
		m.client.Close()
		return tea.Quit
	case CmdHelp:
		m.help = true
	case CmdCreate:
		err = m.client.CreateTable(c.Seat, m.playerName)
	case CmdJoin:
		err = m.client.JoinTable(c.Token, c.Seat, m.playerName)
	case CmdList:
		m.showBoard = false
		err = m.client.GetTableList()
	case CmdReady:
		err = m.client.Ready()
	case CmdUnready:
		err = m.client.CancelReady()
	case CmdLeave:
		err = m.client.LeaveTable()
		m.tableCode, m.seat, m.players, m.state = "", "", nil, nil
	case CmdLeaderboard:
		err = m.client.GetLeaderboard(c.Token, c.Limit)
	case CmdCall:
		err = m.client.Bid(c.Token)
	case CmdCard:
		err = m.client.PlayCard(c.Token)
	case CmdNext:
		err = m.client.NextDeal()
	}
	if err != nil {
		m.err = err.Error()
	}
	return nil
}

// handleServerMessage 处理服务端消息
func (m *OnlineModel) handleServerMessage(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgConnected:
		if p, err := codec.ParsePayload[protocol.ConnectedPayload](msg); err == nil {
			m.playerID = p.PlayerID
			if m.playerName == "" {
				m.playerName = p.PlayerName
			}
			m.notice = "Connected as " + m.playerName + ". Type 'help' for commands."
		}

	case protocol.MsgTableJoined:
		if p, err := codec.ParsePayload[protocol.TableJoinedPayload](msg); err == nil {
			m.tableCode, m.seat, m.players = p.Code, p.Seat, p.Players
			m.notice = fmt.Sprintf("Seated %s at table %s. Type 'ready' when set.", common.SeatName(p.Seat), p.Code)
		}

	case protocol.MsgPlayerJoined:
		if p, err := codec.ParsePayload[protocol.PlayerJoinedPayload](msg); err == nil {
			m.upsertPlayer(p.Player)
			m.notice = p.Player.Name + " sat down " + common.SeatName(p.Player.Seat) + "."
		}

	case protocol.MsgPlayerLeft:
		if p, err := codec.ParsePayload[protocol.PlayerLeftPayload](msg); err == nil {
			m.upsertPlayer(protocol.SeatInfo{Seat: p.Seat})
			m.notice = p.PlayerName + " left the table."
		}

	case protocol.MsgPlayerReady:
		if p, err := codec.ParsePayload[protocol.PlayerReadyPayload](msg); err == nil {
			for i := range m.players {
				if m.players[i].Seat == p.Seat {
					m.players[i].Ready = p.Ready
				}
			}
		}

	case protocol.MsgTableList:
		if p, err := codec.ParsePayload[protocol.TableListPayload](msg); err == nil {
			m.tables = p.Tables
		}

	case protocol.MsgTableState:
		if p, err := codec.ParsePayload[protocol.TableStatePayload](msg); err == nil {
			m.state = p
			m.players = p.Players
		}

	case protocol.MsgDealResult:
		if p, err := codec.ParsePayload[protocol.DealResultPayload](msg); err == nil {
			m.notice = resultSummary(p)
		}

	case protocol.MsgRubberOver:
		if p, err := codec.ParsePayload[protocol.RubberOverPayload](msg); err == nil {
			if p.Winner == "" {
				m.notice = "Rubber over: a tie."
			} else {
				m.notice = "Rubber over: " + p.Winner + " wins."
			}
		}

	case protocol.MsgLeaderboard:
		if p, err := codec.ParsePayload[protocol.LeaderboardPayload](msg); err == nil {
			m.board, m.showBoard = p.Entries, true
		}

	case protocol.MsgError:
		if p, err := codec.ParsePayload[protocol.ErrorPayload](msg); err == nil {
			m.err = p.Message
		}

	default:
	}
}

func (m *OnlineModel) upsertPlayer(p protocol.SeatInfo) {
	for i := range m.players {
		if m.players[i].Seat == p.Seat {
			m.players[i] = p
			return
		}
	}
	m.players = append(m.players, p)
}

func resultSummary(p *protocol.DealResultPayload) string {
	declarer := p.TricksNS
	if p.Contract.Declarer == "E" || p.Contract.Declarer == "W" {
		declarer = p.TricksEW
	}
	result := "made"
	if !p.Made {
		result = fmt.Sprintf("down %d", p.Contract.Level+6-declarer)
	}
	return fmt.Sprintf("%s %s with %d tricks: %+d.", p.Contract.Text, result, declarer, p.Points)
}

func (m *OnlineModel) View() string {
	var sb strings.Builder
	switch {
	case !m.connected && m.playerID == "":
		sb.WriteString(common.TitleStyle("🃏 Rubber Bridge") + "\n\nConnecting…")
	case m.state != nil:
		sb.WriteString(view.Table(m.state, m.width))
	case m.tableCode != "":
		sb.WriteString(view.Seats(m.tableCode, m.players))
	default:
		sb.WriteString(common.TitleStyle("🃏 Rubber Bridge · "+m.playerName) + "\n\n")
		sb.WriteString(view.TableList(m.tables))
	}
	sb.WriteString("\n")

	if m.showBoard {
		sb.WriteString("\n" + view.Leaderboard(m.board) + "\n")
	}
	if m.help {
		sb.WriteString("\n" + view.OnlineHelp + "\n")
	}
	if m.notice != "" {
		sb.WriteString("\n" + common.NoticeStyle.Render(m.notice))
	}
	if m.err != "" {
		sb.WriteString("\n" + common.ErrorStyle.Render(m.err))
	}
	sb.WriteString("\n" + common.PromptStyle.Render("> "+m.input.View()))
	return common.DocStyle.Render(sb.String())
}
