package model

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
)

// --- Tea Messages ---

// ServerMessage wraps a protocol message for tea.Msg.
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg indicates successful connection.
type ConnectedMsg struct{}

// ConnectionErrorMsg indicates a connection error.
type ConnectionErrorMsg struct {
	Err error
}

// ReconnectingMsg indicates reconnection in progress.
type ReconnectingMsg struct {
	Attempt  int
	MaxTries int
}

// ReconnectSuccessMsg indicates successful reconnection.
type ReconnectSuccessMsg struct{}

// DisconnectedMsg indicates the connection is gone for good.
type DisconnectedMsg struct{}

// newInput 命令输入框
func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 32
	ti.Width = 40
	ti.Focus()
	return ti
}

// screen 两种模式共用的界面状态
type screen struct {
	input  textinput.Model
	notice string
	err    string
	help   bool
	width  int
	height int
}

// update handles resize and text editing. It returns true and the line
// when Enter was pressed.
func (s *screen) update(msg tea.Msg) (line string, submitted bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		return "", false, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyEnter {
			line = s.input.Value()
			s.input.SetValue("")
			s.err = ""
			return line, true, nil
		}
	}
	s.input, cmd = s.input.Update(msg)
	return "", false, cmd
}
