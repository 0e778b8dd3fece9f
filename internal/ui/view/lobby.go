package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/ui/common"
)

// LocalHelp lists the commands of the hot-seat client.
const LocalHelp = `Commands:
  1C..7NT, PASS, X, XX   make a call
  SA, HT, D2 ...         play a card (declarer also plays dummy's cards)
  next                   continue after a scored deal
  help                   show this help
  quit                   leave`

// OnlineHelp lists the commands of the online client.
const OnlineHelp = `Commands:
  create [seat]          open a table and sit down (seat N/E/S/W)
  join CODE [seat]       sit at a table
  list                   tables with a free seat
  ready / unready        toggle ready; the rubber starts when all four are ready
  leave                  stand up
  lb [daily|weekly] [n]  leaderboard
  1C..7NT, PASS, X, XX   make a call
  SA, HT, D2 ...         play a card
  next                   continue after a scored deal
  quit                   disconnect`

// TableList renders the open tables.
func TableList(items []protocol.TableListItem) string {
	if len(items) == 0 {
		return common.GrayStyle.Render("No open tables. Type 'create' to open one.")
	}
	t := table.New().Border(lipgloss.RoundedBorder()).Headers("Table", "Players", "Phase")
	for _, it := range items {
		t.Row(it.Code, fmt.Sprintf("%d/4", it.Players), it.Phase)
	}
	return t.String()
}

// Leaderboard renders the leaderboard entries.
func Leaderboard(entries []protocol.LeaderboardEntry) string {
	if len(entries) == 0 {
		return common.GrayStyle.Render("Leaderboard is empty.")
	}
	t := table.New().Border(lipgloss.RoundedBorder()).Headers("#", "Player", "Score", "Rubbers", "Wins", "Win %")
	for _, e := range entries {
		t.Row(
			fmt.Sprint(e.Rank),
			common.TruncateName(e.PlayerName, 16),
			fmt.Sprint(e.Score),
			fmt.Sprint(e.Rubbers),
			fmt.Sprint(e.Wins),
			fmt.Sprintf("%.0f", e.WinRate),
		)
	}
	return t.String()
}

// Seats renders who sits where while a table waits for its rubber.
func Seats(code string, players []protocol.SeatInfo) string {
	var sb strings.Builder
	sb.WriteString(common.TitleStyle("🃏 Table " + code))
	sb.WriteString("\n")
	for _, abbr := range seats {
		line := fmt.Sprintf("%-6s ", common.SeatName(abbr))
		name := common.GrayStyle.Render("(empty)")
		for _, p := range players {
			if p.Seat != abbr || p.PlayerID == "" {
				continue
			}
			name = p.Name
			if p.Ready {
				name += " ✅"
			}
		}
		sb.WriteString("\n" + line + name)
	}
	return common.BoxStyle.Render(sb.String())
}
