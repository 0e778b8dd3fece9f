// Package view renders table states for the terminal client.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/palemoky/rubber-bridge/internal/game/card"
	"github.com/palemoky/rubber-bridge/internal/game/score"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/ui/common"
)

// seats 顺时针，下标与 HandSizes 一致
var seats = []string{"N", "E", "S", "W"}

const placeholder = "?"

// HandLines renders cards one suit per line, spades first.
func HandLines(cards []string) []string {
	bySuit := make(map[card.Suit][]string, 4)
	for _, s := range cards {
		c, err := card.Parse(s)
		if err != nil {
			continue
		}
		bySuit[c.Suit] = append(bySuit[c.Suit], c.Rank.String())
	}

	lines := make([]string, 0, len(card.DisplayOrder))
	for _, suit := range card.DisplayOrder {
		ranks := "-"
		if r := bySuit[suit]; len(r) > 0 {
			ranks = strings.Join(r, " ")
		}
		lines = append(lines, common.SuitStyle(suit, suit.Symbol())+" "+ranks)
	}
	return lines
}

// Card renders one card with its suit glyph, e.g. ♠A.
func Card(s string) string {
	c, err := card.Parse(s)
	if err != nil {
		return s
	}
	return common.SuitStyle(c.Suit, c.Suit.Symbol()+c.Rank.String())
}

// AuctionRows lays the calls out in rows of four, the first column being
// the dealer. While the auction runs the next call is marked with "?".
func AuctionRows(dealer string, calls []protocol.CallInfo, running bool) (header []string, rows [][]string) {
	start := 0
	for i, s := range seats {
		if s == dealer {
			start = i
		}
	}
	for i := range seats {
		header = append(header, common.SeatName(seats[(start+i)%4]))
	}

	cells := make([]string, 0, len(calls)+1)
	for _, c := range calls {
		cells = append(cells, c.Bid)
	}
	if running {
		cells = append(cells, placeholder)
	}
	for i := 0; i < len(cells); i += 4 {
		row := make([]string, 4)
		copy(row, cells[i:min(i+4, len(cells))])
		rows = append(rows, row)
	}
	return header, rows
}

// Auction renders the bidding grid.
func Auction(st *protocol.TableStatePayload) string {
	header, rows := AuctionRows(st.Dealer, st.Calls, st.Phase == "auction")
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(header...).
		Rows(rows...).
		String()
}

// Scores renders the rubber score sheet.
func Scores(s protocol.ScoresInfo) string {
	row := func(t protocol.TeamScoreInfo) []string {
		cells := []string{t.Name}
		for i := range score.GamesPerRubber {
			p := 0
			if i < len(t.GamePoints) {
				p = t.GamePoints[i]
			}
			cells = append(cells, fmt.Sprint(p))
		}
		for _, v := range []int{t.Rubber, t.Slam, t.Overtricks, t.Penalty, t.Total} {
			cells = append(cells, fmt.Sprint(v))
		}
		if t.Vulnerable {
			cells[0] += " (vul)"
		}
		return cells
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(score.Columns...).
		Row(row(s.NS)...).
		Row(row(s.EW)...).
		String()
}

// Trick renders the cards on the table, in play order.
func Trick(trick []protocol.PlayedCardInfo) string {
	if len(trick) == 0 {
		return common.GrayStyle.Render("(no cards played)")
	}
	parts := make([]string, len(trick))
	for i, p := range trick {
		parts[i] = p.Seat + " " + Card(p.Card)
	}
	return strings.Join(parts, "  ")
}

func seatIndex(abbr string) int {
	for i, s := range seats {
		if s == abbr {
			return i
		}
	}
	return -1
}

func playerName(st *protocol.TableStatePayload, abbr string) string {
	for _, p := range st.Players {
		if p.Seat == abbr && p.Name != "" {
			return common.TruncateName(p.Name, 12)
		}
	}
	return ""
}

// seatBlock 单个座位：名字与可见的手牌
func seatBlock(st *protocol.TableStatePayload, abbr string) string {
	label := common.SeatName(abbr)
	if name := playerName(st, abbr); name != "" {
		label += " · " + name
	}
	if abbr == st.Dummy {
		label += " (dummy)"
	}
	if st.Contract != nil && abbr == st.Contract.Declarer {
		label += " (declarer)"
	}
	if abbr == st.Turn && (st.Phase == "auction" || st.Phase == "play") {
		label = common.TurnStyle.Render("▶ " + label)
	}

	var body []string
	switch {
	case abbr == st.Seat:
		body = HandLines(st.Hand)
	case abbr == st.Dummy && len(st.DummyHand) > 0:
		body = HandLines(st.DummyHand)
	default:
		n := 0
		if i := seatIndex(abbr); i >= 0 && i < len(st.HandSizes) {
			n = st.HandSizes[i]
		}
		body = []string{common.GrayStyle.Render(fmt.Sprintf("%d cards", n))}
	}
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{label}, body...)...)
}

// Header returns the one-line summary above the table.
func Header(st *protocol.TableStatePayload) string {
	parts := []string{"🃏 Table " + st.Code}
	if st.DealNumber > 0 {
		parts = append(parts, fmt.Sprintf("Deal %d", st.DealNumber))
	}
	if st.Dealer != "" {
		parts = append(parts, "Dealer "+common.SeatName(st.Dealer))
	}
	if st.Contract != nil {
		parts = append(parts, "Contract "+st.Contract.Text)
	}
	if st.Phase == "play" {
		parts = append(parts, fmt.Sprintf("Tricks NS %d · EW %d", st.TricksNS, st.TricksEW))
	}
	return common.TitleStyle(strings.Join(parts, " · "))
}

// Status tells the viewing seat what it may do next.
func Status(st *protocol.TableStatePayload) string {
	switch {
	case len(st.LegalBids) > 0:
		return common.TurnStyle.Render("Your call: ") + strings.Join(st.LegalBids, " ")
	case len(st.LegalCards) > 0:
		who := "Your play: "
		if st.Turn != st.Seat {
			who = "Play from dummy: "
		}
		return common.TurnStyle.Render(who) + strings.Join(st.LegalCards, " ")
	}

	switch st.Phase {
	case "display_score":
		return common.NoticeStyle.Render("Deal over. Type 'next' for the next deal.")
	case "game_over":
		return common.NoticeStyle.Render("Rubber over. Type 'next' to start a new rubber.")
	case "deal_cards":
		return common.GrayStyle.Render("Dealing…")
	}
	return common.GrayStyle.Render("Waiting for " + common.SeatName(st.Controller))
}

// Table renders the whole table as seen from st.Seat.
func Table(st *protocol.TableStatePayload, width int) string {
	center := func(s string) string {
		if width <= 0 {
			return s
		}
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
	}

	middle := lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.NewStyle().Width(24).Render(seatBlock(st, "W")),
		common.BoxStyle.Width(30).Align(lipgloss.Center).Render(Trick(st.Trick)),
		lipgloss.NewStyle().PaddingLeft(2).Width(26).Render(seatBlock(st, "E")),
	)

	var sb strings.Builder
	sb.WriteString(center(Header(st)))
	sb.WriteString("\n\n")
	sb.WriteString(center(seatBlock(st, "N")))
	sb.WriteString("\n\n")
	sb.WriteString(center(middle))
	sb.WriteString("\n\n")
	sb.WriteString(center(seatBlock(st, "S")))
	sb.WriteString("\n\n")
	if st.LastTrick != nil && st.Phase == "play" && len(st.Trick) == 0 {
		sb.WriteString(center(common.GrayStyle.Render("Last trick: ") + Trick(st.LastTrick.Cards) + " → " + st.LastTrick.Winner))
		sb.WriteString("\n\n")
	}
	sb.WriteString(center(lipgloss.JoinHorizontal(lipgloss.Top, Auction(st), "  ", Scores(st.Scores))))
	sb.WriteString("\n\n")
	sb.WriteString(center(Status(st)))
	return sb.String()
}
