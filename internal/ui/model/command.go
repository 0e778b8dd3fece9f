// Package model contains the UI model implementations.
package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/palemoky/rubber-bridge/internal/game/bid"
	"github.com/palemoky/rubber-bridge/internal/game/card"
)

// CommandKind 输入命令类型
type CommandKind int

const (
	CmdCall CommandKind = iota
	CmdCard
	CmdNext
	CmdHelp
	CmdQuit
	CmdCreate
	CmdJoin
	CmdList
	CmdReady
	CmdUnready
	CmdLeave
	CmdLeaderboard
)

// Command is one parsed input line.
type Command struct {
	Kind  CommandKind
	Token string // 叫品、牌、牌桌号、排行榜周期
	Seat  string
	Limit int
}

var ErrEmptyCommand = errors.New("empty command")

// ParseCommand reads one input line. Calls and cards are normalized to
// their upper-case wire form.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, ErrEmptyCommand
	}
	head := strings.ToLower(fields[0])
	args := fields[1:]

	switch head {
	case "next", "n":
		return Command{Kind: CmdNext}, nil
	case "help", "h", "?":
		return Command{Kind: CmdHelp}, nil
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, nil
	case "create":
		c := Command{Kind: CmdCreate}
		if len(args) > 0 {
			c.Seat = strings.ToUpper(args[0])
		}
		return c, nil
	case "join":
		if len(args) == 0 {
			return Command{}, fmt.Errorf("usage: join CODE [seat]")
		}
		c := Command{Kind: CmdJoin, Token: args[0]}
		if len(args) > 1 {
			c.Seat = strings.ToUpper(args[1])
		}
		return c, nil
	case "list", "ls":
		return Command{Kind: CmdList}, nil
	case "ready":
		return Command{Kind: CmdReady}, nil
	case "unready":
		return Command{Kind: CmdUnready}, nil
	case "leave":
		return Command{Kind: CmdLeave}, nil
	case "lb", "leaderboard":
		c := Command{Kind: CmdLeaderboard}
		if len(args) > 0 {
			switch p := strings.ToLower(args[0]); p {
			case "all", "daily", "weekly":
				c.Token = p
				args = args[1:]
			}
		}
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 || len(args) > 1 {
				return Command{}, fmt.Errorf("usage: lb [daily|weekly] [n]")
			}
			c.Limit = n
		}
		return c, nil
	}

	if len(fields) > 1 {
		return Command{}, fmt.Errorf("unknown command %q", line)
	}
	if b, err := bid.Parse(head); err == nil {
		return Command{Kind: CmdCall, Token: b.String()}, nil
	}
	if c, err := card.Parse(head); err == nil {
		return Command{Kind: CmdCard, Token: c.String()}, nil
	}
	return Command{}, fmt.Errorf("unknown command %q, type 'help'", line)
}
