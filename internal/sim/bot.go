package sim

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/palemoky/rubber-bridge/internal/network/client"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/network/protocol/codec"
)

// Bot 远程牌桌上的一个随机玩家
type Bot struct {
	Name string
	Seat string

	client  *client.Client
	chooser Chooser
	advance bool          // 计分后负责发起下一副
	delay   time.Duration // 每次动作前的停顿，避免触发服务端限流

	mu      sync.Mutex
	joined  chan string
	over    chan protocol.RubberOverPayload
	results []protocol.DealResultPayload
}

// NewBot wires a bot to c. The bot acts on every table_state that offers
// it legal calls or cards. When advance is set it also asks for the next
// deal after each scored deal that did not end the rubber.
func NewBot(c *client.Client, name, seat string, ch Chooser, advance bool, delay time.Duration) *Bot {
	b := &Bot{
		Name:    name,
		Seat:    seat,
		client:  c,
		chooser: ch,
		advance: advance,
		delay:   delay,
		joined:  make(chan string, 1),
		over:    make(chan protocol.RubberOverPayload, 1),
	}
	c.OnMessage = b.Handle
	return b
}

// Handle reacts to one server message.
func (b *Bot) Handle(msg *protocol.Message) {
	switch msg.Type {
	case protocol.MsgTableJoined:
		if p, err := codec.ParsePayload[protocol.TableJoinedPayload](msg); err == nil {
			select {
			case b.joined <- p.Code:
			default:
			}
		}

	case protocol.MsgTableState:
		p, err := codec.ParsePayload[protocol.TableStatePayload](msg)
		if err != nil {
			return
		}
		b.act(p)

	case protocol.MsgDealResult:
		p, err := codec.ParsePayload[protocol.DealResultPayload](msg)
		if err != nil {
			return
		}
		b.mu.Lock()
		b.results = append(b.results, *p)
		b.mu.Unlock()
		if b.advance && !p.RubberOver {
			b.pause()
			_ = b.client.NextDeal()
		}

	case protocol.MsgRubberOver:
		if p, err := codec.ParsePayload[protocol.RubberOverPayload](msg); err == nil {
			select {
			case b.over <- *p:
			default:
			}
		}

	case protocol.MsgError:
		if p, err := codec.ParsePayload[protocol.ErrorPayload](msg); err == nil {
			log.Printf("⚠️  %s(%s) 收到错误 %d: %s", b.Name, b.Seat, p.Code, p.Message)
		}

	default:
	}
}

func (b *Bot) act(st *protocol.TableStatePayload) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case len(st.LegalBids) > 0:
		b.pause()
		_ = b.client.Bid(b.chooser.ChooseBid(st.LegalBids))
	case len(st.LegalCards) > 0:
		b.pause()
		_ = b.client.PlayCard(b.chooser.ChooseCard(st.LegalCards))
	}
}

func (b *Bot) pause() {
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
}

// Results returns the deal results seen so far.
func (b *Bot) Results() []protocol.DealResultPayload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]protocol.DealResultPayload(nil), b.results...)
}

// RemoteOptions 远程模拟参数
type RemoteOptions struct {
	ServerURL string
	Seed      uint64
	Delay     time.Duration
}

// PlayRemote seats four bots at a new table on the server and waits until
// they finish one rubber.
func PlayRemote(ctx context.Context, opts RemoteOptions) (*protocol.RubberOverPayload, []protocol.DealResultPayload, error) {
	seats := []string{"N", "E", "S", "W"}
	bots := make([]*Bot, len(seats))
	for i, s := range seats {
		c := client.NewClient(opts.ServerURL)
		bots[i] = NewBot(c, "Bot-"+s, s, NewRandom(opts.Seed+uint64(i)), i == 0, opts.Delay)
		if err := c.Connect(); err != nil {
			closeBots(bots)
			return nil, nil, fmt.Errorf("connect %s: %w", s, err)
		}
	}
	defer closeBots(bots)

	if err := bots[0].client.CreateTable(bots[0].Seat, bots[0].Name); err != nil {
		return nil, nil, err
	}
	code, err := waitJoined(ctx, bots[0])
	if err != nil {
		return nil, nil, err
	}
	for _, b := range bots[1:] {
		if err := b.client.JoinTable(code, b.Seat, b.Name); err != nil {
			return nil, nil, err
		}
		if _, err := waitJoined(ctx, b); err != nil {
			return nil, nil, err
		}
	}
	for _, b := range bots {
		if err := b.client.Ready(); err != nil {
			return nil, nil, err
		}
	}

	select {
	case over := <-bots[0].over:
		return &over, bots[0].Results(), nil
	case <-ctx.Done():
		return nil, bots[0].Results(), ctx.Err()
	}
}

func waitJoined(ctx context.Context, b *Bot) (string, error) {
	select {
	case code := <-b.joined:
		return code, nil
	case <-ctx.Done():
		return "", fmt.Errorf("%s join: %w", b.Seat, ctx.Err())
	}
}

func closeBots(bots []*Bot) {
	for _, b := range bots {
		if b != nil {
			b.client.Close()
		}
	}
}
