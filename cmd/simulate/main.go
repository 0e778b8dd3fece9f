package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/pterm/pterm"

	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/game/score"
	"github.com/palemoky/rubber-bridge/internal/network/protocol"
	"github.com/palemoky/rubber-bridge/internal/sim"
)

const maxDeals = 200

func main() {
	rubbers := flag.Int("rubbers", 1, "模拟的盘数")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "随机种子")
	server := flag.String("server", "", "服务器地址，非空时四个机器人在服务器上打一盘")
	delay := flag.Duration("delay", 0, "远程模式下每个动作的间隔")
	flag.Parse()

	handler := pterm.NewSlogHandler(&pterm.DefaultLogger)
	logger := slog.New(handler)

	if *server != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := remote(ctx, logger, *server, *seed, *delay); err != nil {
			logger.Error("remote rubber failed", "error", err)
			os.Exit(1)
		}
		return
	}

	wins := map[string]int{}
	deals := 0
	for i := range *rubbers {
		s := *seed + uint64(i)
		rng := sim.NewRandom(s)
		g := game.New(game.WithShuffler(rng))
		rep, err := sim.PlayRubber(g, rng, maxDeals)
		if err != nil {
			logger.Error("rubber failed", "rubber", i+1, "seed", s, "error", err)
			os.Exit(1)
		}
		logger.Info("rubber finished", "rubber", i+1, "seed", s, "deals", len(rep.Deals), "passed_out", rep.PassedOut, "winner", rep.Winner)
		if *rubbers == 1 {
			printDeals(logger, rep.Deals)
			printScores(logger, rep.Scores)
		}
		wins[rep.Winner]++
		deals += len(rep.Deals)
	}

	if *rubbers > 1 {
		render(logger, pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
			{"Rubbers", "NS wins", "EW wins", "Ties", "Avg deals"},
			{
				fmt.Sprint(*rubbers), fmt.Sprint(wins["NS"]), fmt.Sprint(wins["EW"]), fmt.Sprint(wins[""]),
				fmt.Sprintf("%.2f", float64(deals)/float64(*rubbers)),
			},
		}))
	}
}

// renderer is a pterm printer that renders in one call.
type renderer interface {
	Render() error
}

// render prints r and logs a failure instead of aborting the run.
func render(logger *slog.Logger, r renderer) {
	if err := r.Render(); err != nil {
		logger.Error("render table failed", "error", err)
	}
}

func printDeals(logger *slog.Logger, deals []game.DealResult) {
	data := pterm.TableData{{"#", "Dealer", "Contract", "Tricks", "Result", "Points"}}
	for _, d := range deals {
		result := pterm.LightGreen("made")
		if !d.Made() {
			result = pterm.LightRed("down")
		}
		data = append(data, []string{
			fmt.Sprint(d.Number), d.Dealer.String(), d.Contract.String(),
			fmt.Sprint(d.DeclarerTricks()), result, fmt.Sprintf("%+d", d.Points),
		})
	}
	render(logger, pterm.DefaultTable.WithHasHeader().WithData(data))
}

func printScores(logger *slog.Logger, s *score.Score) {
	render(logger, pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		score.Columns, s.NS.Row(), s.EW.Row(),
	}))
}

func remote(ctx context.Context, logger *slog.Logger, addr string, seed uint64, delay time.Duration) error {
	url := fmt.Sprintf("ws://%s/ws", addr)
	logger.Info("seating bots", "server", url, "seed", seed)

	over, results, err := sim.PlayRemote(ctx, sim.RemoteOptions{ServerURL: url, Seed: seed, Delay: delay})
	if err != nil {
		return err
	}

	data := pterm.TableData{{"#", "Contract", "NS", "EW", "Points"}}
	for _, r := range results {
		data = append(data, []string{
			fmt.Sprint(r.Number), r.Contract.Text, fmt.Sprint(r.TricksNS), fmt.Sprint(r.TricksEW), fmt.Sprintf("%+d", r.Points),
		})
	}
	render(logger, pterm.DefaultTable.WithHasHeader().WithData(data))
	render(logger, pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"Team", "Rubber", "Slam", "Overtricks", "Penalty", "Sum"},
		teamRow(over.Scores.NS), teamRow(over.Scores.EW),
	}))

	logger.Info("rubber finished", "winner", over.Winner, "deals", len(results))
	return nil
}

func teamRow(t protocol.TeamScoreInfo) []string {
	return []string{
		t.Name, fmt.Sprint(t.Rubber), fmt.Sprint(t.Slam), fmt.Sprint(t.Overtricks), fmt.Sprint(t.Penalty), fmt.Sprint(t.Total),
	}
}
