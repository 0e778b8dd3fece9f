package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/rubber-bridge/internal/logger"
	"github.com/palemoky/rubber-bridge/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:1780", "服务器地址")
	name := flag.String("name", "", "昵称，为空由服务器分配")
	local := flag.Bool("local", false, "本地四人轮流模式，不连接服务器")
	names := flag.String("names", "North,East,South,West", "本地模式下 N/E/S/W 的玩家名，逗号分隔")
	flag.Parse()

	if err := logger.Init("client"); err != nil {
		log.Printf("日志初始化失败: %v", err)
	}
	defer logger.Close()

	var model tea.Model
	if *local {
		var seats [4]string
		for i, n := range strings.SplitN(*names, ",", 4) {
			seats[i] = strings.TrimSpace(n)
		}
		model = ui.NewLocalModel(seats)
	} else {
		model = ui.NewOnlineModel(fmt.Sprintf("ws://%s/ws", *serverAddr), *name)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
