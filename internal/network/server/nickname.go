package server

import "math/rand/v2"

// 昵称词库
var (
	adjectives = []string{
		"Bold", "Quiet", "Lucky", "Sharp", "Patient",
		"Daring", "Steady", "Clever", "Sly", "Calm",
		"Brisk", "Crafty", "Wily", "Keen", "Nimble",
	}

	nouns = []string{
		"Finesse", "Squeeze", "Ruff", "Slam", "Trump",
		"Overtrick", "Sluff", "Coup", "Endplay", "Rubber",
		"Dummy", "Signal", "Honor", "Lead", "Double",
	}
)

// GenerateNickname 生成随机昵称，例如 "BoldFinesse"
func GenerateNickname() string {
	return adjectives[rand.IntN(len(adjectives))] + nouns[rand.IntN(len(nouns))]
}
