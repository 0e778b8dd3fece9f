// Package ui provides the main entry point for the UI.
package ui

import (
	"github.com/palemoky/rubber-bridge/internal/game"
	"github.com/palemoky/rubber-bridge/internal/ui/model"
)

// NewLocalModel creates a hot-seat table for four players at one terminal.
func NewLocalModel(names [4]string, opts ...game.Option) *model.LocalModel {
	return model.NewLocalModel(names, opts...)
}

// NewOnlineModel creates a new OnlineModel for online game mode.
func NewOnlineModel(serverURL, name string) *model.OnlineModel {
	return model.NewOnlineModel(serverURL, name)
}
