package di

import (
	"go.uber.org/zap"

	"graphcanvas/application/editor"
	"graphcanvas/infrastructure/config"
	"graphcanvas/interfaces/ws"
)

// Container holds all application dependencies
type Container struct {
	Config  *config.Config
	Logger  *zap.Logger
	Watcher *config.CanvasWatcher
	Hub     *ws.Hub
	Host    *editor.Host
}
