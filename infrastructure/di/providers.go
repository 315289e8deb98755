package di

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"graphcanvas/application/editor"
	"graphcanvas/infrastructure/config"
	"graphcanvas/interfaces/ws"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.IsProduction() {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

// ProvideCanvasWatcher loads the canvas file and prepares hot reload
func ProvideCanvasWatcher(cfg *config.Config, logger *zap.Logger) (*config.CanvasWatcher, error) {
	return config.NewCanvasWatcher(cfg.CanvasPath, logger)
}

// ProvideHub creates the WebSocket event hub
func ProvideHub(logger *zap.Logger) *ws.Hub {
	return ws.NewHub(logger)
}

// ProvideHost builds the editor from the loaded canvas and wraps it in
// a host that serializes access for the HTTP and WebSocket surfaces
func ProvideHost(watcher *config.CanvasWatcher, hub *ws.Hub, logger *zap.Logger) (*editor.Host, error) {
	ed, err := BuildEditor(watcher.GetCurrent(), hub, logger)
	if err != nil {
		return nil, err
	}
	return editor.NewHost(ed), nil
}

// BuildEditor constructs a fresh editor for a canvas and subscribes the
// hub to its event stream. Used at startup and on every canvas reload.
func BuildEditor(canvas *config.CanvasConfig, hub *ws.Hub, logger *zap.Logger) (*editor.Editor, error) {
	registry, err := canvas.BuildRegistry()
	if err != nil {
		return nil, err
	}

	ed, err := editor.New(registry, logger, canvas.InteractionConfig())
	if err != nil {
		return nil, err
	}

	if hub != nil {
		ed.Subscribe(hub.EventHandler())
	}

	// Seed the canvas-defined starting nodes. A canvas that names an
	// unknown template or a bad field literal is rejected whole.
	for _, seed := range canvas.InitialNodes {
		nodeID, err := ed.AddNode(seed.Template, seed.X, seed.Y)
		if err != nil {
			return nil, fmt.Errorf("initial node %q: %w", seed.Template, err)
		}
		for field, literal := range seed.Fields {
			if err := ed.SetField(nodeID, field, literal); err != nil {
				return nil, fmt.Errorf("initial node %q field %q: %w", seed.Template, field, err)
			}
		}
		if seed.CanDelete != nil {
			if err := ed.SetDeletable(nodeID, *seed.CanDelete); err != nil {
				return nil, fmt.Errorf("initial node %q: %w", seed.Template, err)
			}
		}
		if seed.CanMove != nil {
			if err := ed.SetMovable(nodeID, *seed.CanMove); err != nil {
				return nil, fmt.Errorf("initial node %q: %w", seed.Template, err)
			}
		}
	}
	return ed, nil
}
