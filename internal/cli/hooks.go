package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/trackhub/pkg/observability"
)

// logHooks reports render progress on the CLI logger.
type logHooks struct {
	logger *log.Logger
}

var _ observability.RenderHooks = logHooks{}

func newLogHooks(l *log.Logger) logHooks {
	return logHooks{logger: l}
}

func (h logHooks) OnRenderStart(_ context.Context, hub string) {
	h.logger.Debug("render started", "hub", hub)
}

func (h logHooks) OnValidate(_ context.Context, hub string, nodes int, err error) {
	if err != nil {
		h.logger.Warn("validation failed", "hub", hub, "nodes", nodes, "err", err)
		return
	}
	h.logger.Debug("validated", "hub", hub, "nodes", nodes)
}

func (h logHooks) OnFileWritten(_ context.Context, path string, size int) {
	h.logger.Debug("wrote", "path", path, "bytes", size)
}

func (h logHooks) OnRenderComplete(_ context.Context, hub string, files int, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "hub", hub, "files", files, "err", err)
		return
	}
	h.logger.Debug("render complete", "hub", hub, "files", files, "took", d.Round(time.Millisecond))
}
