package notify

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/avelora/shopfront/internal/config"
)

// Module exposes the notify client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.NotifyURL, p.Logger)
}
