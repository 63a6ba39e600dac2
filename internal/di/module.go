package di

import (
	"go.uber.org/fx"

	"github.com/avelora/shopfront/internal/adapter/notify"
	"github.com/avelora/shopfront/internal/app"
	"github.com/avelora/shopfront/internal/config"
	"github.com/avelora/shopfront/internal/logger"
	"github.com/avelora/shopfront/internal/server/http/handlers"
	"github.com/avelora/shopfront/internal/server/http/router"
	"github.com/avelora/shopfront/internal/storage/postgres"
	"github.com/avelora/shopfront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		postgres.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(func(client notify.Client) app.TransitionNotifier { return client }),
		fx.Provide(func(facade *app.StorefrontFacade) handlers.StorefrontFacade { return facade }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
