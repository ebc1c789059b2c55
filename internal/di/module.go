package di

import (
	"go.uber.org/fx"

	"github.com/kahenya/duka/internal/adapter/daraja"
	"github.com/kahenya/duka/internal/adapter/mailer"
	"github.com/kahenya/duka/internal/app"
	"github.com/kahenya/duka/internal/config"
	"github.com/kahenya/duka/internal/logger"
	"github.com/kahenya/duka/internal/pkg/auth"
	"github.com/kahenya/duka/internal/server/http/handlers"
	"github.com/kahenya/duka/internal/server/http/router"
	"github.com/kahenya/duka/internal/storage/postgres"
	"github.com/kahenya/duka/internal/storage/redis"
	"github.com/kahenya/duka/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		daraja.Module,
		mailer.Module,
		usecase.Module,
		fx.Provide(func(f *app.StoreFacade) handlers.StoreFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
