package router

import (
	"github.com/imagegenhub/imagegenhub/internal/application"
	"github.com/imagegenhub/imagegenhub/internal/container"
	handlers "github.com/imagegenhub/imagegenhub/internal/interface/http"
	"github.com/imagegenhub/imagegenhub/internal/router/modules"
)

// InitModules builds the application services from the container singletons
// and registers all feature modules with the router registry. Called once at
// startup after the container is populated.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	notifier := container.GetNotifier()

	authSvc := application.NewAuthService(container.GetSessionRepo(), notifier, logger, cfg.MockAPIDelay)
	memeSvc := application.NewMemeService(container.GetMemeRepo(), authSvc, notifier, logger, cfg.MockAPIDelay)
	container.SetAuthService(authSvc)
	container.SetMemeService(memeSvc)

	authHandler := handlers.NewAuthHandler(authSvc, container.GetJWT(), logger, cfg.CookieDomain, cfg.CookieSecure)
	memeHandler := handlers.NewMemeHandler(memeSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewMemeModule(memeHandler, container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
