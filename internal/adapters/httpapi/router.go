package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/souraizuni/ffxiv-best-craft/internal/app"
	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
	"github.com/souraizuni/ffxiv-best-craft/internal/validation"
)

type Server struct {
	logger    zerolog.Logger
	settings  *app.SettingsService
	bus       ports.EventBus
	validator *validation.Validator

	// allowedOrigins: front-end web servi depuis un autre domaine (vide = pas de CORS).
	allowedOrigins []string
}

func NewServer(logger zerolog.Logger, settings *app.SettingsService, bus ports.EventBus, allowedOrigins []string) *Server {
	return &Server{
		logger:         logger,
		settings:       settings,
		bus:            bus,
		validator:      validation.New(),
		allowedOrigins: allowedOrigins,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hlog.NewHandler(s.logger))
	r.Use(hlog.RequestIDHandler("request_id", "Request-Id"))
	r.Use(hlog.RemoteAddrHandler("remote_ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(accessLogFn))
	if len(s.allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPut, http.MethodPatch, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Accept-Language", "Content-Type"},
			ExposedHeaders: []string{"Request-Id"},
			MaxAge:         300,
		}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Pas de timeout sur le flux SSE.
		r.Get("/events", s.handleEvents)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(defaultRequestTimeout))

			r.Get("/health", s.handleHealth)
			r.Get("/version", s.handleVersion)
			r.Get("/openapi.json", s.handleOpenAPI)

			if s.settings != nil {
				NewSettingsHandler(s.settings, s.validator).Routes(r)
				NewDataSourceHandler(s.settings).Routes(r)
			}
		})
	})

	return r
}
