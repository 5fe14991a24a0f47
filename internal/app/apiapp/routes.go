package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jordanhale/emberline/internal/config"
	discoverysvc "github.com/jordanhale/emberline/internal/services/discovery"
	likessvc "github.com/jordanhale/emberline/internal/services/likes"
	matchessvc "github.com/jordanhale/emberline/internal/services/matches"
	sessionsvc "github.com/jordanhale/emberline/internal/services/sessions"
	"github.com/jordanhale/emberline/internal/transport/http/handlers"
)

type Dependencies struct {
	SessionService   *sessionsvc.Service
	DiscoveryService *discoverysvc.Service
	LikeService      *likessvc.Service
	MatchService     *matchessvc.Service
	Logger           *zap.Logger
	Config           config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	sessionHandler := handlers.NewSessionHandler(deps.SessionService)
	browseHandler := handlers.NewBrowseHandler(deps.DiscoveryService)
	likesHandler := handlers.NewLikesHandler(deps.LikeService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	blocksHandler := handlers.NewBlocksHandler(deps.MatchService)

	authMW := SessionAuthMiddleware(deps.SessionService, deps.Logger)

	r.Get("/healthz", healthHandler.Get)
	r.Post("/session", sessionHandler.Open)
	r.With(authMW).Post("/session/close", sessionHandler.Close)

	r.Route("/browse", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/next", browseHandler.Next)
		r.Post("/pass", browseHandler.Pass)
		r.Post("/refresh", browseHandler.Refresh)
	})

	r.Route("/likes", func(r chi.Router) {
		r.Use(authMW)
		r.Post("/", likesHandler.Create)
		r.Get("/incoming", likesHandler.Incoming)
		r.Post("/respond", likesHandler.Respond)
	})

	r.Route("/matches", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", matchesHandler.List)
		r.Post("/unmatch", matchesHandler.Unmatch)
	})

	r.Route("/blocks", func(r chi.Router) {
		r.Use(authMW)
		r.Get("/", blocksHandler.List)
		r.Post("/", blocksHandler.Create)
		r.Post("/remove", blocksHandler.Remove)
	})
}
