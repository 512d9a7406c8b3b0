package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/lidersalinas/ranking-padel-api/internal/api/handler"
	"github.com/lidersalinas/ranking-padel-api/internal/auth"
	"github.com/lidersalinas/ranking-padel-api/internal/cache"
	"github.com/lidersalinas/ranking-padel-api/internal/config"
	"github.com/lidersalinas/ranking-padel-api/internal/db"
	"github.com/lidersalinas/ranking-padel-api/internal/ladder"
	"github.com/lidersalinas/ranking-padel-api/internal/push"
	"github.com/lidersalinas/ranking-padel-api/internal/store/postgres"
)

// Deps bundles everything the router needs.
type Deps struct {
	Pool    *db.Pool
	Store   *postgres.Store
	Service *ladder.Service
	Push    *push.Store
	Auth    *auth.Service
	Cache   *cache.Cache
	Config  *config.Config
	Logger  *slog.Logger
}

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   d.Config.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Authorization", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if d.Config.RateLimitEnabled {
		r.Use(RateLimitMiddleware(d.Config.RateLimitRequests, d.Config.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(d.Service, d.Store, d.Push, d.Auth, d.Cache, d.Pool, d.Config, d.Logger)
	requireSession := AuthMiddleware(d.Auth)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// Auth
	r.Route("/auth", func(r chi.Router) {
		r.Post("/login-link", h.RequestLoginLink)
		r.Post("/sesion", h.RedeemLoginLink)
		r.With(requireSession).Get("/me", h.Me)
	})

	// Challenges
	r.Route("/desafios", func(r chi.Router) {
		// Public reads
		r.Get("/proximos", h.ListUpcomingChallenges)
		r.Get("/pareja/{id}", h.ListChallengesByPair)
		r.Get("/{id}/publico", h.GetChallengePublic)

		// Participant operations
		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Get("/mis-proximos", h.ListMyUpcomingChallenges)
			r.Get("/mis-desafios", h.ListMyChallenges)
			r.Get("/{id}", h.GetChallenge)
			r.Post("/", h.CreateChallenge)
			r.Post("/{id}/aceptar", h.AcceptChallenge)
			r.Post("/{id}/rechazar", h.RejectChallenge)
			r.Post("/{id}/reprogramar", h.RescheduleChallenge)
			r.Post("/{id}/resultado", h.SubmitResult)
		})
	})

	// Pairs
	r.Route("/parejas", func(r chi.Router) {
		r.Get("/", h.ListPairs)
		r.Get("/ranking/{grupo}", h.GroupRanking)
		r.Get("/cards", h.PairCards)
		r.Get("/{id}/historial", h.PairHistory)
		r.Get("/{id}/detalle", h.PairDetail)

		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Get("/desafiables", h.ListChallengeable)
			r.Post("/registrar", h.RegisterPair)
		})
	})

	// Players
	r.Route("/jugadores", func(r chi.Router) {
		r.Get("/", h.ListPlayers)
		r.Get("/{id}/detalle", h.PlayerDetail)
	})

	// Ranking
	r.Get("/ranking/posiciones", h.RankingPositions)

	// Push
	r.Route("/push", func(r chi.Router) {
		r.Post("/send-to-jugador", h.SendTestPushToPlayer)

		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Post("/token", h.RegisterPushToken)
			r.Delete("/token", h.UnregisterPushToken)
			r.Post("/send-to-me", h.SendTestPushToMe)
		})
	})

	return r
}
