package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	appsession "bonushunt/internal/app/session"
	appsite "bonushunt/internal/app/site"
	"bonushunt/internal/app/wallet"
	"bonushunt/internal/config"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Repository is everything the HTTP surface needs from the store.
// *store.Store satisfies it; the end-to-end tests plug in an in-memory fake.
type Repository interface {
	wallet.Store
	appsite.Store
	appsession.Store
	AdminStore
}

func NewRouter(repo Repository, led wallet.Ledger, cfg config.ServerConfig) *chi.Mux {
	walletSvc := wallet.NewService(repo, led)
	siteSvc := appsite.NewService(repo, cfg.LeaderboardMaxRows)
	sessionSvc := appsession.NewService(repo)

	walletHandlers := NewWalletHandlers(walletSvc)
	publicHandlers := NewPublicHandlers(siteSvc)
	sessionHandlers := NewSessionHandlers(sessionSvc)
	adminHandlers := NewAdminHandlers(repo, walletSvc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Use(CookieIdentityMiddleware())

		r.Get("/auth/session", sessionHandlers.Session())
		r.Get("/store/items", publicHandlers.StoreItems())
		r.Post("/store/purchase", walletHandlers.Purchase())
		r.Get("/raffles", publicHandlers.Raffles())
		r.Get("/raffles/{raffle_id}", publicHandlers.RaffleDetail())
		r.Post("/raffles/enter", walletHandlers.EnterRaffle())
		r.Get("/leaderboard", publicHandlers.Leaderboard())
		r.Get("/profile", publicHandlers.Profile())

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Post("/points/set", adminHandlers.SetPoints())
			r.Get("/redemptions", adminHandlers.Redemptions())
			r.Post("/redemptions/{redemption_id}/status", adminHandlers.RedemptionStatus())
			r.Get("/ledger", adminHandlers.Ledger())
			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})

	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 16)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
