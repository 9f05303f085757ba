package handlers

import (
	"net/http"
	"strings"
	"time"

	"matchup/internal/config"
	"matchup/internal/middleware"
	"matchup/internal/models"
	"matchup/internal/websocket"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	gorilla "github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	cfg        config.Config
	fields     FieldService
	matches    MatchService
	ledger     LedgerService
	promotions PromotionService
	hub        *websocket.Hub
	upgrader   gorilla.Upgrader
	logger     logrus.FieldLogger
	now        func() time.Time
}

func New(cfg config.Config, fields FieldService, matches MatchService, ledger LedgerService, promotions PromotionService, hub *websocket.Hub, logger logrus.FieldLogger) *Handler {
	return &Handler{
		cfg:        cfg,
		fields:     fields,
		matches:    matches,
		ledger:     ledger,
		promotions: promotions,
		hub:        hub,
		upgrader:   websocket.NewUpgrader(allowedOrigins(cfg.AllowedOrigins)),
		logger:     logger,
		now:        time.Now,
	}
}

func allowedOrigins(raw string) []string {
	var origins []string
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins(h.cfg.AllowedOrigins),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	router.Post("/session", h.CreateSession)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	organizer := middleware.RequireRole(models.RoleOrganizer)
	player := middleware.RequireRole(models.RolePlayer)
	manager := middleware.RequireRole(models.RoleFieldManager)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Session(h.cfg.SessionSecret))

		r.Get("/fields", h.ListFields)
		r.Get("/fields/{id}", h.GetField)
		r.Get("/matches", h.ListMatches)
		r.Get("/matches/{id}", h.GetMatch)
		r.With(organizer).Post("/matches", h.CreateMatch)
		r.With(player).Post("/matches/{id}/confirm", h.ConfirmMatch)
		r.With(organizer).Post("/matches/{id}/status", h.UpdateMatchStatus)

		r.With(manager).Get("/fields/{id}/wallet", h.GetWallet)
		r.With(manager).Get("/fields/{id}/payouts", h.ListPayouts)
		r.With(manager).Post("/fields/{id}/payouts", h.RequestPayout)
		r.With(manager).Get("/fields/{id}/ledger", h.ListLedger)
		r.With(manager).Post("/fields/{id}/promotions", h.CreatePromotion)
		r.With(manager).Post("/promotions/{id}/active", h.SetPromotionActive)
		r.Get("/promotions", h.ListPromotions)
		r.Get("/ads", h.ListAds)

		r.Get("/screens/{screen}", h.Screen)
		r.Get("/ws/events", h.WSEvents)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/wallets", h.AdminListWallets)
			r.Get("/payouts", h.AdminListPayouts)
			r.Post("/payouts/{id}/status", h.AdminTransitionPayout)
			r.Get("/audit", h.AdminListAudit)
			r.Get("/reconcile", h.AdminReconcile)
		})
	})
	return router
}
