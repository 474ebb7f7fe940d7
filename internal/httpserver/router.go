package httpserver

import (
	"net/http"

	"vt-tradesim/internal/accounts"
	"vt-tradesim/internal/assets"
	"vt-tradesim/internal/copytrading"
	"vt-tradesim/internal/education"
	"vt-tradesim/internal/signals"
	"vt-tradesim/internal/subscriptions"
	"vt-tradesim/internal/traders"
	"vt-tradesim/internal/trading"
	"vt-tradesim/internal/wallets"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RouterDeps struct {
	AccountsHandler     *accounts.Handler
	AssetsHandler       *assets.Handler
	TradersHandler      *traders.Handler
	SignalsHandler      *signals.Handler
	TradingHandler      *trading.Handler
	SubscriptionHandler *subscriptions.Handler
	CopyTradeHandler    *copytrading.Handler
	WalletsHandler      *wallets.Handler
	EducationHandler    *education.Handler
	PriceWSHandler      http.Handler
	Logger              *zap.Logger
	RateLimitRPS        float64
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(CORS)
	r.Use(SecurityHeaders)
	r.Use(RequestID)
	r.Use(RequestLogger(d.Logger))
	r.Use(RateLimit(d.RateLimitRPS))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Route("/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", d.AccountsHandler.Create)
			r.Get("/", d.AccountsHandler.List)
			r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.AccountsHandler.Get(w, r, chi.URLParam(r, "id"))
			})
			r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.AccountsHandler.Update(w, r, chi.URLParam(r, "id"))
			})
		})
		r.Route("/assets", func(r chi.Router) {
			r.Post("/", d.AssetsHandler.Create)
			r.Get("/", d.AssetsHandler.List)
			r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.AssetsHandler.Get(w, r, chi.URLParam(r, "id"))
			})
			r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.AssetsHandler.Update(w, r, chi.URLParam(r, "id"))
			})
			r.Post("/{id}/price", func(w http.ResponseWriter, r *http.Request) {
				d.AssetsHandler.UpdatePrice(w, r, chi.URLParam(r, "id"))
			})
			r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.AssetsHandler.Delete(w, r, chi.URLParam(r, "id"))
			})
		})
		r.Route("/traders", func(r chi.Router) {
			r.Post("/", d.TradersHandler.Create)
			r.Get("/", d.TradersHandler.List)
			r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.TradersHandler.Get(w, r, chi.URLParam(r, "id"))
			})
			r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.TradersHandler.Update(w, r, chi.URLParam(r, "id"))
			})
		})
		r.Route("/signals", func(r chi.Router) {
			r.Post("/", d.SignalsHandler.Create)
			r.Get("/", d.SignalsHandler.List)
			r.Get("/active", d.SignalsHandler.ListActive)
			r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.SignalsHandler.Get(w, r, chi.URLParam(r, "id"))
			})
			r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.SignalsHandler.Update(w, r, chi.URLParam(r, "id"))
			})
			r.Delete("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.SignalsHandler.Deactivate(w, r, chi.URLParam(r, "id"))
			})
		})
		r.Route("/trades", func(r chi.Router) {
			r.Post("/", d.TradingHandler.Execute)
			r.Get("/", d.TradingHandler.ListByUser)
			r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.TradingHandler.Get(w, r, chi.URLParam(r, "id"))
			})
			r.Post("/{id}/close", func(w http.ResponseWriter, r *http.Request) {
				d.TradingHandler.Close(w, r, chi.URLParam(r, "id"))
			})
		})
		r.Route("/subscriptions", func(r chi.Router) {
			r.Post("/", d.SubscriptionHandler.Create)
			r.Get("/", d.SubscriptionHandler.ListBySubscriber)
		})
		r.Route("/copy-trades", func(r chi.Router) {
			r.Post("/", d.CopyTradeHandler.Copy)
			r.Get("/", d.CopyTradeHandler.ListBySubscriber)
		})
		r.Route("/wallets", func(r chi.Router) {
			r.Post("/fund", d.WalletsHandler.Fund)
			r.Get("/", d.WalletsHandler.ListByUser)
		})
		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", d.WalletsHandler.CreateTransaction)
			r.Get("/", d.WalletsHandler.ListTransactions)
		})
		r.Route("/education", func(r chi.Router) {
			r.Post("/", d.EducationHandler.Create)
			r.Get("/", d.EducationHandler.List)
			r.Get("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.EducationHandler.Get(w, r, chi.URLParam(r, "id"))
			})
			r.Put("/{id}", func(w http.ResponseWriter, r *http.Request) {
				d.EducationHandler.Update(w, r, chi.URLParam(r, "id"))
			})
		})
		r.Get("/prices/ws", d.PriceWSHandler.ServeHTTP)
	})
	return r
}
