package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/and161185/paygate/internal/commission"
	"github.com/and161185/paygate/internal/config"
	"github.com/and161185/paygate/internal/deps"
	"github.com/and161185/paygate/internal/metrics"
	"github.com/and161185/paygate/internal/middleware"
	"github.com/and161185/paygate/internal/model"
	"github.com/and161185/paygate/internal/outbox"
	"github.com/and161185/paygate/internal/reconcile"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

type Storage interface {
	GetOrder(ctx context.Context, orderID string) (model.Order, error)
	UpdateOrderPayment(ctx context.Context, orderID string, status model.PaymentStatus, gatewayID string) error
	ConfirmOrderPayment(ctx context.Context, orderID string, gatewayID string, rcv model.Receivable) error

	ListReceivables(ctx context.Context, filter model.ReceivableFilter) ([]model.Receivable, error)
	UpdateReceivableAmounts(ctx context.Context, rcv model.Receivable) error

	Ping(ctx context.Context) error
}

type SettingsSource interface {
	GetPaymentSettings(ctx context.Context) (model.PaymentSettings, error)
}

type Server struct {
	storage    Storage
	settings   SettingsSource
	outbox     *outbox.Outbox
	reconciler *reconcile.Reconciler
	config     *config.Config
	deps       *deps.Deps
}

func NewServer(storage Storage, settings SettingsSource, ob *outbox.Outbox, config *config.Config, deps *deps.Deps) *Server {
	return &Server{
		storage:    storage,
		settings:   settings,
		outbox:     ob,
		reconciler: reconcile.New(storage, commission.DefaultTieredSchedule(), deps.Logger),
		config:     config,
		deps:       deps,
	}
}

func (srv *Server) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.LogMiddleware(srv.deps.Logger))
	router.Use(metrics.Middleware)
	router.Use(middleware.DecompressMiddleware)
	router.Use(middleware.CompressMiddleware(srv.deps.Logger))

	router.Post("/api/payment/notify", srv.PaymentNotifyHandler)
	router.Get("/api/payment/relay", srv.GatewayRelayHandler)
	router.Post("/api/payment/relay", srv.GatewayRelayHandler)
	router.Post("/api/admin/login", srv.LoginHandler)

	// admin endpoints behind a token
	router.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(srv.deps.TokenManager))

		r.Post("/api/admin/reconcile", srv.ReconcileHandler)
		r.Get("/api/admin/receivables", srv.GetReceivablesHandler)
		r.Post("/api/admin/settings/refresh", srv.SettingsRefreshHandler)
	})

	router.Method(http.MethodGet, "/metrics", metrics.Handler())
	router.Get("/ping", srv.PingHandler)

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	router := srv.buildRouter()

	server := &http.Server{
		Addr:    srv.config.RunAddress,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.deps.Logger.Fatalf("server error: %v", err)
		}
	}()

	go srv.outbox.Run(ctx, 3)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func (s *Server) PingHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.Ping(r.Context()); err != nil {
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) GetReceivablesHandler(w http.ResponseWriter, r *http.Request) {
	filter := model.ReceivableFilter{SellerID: r.URL.Query().Get("seller_id")}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Statuses = []model.ReceivableStatus{model.ReceivableStatus(status)}
	}

	entries, err := s.storage.ListReceivables(r.Context(), filter)
	if err != nil {
		http.Error(w, "failed to list receivables", http.StatusInternalServerError)
		return
	}

	if len(entries) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}
