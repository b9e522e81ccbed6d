package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/and161185/paygate/internal/model"
	"golang.org/x/crypto/bcrypt"
)

func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds model.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if creds.Login == "" || creds.Password == "" {
		http.Error(w, "login and password required", http.StatusBadRequest)
		return
	}

	if s.config.AdminLogin == "" || creds.Login != s.config.AdminLogin {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.config.AdminPasswordHash), []byte(creds.Password)); err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := s.deps.TokenManager.GenerateToken(creds.Login, "admin")
	if err != nil {
		http.Error(w, "token error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", "Bearer "+token)
	w.WriteHeader(http.StatusOK)
}

// ReconcileHandler runs the batch correction pass over receivables,
// the same pure calculator the webhook path uses.
func (s *Server) ReconcileHandler(w http.ResponseWriter, r *http.Request) {
	var req model.ReconcileRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
	}

	filter := model.ReceivableFilter{SellerID: req.SellerID}
	for _, st := range req.Statuses {
		filter.Statuses = append(filter.Statuses, model.ReceivableStatus(st))
	}

	report, err := s.reconciler.Run(r.Context(), filter, req.DryRun)
	if err != nil {
		s.deps.Logger.Errorf("reconcile: %v", err)
		http.Error(w, "reconcile failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}

type settingsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// SettingsRefreshHandler drops the cached settings document so the next
// webhook reads fresh configuration. A no-op without a cache.
func (s *Server) SettingsRefreshHandler(w http.ResponseWriter, r *http.Request) {
	cache, ok := s.settings.(settingsInvalidator)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := cache.Invalidate(r.Context()); err != nil {
		s.deps.Logger.Errorf("invalidate settings cache: %v", err)
		http.Error(w, "cache error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
