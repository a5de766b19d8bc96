package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/tendercraft/tender-cli/internal/analyze"
	"github.com/tendercraft/tender-cli/internal/bid"
	"github.com/tendercraft/tender-cli/internal/model"
	"github.com/tendercraft/tender-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		analyzer, err := initAnalyzer()
		if err != nil {
			return err
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		api := &apiServer{
			analyzer: analyzer,
			engine:   bid.New(bidEngineConfig()),
			store:    st,
			limiter:  rate.NewLimiter(rate.Limit(cfg.Server.RatePerSecond), cfg.Server.RateBurst),
			origins:  cfg.Server.AllowedOrigins,
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           api.router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

type apiServer struct {
	analyzer *analyze.Analyzer
	engine   *bid.Engine
	store    store.Store
	limiter  *rate.Limiter
	origins  []string
}

func (s *apiServer) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(s.rateLimit)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze-boq", s.handleAnalyze)
		r.Get("/analyses", s.handleListAnalyses)
		r.Get("/analyses/{id}", s.handleGetAnalysis)
		r.Delete("/analyses/{id}", s.handleDeleteAnalysis)
		r.Post("/bid-recommendation", s.handleBidRecommendation)
		r.Get("/history", s.handleListHistory)
		r.Post("/history", s.handleAddHistory)
	})

	return r
}

func (s *apiServer) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *apiServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyze.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.URL.Query().Get("save") == "true" {
		if err := s.store.SaveAnalysis(r.Context(), result); err != nil {
			writeError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *apiServer) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	list, err := s.store.ListAnalyses(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []store.AnalysisSummary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *apiServer) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	analysis, err := s.store.GetAnalysis(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *apiServer) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAnalysis(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *apiServer) handleBidRecommendation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Project model.BidProject      `json:"project"`
		History []model.HistoricalBid `json:"history,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	history := req.History
	if len(history) == 0 {
		h, err := s.store.ListBids(r.Context(), store.HistoryFilter{Limit: 1000})
		if err != nil {
			writeError(w, err)
			return
		}
		history = h
	}

	rec, err := s.engine.Recommend(req.Project, history, time.Now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *apiServer) handleListHistory(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	bids, err := s.store.ListBids(r.Context(), store.HistoryFilter{
		Category: r.URL.Query().Get("category"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if bids == nil {
		bids = []model.HistoricalBid{}
	}
	writeJSON(w, http.StatusOK, bids)
}

func (s *apiServer) handleAddHistory(w http.ResponseWriter, r *http.Request) {
	var hb model.HistoricalBid
	if err := json.NewDecoder(r.Body).Decode(&hb); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if hb.Category == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "category is required"})
		return
	}

	added, err := s.store.AddBid(r.Context(), hb)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, added)
}

func pagination(r *http.Request) (limit, offset int) {
	limit = 50
	if v := r.URL.Query().Get("limit"); v != "" {
		fmt.Sscanf(v, "%d", &limit)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		fmt.Sscanf(v, "%d", &offset)
	}
	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrNoMatchFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrInsufficientHistory):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		zap.L().Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
