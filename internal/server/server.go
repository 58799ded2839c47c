// Package server exposes the board as a small read/toggle HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	apperrors "github.com/vsukhanov/tracker/internal/errors"
	"github.com/vsukhanov/tracker/internal/ledger"
	"github.com/vsukhanov/tracker/internal/logger"
	"github.com/vsukhanov/tracker/internal/models"
	"github.com/vsukhanov/tracker/internal/stats"
	"github.com/vsukhanov/tracker/internal/storage"
	"github.com/vsukhanov/tracker/internal/view"
)

type Server struct {
	router *chi.Mux
	addr   string
}

func New(store storage.Provider, addr string) *Server {
	lg := ledger.New(store)
	statsProvider := stats.New(store)

	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Get("/api/board", handleBoard(store))
	router.Post("/api/habits/{id}/toggle", handleToggle(lg))
	router.Get("/api/stats", handleStats(statsProvider))

	return &Server{router: router, addr: addr}
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error {
	logger.Info("HTTP API listening", "addr", s.addr)
	return http.ListenAndServe(s.addr, s.router)
}

type boardResponse struct {
	Date     string          `json:"date"`
	Weekday  string          `json:"weekday"`
	Sections view.Projection `json:"sections"`
}

func handleBoard(store storage.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		day := r.URL.Query().Get("date")
		if day == "" {
			day = models.Day(time.Now())
		}

		var completed *bool
		switch r.URL.Query().Get("completed") {
		case "":
		case "true":
			v := true
			completed = &v
		case "false":
			v := false
			completed = &v
		default:
			http.Error(w, "completed must be true or false", http.StatusBadRequest)
			return
		}

		filter, err := view.NewFilter(day, r.URL.Query().Get("q"), completed)
		if err != nil {
			http.Error(w, "invalid date (expected YYYY-MM-DD)", http.StatusBadRequest)
			return
		}

		proj, err := view.BuildProjection(store, filter)
		if err != nil {
			logger.Error("Board scan failed", "error", err)
			http.Error(w, "storage unavailable", http.StatusInternalServerError)
			return
		}
		if proj == nil {
			proj = view.Projection{}
		}

		writeJSON(w, boardResponse{
			Date:     filter.Date,
			Weekday:  filter.Weekday.String(),
			Sections: proj,
		})
	}
}

type toggleResponse struct {
	HabitID         string `json:"habit_id"`
	Day             string `json:"day"`
	Completed       bool   `json:"completed"`
	CompletionCount int    `json:"completion_count"`
}

func handleToggle(lg *ledger.Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		habitID := chi.URLParam(r, "id")

		day := r.URL.Query().Get("date")
		if day == "" {
			day = models.Day(time.Now())
		} else if _, err := models.ParseDay(day); err != nil {
			http.Error(w, "invalid date (expected YYYY-MM-DD)", http.StatusBadRequest)
			return
		}

		completed, count, err := lg.Toggle(habitID, day)
		if errors.Is(err, apperrors.ErrUnknownHabit) {
			http.Error(w, "habit not found", http.StatusNotFound)
			return
		}
		if err != nil {
			logger.Error("Toggle failed", "habit", habitID, "error", err)
			http.Error(w, "storage unavailable", http.StatusInternalServerError)
			return
		}

		writeJSON(w, toggleResponse{
			HabitID:         habitID,
			Day:             day,
			Completed:       completed,
			CompletionCount: count,
		})
	}
}

func handleStats(provider *stats.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := provider.Summarize()
		if err != nil {
			logger.Error("Stats query failed", "error", err)
			http.Error(w, "storage unavailable", http.StatusInternalServerError)
			return
		}
		writeJSON(w, summary)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Encoding response failed", "error", err)
	}
}
