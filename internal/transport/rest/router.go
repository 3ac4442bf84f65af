package rest

import (
	"net/http"

	_ "icebreak/docs"
	"icebreak/internal/config"
	"icebreak/internal/llm"
	"icebreak/internal/metrics"
	"icebreak/internal/service"
	"icebreak/internal/transport/rest/handler"
	"icebreak/internal/transport/rest/middleware"
	"icebreak/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
	"go.uber.org/zap"
)

// Container holds all dependencies for the router
type Container struct {
	Config            *config.Config
	Logger            *zap.Logger
	Metrics           *metrics.Metrics
	Gatherer          prometheus.Gatherer
	Completer         llm.ChatCompleter
	ConfidenceService *service.ConfidenceService
	IcebreakerService *service.IcebreakerService
	InterestService   *service.InterestService
	HistoryService    *service.HistoryService // nil when Redis is not configured
	LibraryService    *service.LibraryService // nil when Redis is not configured
	WSHub             *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	confidenceHandler := handler.NewConfidenceHandler(c.ConfidenceService)
	icebreakerHandler := handler.NewIcebreakerHandler(c.IcebreakerService, c.InterestService)
	llmHandler := handler.NewLLMHandler(c.Completer)
	wsHandler := ws.NewHandler(c.WSHub, c.ConfidenceService, c.Logger)

	// CORS first, then client identity so logs and limits can see it
	r.Use(corsMiddleware(c.Config.CORS))
	r.Use(middleware.ClientID)
	r.Use(middleware.Observe(c.Logger, c.Metrics))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.Handle("/metrics", promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{})).Methods("GET")

	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	}).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/ws/score", wsHandler.ScoreWS).Methods("GET")

	// LLM-backed routes are rate limited per client
	llmRoutes := v1.NewRoute().Subrouter()
	llmRoutes.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerMinute: c.Config.RateLimit.RequestsPerMinute,
		Burst:             c.Config.RateLimit.Burst,
	}))

	llmRoutes.HandleFunc("/confidence-score", confidenceHandler.Score).Methods("POST", "OPTIONS")
	llmRoutes.HandleFunc("/generate-icebreaker", icebreakerHandler.Generate).Methods("POST", "OPTIONS")
	llmRoutes.HandleFunc("/extract-interests", icebreakerHandler.ExtractInterests).Methods("POST", "OPTIONS")
	llmRoutes.HandleFunc("/llm/ping", llmHandler.Ping).Methods("GET", "OPTIONS")

	// History routes (Redis only)
	if c.HistoryService != nil {
		historyHandler := handler.NewHistoryHandler(c.HistoryService)

		v1.HandleFunc("/history/topics", historyHandler.ListTopics).Methods("GET", "OPTIONS")
		v1.HandleFunc("/history/topics", historyHandler.ClearTopics).Methods("DELETE")
		v1.HandleFunc("/history/topics/{id}", historyHandler.DeleteTopics).Methods("DELETE", "OPTIONS")
		v1.HandleFunc("/history/topics/{id}/selected", historyHandler.SelectTopic).Methods("PUT", "OPTIONS")
		v1.HandleFunc("/history/confidence", historyHandler.ListConfidence).Methods("GET", "OPTIONS")
		v1.HandleFunc("/history/confidence", historyHandler.ClearConfidence).Methods("DELETE")
		v1.HandleFunc("/history/confidence/{id}", historyHandler.DeleteConfidence).Methods("DELETE", "OPTIONS")
		v1.HandleFunc("/history/stats", historyHandler.Stats).Methods("GET", "OPTIONS")
	}

	// Library routes (Redis only)
	if c.LibraryService != nil {
		libraryHandler := handler.NewLibraryHandler(c.LibraryService)

		v1.HandleFunc("/library", libraryHandler.Add).Methods("POST", "OPTIONS")
		v1.HandleFunc("/library", libraryHandler.List).Methods("GET")
		v1.HandleFunc("/library/stats", libraryHandler.Stats).Methods("GET", "OPTIONS")
		v1.HandleFunc("/library/{id}", libraryHandler.Update).Methods("PATCH", "OPTIONS")
		v1.HandleFunc("/library/{id}", libraryHandler.Delete).Methods("DELETE")
	}

	return r
}

func corsMiddleware(cfg config.CORSConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", cfg.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
			w.Header().Set("Access-Control-Expose-Headers", middleware.ClientIDHeader)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
