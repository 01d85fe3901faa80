package router

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/duckbat/ScanCard/internal/api/http/handler"
	"github.com/duckbat/ScanCard/internal/api/http/middleware"
	"github.com/duckbat/ScanCard/internal/logger"
	"github.com/duckbat/ScanCard/internal/model"
	"github.com/duckbat/ScanCard/internal/service"
)

// Pinger reports backing store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router assembles the HTTP route table: public auth and read routes,
// bearer-protected card and profile mutation routes.
type Router struct {
	authService    *service.Auth
	cardService    *service.Card
	userService    *service.User
	exportService  *service.Export
	tokenManager   model.TokenManager
	contextManager model.ContextManager
	db             Pinger
	allowedOrigins []string
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	cardService *service.Card,
	userService *service.User,
	exportService *service.Export,
	tokenManager model.TokenManager,
	contextManager model.ContextManager,
	db Pinger,
	allowedOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		cardService:    cardService,
		userService:    userService,
		exportService:  exportService,
		tokenManager:   tokenManager,
		contextManager: contextManager,
		db:             db,
		allowedOrigins: allowedOrigins,
		logger:         logger,
	}
}

// Register builds the chi mux with middleware and all routes.
func (r *Router) Register() *chi.Mux {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenManager, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	cardHandler := handler.NewCard(r.cardService, r.exportService, r.contextManager, r.logger)
	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   r.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	mux.Get("/ping", r.handlePing)

	mux.Route("/api/auth", func(api chi.Router) {
		api.Post("/register", authHandler.Register)
		api.Post("/login", authHandler.Login)
	})

	mux.Route("/api/businesscards", func(api chi.Router) {
		// Single-card reads and exports are deliberately open: card links
		// are shareable.
		api.Get("/{id}", cardHandler.Get)
		api.Get("/{id}/export/csv", cardHandler.ExportCSV)
		api.Get("/{id}/export/vcard", cardHandler.ExportVCard)
		api.Get("/{id}/export/qr", cardHandler.ExportQR)

		api.Group(func(protected chi.Router) {
			protected.Use(authenticate.Handle)
			protected.Get("/", cardHandler.List)
			protected.Post("/", cardHandler.Create)
			protected.Put("/{id}", cardHandler.Update)
			protected.Delete("/{id}", cardHandler.Delete)
		})
	})

	mux.Route("/api/users", func(api chi.Router) {
		api.Get("/", userHandler.List)
		api.Get("/{id}", userHandler.Get)

		api.Group(func(protected chi.Router) {
			protected.Use(authenticate.Handle)
			protected.Put("/{id}", userHandler.Update)
			protected.Delete("/{id}", userHandler.Delete)
		})
	})

	return mux
}

func (r *Router) handlePing(w http.ResponseWriter, req *http.Request) {
	status := http.StatusOK
	body := map[string]string{"status": "ok"}

	if err := r.db.Ping(req.Context()); err != nil {
		r.logger.Error("Router: database ping failed",
			"error", err.Error())
		status = http.StatusServiceUnavailable
		body = map[string]string{"status": "degraded"}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
