package api

import (
	"net/http"
	"time"

	"cryptoledger/src/api/controllers"
	handlers "cryptoledger/src/api/handlers"
	"cryptoledger/src/config"
	"cryptoledger/src/repositories"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler *handlers.Handler
	cfg     *config.Config
	logger  logrus.FieldLogger
}

// NewServer wires the handlers to the given ledger store. The caller owns the
// store's lifetime.
func NewServer(cfg *config.Config, repo repositories.TransactionRepository, logger logrus.FieldLogger) *Server {
	controller := controllers.NewController(repo)
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: handlers.NewHandler(controller, logger, cfg.Service.RequestTimeout, cfg.Service.MaxUploadBytes),
		cfg:     cfg,
		logger:  logger,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(handlers.RequestLogger(s.logger))
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins: s.cfg.Service.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	ledgerRoutes := func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Get("/", s.Handler.GetAllTransactions)
			r.Post("/", s.Handler.CreateTransaction)
			r.Get("/export", s.Handler.ExportXLSX)
			r.Put("/{id}", s.Handler.UpdateTransaction)
			r.Delete("/{id}", s.Handler.DeleteTransaction)
		})
		r.Get("/balances", s.Handler.GetBalances)
		r.Post("/import-csv", s.Handler.ImportCSV)
	}

	ledgerRoutes(s.Router)
	// the bundled frontend calls the same endpoints under /api
	s.Router.Route("/api", ledgerRoutes)
}

func NewHTTPServer(cfg *config.Config, server *Server) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + cfg.Service.Port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
