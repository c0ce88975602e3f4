// Package web is the HTTP surface of accountdesk: a chi router serving the
// server-rendered account pages, the authenticated admin listing, the static
// informational pages, and a small JSON ping.
package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrijs2005/accountdesk/internal/logging"
	"github.com/dmitrijs2005/accountdesk/internal/server/config"
	"github.com/dmitrijs2005/accountdesk/internal/server/services"
)

type Server struct {
	address          string
	logger           logging.Logger
	accounts         *services.AccountService
	secretKey        []byte
	sessionValidity  time.Duration
	rememberValidity time.Duration
	templates        map[string]*template.Template
}

// NewServer wires the handlers and parses the embedded templates.
func NewServer(cfg *config.Config, l logging.Logger, accounts *services.AccountService) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	return &Server{
		address:          cfg.EndpointAddr,
		logger:           l.With("module", "web_server"),
		accounts:         accounts,
		secretKey:        []byte(cfg.SecretKey),
		sessionValidity:  cfg.SessionValidityDuration,
		rememberValidity: cfg.RememberMeValidityDuration,
		templates:        templates,
	}, nil
}

// Router assembles the route table with the middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(s.sessionMiddleware)

	r.Get("/", s.handleHome)
	r.Get("/about", s.handleAbout)
	r.Get("/contact", s.handleContact)
	r.Get("/faq", s.handleFAQ)

	r.Get("/api/hello-world", s.handleHelloWorld)

	r.Route("/account", func(r chi.Router) {
		r.Get("/register", s.handleRegisterPage)
		r.Post("/register", s.handleRegister)
		r.Get("/login", s.handleLoginPage)
		r.Post("/login", s.handleLogin)
		r.Get("/logout", s.handleLogout)
		r.Get("/forgot-password", s.handleForgotPasswordPage)
		r.Post("/forgot-password", s.handleForgotPassword)
		r.Get("/reset-password", s.handleResetPasswordPage)
		r.Post("/reset-password", s.handleResetPassword)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/admin/users", s.handleAdminUsers)
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
