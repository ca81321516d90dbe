package api

import (
	"context"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/maxaizer/job-board/internal/config"
	"github.com/maxaizer/job-board/internal/domain/models"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"io"
	"net/http"
	"time"
)

type userService interface {
	GetAll(ctx context.Context) ([]models.User, error)
	Register(ctx context.Context, name, email string, photo io.Reader) (*models.User, error)
}

type jobService interface {
	Create(ctx context.Context, job *models.JobPosting) error
	Get(ctx context.Context, id string) (*models.JobPosting, error)
	Find(ctx context.Context, filter models.JobFilter) ([]models.JobPosting, error)
	Update(ctx context.Context, id string, fields map[string]any) (bool, bool, error)
	Delete(ctx context.Context, id string) error
}

type applicationService interface {
	Find(ctx context.Context, filter models.ApplicationFilter) ([]models.Application, error)
	Submit(ctx context.Context, application *models.Application) error
}

type healthChecker interface {
	Ping(ctx context.Context) error
}

type Services struct {
	Users        userService
	Jobs         jobService
	Applications applicationService
	Health       healthChecker
}

type Server struct {
	cfg        config.ServerConfig
	services   Services
	httpServer *http.Server
}

func NewServer(cfg config.ServerConfig, services Services) *Server {
	s := &Server{cfg: cfg, services: services}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.cfg.CorsOrigin},
		AllowedMethods:   []string{"GET", "PUT", "PATCH", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.hello)
	r.Get("/healthz", s.health)

	r.Route("/user", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.registerUser)
	})

	r.Route("/allJobs", func(r chi.Router) {
		r.Get("/", s.listJobs)
		r.Post("/", s.createJob)
		r.Get("/{id}", s.getJob)
		r.Delete("/{id}", s.deleteJob)
	})

	r.Route("/updateJobs", func(r chi.Router) {
		r.Get("/{id}", s.getJob)
		r.Put("/{id}", s.updateJob)
	})

	r.Route("/appliedJobs", func(r chi.Router) {
		r.Get("/", s.listApplications)
		r.Post("/", s.applyToJob)
	})

	return r
}

// Run blocks until ctx is cancelled or the server fails, then shuts it down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("job board API listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown http server")
	}
	return nil
}
