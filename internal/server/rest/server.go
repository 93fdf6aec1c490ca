// Package rest exposes the service over HTTP/JSON: public registration,
// login, and catalog lookup, plus the token-protected ledger routes. Every
// route passes the rate limiter before anything else runs.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pokebox/pokebox/internal/logging"
	"github.com/pokebox/pokebox/internal/server/models"
	"github.com/pokebox/pokebox/internal/server/ratelimit"
)

const shutdownTimeout = 5 * time.Second

// UserService is the slice of the credential manager the handlers need.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// PokemonService is the slice of the ownership ledger the handlers need.
type PokemonService interface {
	Catch(ctx context.Context, userID, name string) (*models.CaughtPokemon, error)
	List(ctx context.Context, userID string) ([]*models.CaughtPokemon, error)
	Release(ctx context.Context, userID, recordID string) error
}

// CatalogClient looks up a name in the external catalog.
type CatalogClient interface {
	Lookup(ctx context.Context, name string) (json.RawMessage, error)
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	pokemons  PokemonService
	catalog   CatalogClient
	limiter   *ratelimit.Limiter
	jwtSecret []byte
	engine    *gin.Engine
}

func NewServer(address string, l logging.Logger, us UserService, ps PokemonService,
	catalog CatalogClient, limiter *ratelimit.Limiter, secretKey string) *Server {

	s := &Server{
		address:   address,
		logger:    l.With("module", "rest_server"),
		users:     us,
		pokemons:  ps,
		catalog:   catalog,
		limiter:   limiter,
		jwtSecret: []byte(secretKey),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.Default())
	engine.Use(s.rateLimitMiddleware())

	s.engine = engine
	s.routes()

	return s
}

func (s *Server) routes() {
	s.engine.GET("/health", s.health)
	s.engine.POST("/register", s.register)
	s.engine.POST("/login", s.login)
	s.engine.GET("/pokemon/:name", s.lookup)

	protected := s.engine.Group("/protected", s.authMiddleware())
	protected.POST("/pokemon/catch", s.catch)
	protected.DELETE("/pokemon/delete/:id", s.release)
	protected.GET("/pokemon/caught", s.caughtList)
}

// Handler exposes the configured engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
