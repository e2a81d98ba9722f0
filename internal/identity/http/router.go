package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tweetbook/internal/identity/service"
	"github.com/aussiebroadwan/tweetbook/pkg/httpx"
	"github.com/aussiebroadwan/tweetbook/pkg/jwtx"
	"github.com/aussiebroadwan/tweetbook/pkg/slogx"

	_ "github.com/aussiebroadwan/tweetbook/api/identity" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Pinger is anything readiness can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	database Pinger
	ledger   Pinger

	IdentityService *service.IdentityService
	PostService     *service.PostService

	// Rate limits per route group. Zero values fall back to the strict
	// and moderate profiles.
	IdentityLimit httpx.RateLimitConfig
	PostsLimit    httpx.RateLimitConfig
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	database, ledger Pinger,
	requestTimeout time.Duration,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		database:     database,
		ledger:       ledger,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Timeout(requestTimeout),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	if r.IdentityLimit == (httpx.RateLimitConfig{}) {
		r.IdentityLimit = httpx.StrictLimit
	}
	if r.PostsLimit == (httpx.RateLimitConfig{}) {
		r.PostsLimit = httpx.ModerateLimit
	}

	r.registerIdentity()
	r.registerPosts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			TweetBook API
//	@version		1.0.0
//	@description	Account registration, JWT access tokens with single-use refresh tokens, and posts.
//	@description
//	@description				Access tokens are HS256 JWTs valid for a few minutes. Once expired, POST the
//	@description				token together with its refresh token to /api/v1/identity/refresh.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/tweetbook
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerIdentity() {
	h := &IdentityHandler{IdentityService: r.IdentityService}

	// Credential endpoints - strict rate limit by IP (brute force prevention)
	limited := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(r.IdentityLimit))
	}

	r.Mux.Handle("POST /api/v1/identity/register", limited(h.HandleRegister))
	r.Mux.Handle("POST /api/v1/identity/login", limited(h.HandleLogin))
	r.Mux.Handle("POST /api/v1/identity/refresh", limited(h.HandleRefresh))
	r.Mux.Handle("POST /api/v1/identity/revoke", limited(h.HandleRevoke))
}

func (r *Router) registerPosts() {
	h := &PostsHandler{PostService: r.PostService}

	// Authenticated endpoints - moderate rate limit by user
	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(r.PostsLimit),
		)
	}

	r.Mux.Handle("GET /api/v1/posts", secured(h.HandleList))
	r.Mux.Handle("POST /api/v1/posts", secured(h.HandleCreate))
	r.Mux.Handle("GET /api/v1/posts/{postId}", secured(h.HandleGet))
	r.Mux.Handle("PUT /api/v1/posts/{postId}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/v1/posts/{postId}", secured(h.HandleDelete))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.database, r.ledger, r.verifier),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
