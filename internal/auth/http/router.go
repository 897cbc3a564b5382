package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/storefront/internal/auth/domain"
	"github.com/aussiebroadwan/storefront/internal/auth/service"
	"github.com/aussiebroadwan/storefront/internal/auth/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"

	_ "github.com/aussiebroadwan/storefront/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// StaffRoles may read any account.
var StaffRoles = domain.NewRoleSet(domain.RoleAdmin, domain.RoleSuperAdmin)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	TokenService     *service.TokenService
	AuthService      *service.AuthService
	BootstrapService *service.BootstrapService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerRecovery()
	r.registerLookup()
	r.registerAccount()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Storefront Authentication Service API
//	@version		0.1.0
//	@description	Registration, login and session tokens for the storefront's Individual, Corporate, Admin and SuperAdmin users.
//	@description
//	@description				Login responses are sealed with AES-256-GCM; session tokens are HS256 JWTs.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/storefront
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
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) protect() httpx.Middleware {
	return Protect(r.TokenService, r.AuthService)
}

func (r *Router) registerAuth() {
	// POST /auth/signup - strict rate limit by IP
	r.Mux.Handle("POST /auth/signup",
		httpx.Chain(&SignupHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/login - strict rate limit by IP + login key to slow down brute force
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(&LoginHandler{AuthService: r.AuthService},
			httpx.RateLimitByIPAndIdentity(httpx.StrictLimit, "email", "phone"),
		),
	)

	// GET /auth/verify-email/{token} - moderate rate limit by IP
	r.Mux.Handle("GET /auth/verify-email/{token}",
		httpx.Chain(&VerifyEmailHandler{AuthService: r.AuthService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerRecovery() {
	h := &PasswordHandler{AuthService: r.AuthService}

	r.Mux.Handle("POST /auth/forgot-password",
		httpx.Chain(http.HandlerFunc(h.HandleForgot),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerLookup() {
	h := &CheckUserHandler{AuthService: r.AuthService}

	// Existence checks back the signup form - lenient rate limit by IP
	r.Mux.Handle("GET /auth/check-user/{phone}",
		httpx.Chain(http.HandlerFunc(h.HandlePhone),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /auth/check-user-email/{email}",
		httpx.Chain(http.HandlerFunc(h.HandleEmail),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAccount() {
	h := &AccountHandler{AuthService: r.AuthService}

	// GET /auth/me - any authenticated user, lenient rate limit by user
	r.Mux.Handle("GET /auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.protect(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /auth/users/{id} - staff roles only
	r.Mux.Handle("GET /auth/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			r.protect(),
			AuthorizeRoles(StaffRoles),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /auth/users/{id}/verify-email - admin marker only
	r.Mux.Handle("POST /auth/users/{id}/verify-email",
		httpx.Chain(http.HandlerFunc(h.HandleConfirmEmail),
			r.protect(),
			AdminOnly(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /auth/bootstrap - very strict rate limit by IP (one-time setup endpoint)
	r.Mux.Handle("POST /auth/bootstrap",
		httpx.Chain(&BootstrapHandler{BootstrapService: r.BootstrapService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.TokenService),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
