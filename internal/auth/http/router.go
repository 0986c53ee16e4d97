package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/hibritu/hirehub/internal/auth/service"
	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/pkg/httpx"
	"github.com/hibritu/hirehub/pkg/jwtx"
	"github.com/hibritu/hirehub/pkg/role"
	"github.com/hibritu/hirehub/pkg/slogx"

	_ "github.com/hibritu/hirehub/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier // access tokens only
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AccountService   *service.AccountService
	BootstrapService *service.BootstrapService

	// CORSOrigins lists the front-end origins allowed to call the API.
	CORSOrigins []string
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}
}

func (r *Router) ApplyRoutes() {
	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(r.CORSOrigins),
	}

	r.registerAccount()
	r.registerPassword()
	r.registerSession()
	r.registerProtected()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			HireHub Authentication Service API
//	@version		0.1.0
//	@description	Account lifecycle for the HireHub job marketplace: registration with emailed verification codes, login, password reset and role-based hand-off to the job seeker, employer and admin applications.
//	@description
//	@description				Access and refresh tokens are HS256 JWTs carrying the user's role and email verification state.
//
//	@contact.name				HireHub Team
//	@contact.url				https://github.com/hibritu/hirehub
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

func (r *Router) registerAccount() {
	h := &AccountHandler{Accounts: r.AccountService}

	// POST /register - strict rate limit by IP (account creation, sends mail)
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /login - strict rate limit by IP + email to slow down credential stuffing
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.StrictLimit, "email"),
		),
	)

	// POST /verify-email - strict rate limit by IP (six digit codes are guessable)
	r.Mux.Handle("POST /v1/auth/verify-email",
		httpx.Chain(http.HandlerFunc(h.HandleVerifyEmail),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /resend-otp - strict rate limit by IP (sends mail)
	r.Mux.Handle("POST /v1/auth/resend-otp",
		httpx.Chain(http.HandlerFunc(h.HandleResendOTP),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerPassword() {
	h := &PasswordHandler{Accounts: r.AccountService}

	r.Mux.Handle("POST /v1/auth/forgot-password",
		httpx.Chain(http.HandlerFunc(h.HandleForgot),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /reset-password - lenient rate limit (only displays the form)
	r.Mux.Handle("GET /v1/auth/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleResetForm),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /reset-password - strict rate limit by IP (JSON or form post)
	r.Mux.Handle("POST /v1/auth/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleReset),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSession() {
	h := &SessionHandler{Accounts: r.AccountService}

	// POST /refresh - moderate rate limit by IP
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// GET /handoff - anonymous callers are told they are not signed in
	r.Mux.Handle("GET /v1/auth/handoff",
		httpx.Chain(http.HandlerFunc(h.HandleHandoff),
			httpx.OptionalAuthn(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerProtected() {
	me := &MeHandler{Accounts: r.AccountService}

	// Authenticated endpoint - lenient rate limit by user
	r.Mux.Handle("GET /v1/me",
		httpx.Chain(me,
			httpx.AuthnMiddleware(r.verifier), // verify JWT (iss/exp/typ)
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /v1/admin/ping",
		httpx.Chain(PingHandler(),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRoles(role.Admin),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/employer/ping",
		httpx.Chain(PingHandler(),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRoles(role.Employer),
			httpx.RequireVerified(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /bootstrap - very strict rate limit by IP (one-time setup endpoint)
	bootstrapHandler := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(bootstrapHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) signer() jwtx.Signer {
	if r.AccountService == nil || r.AccountService.Tokens == nil {
		return nil
	}
	return r.AccountService.Tokens.Signer
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.signer()),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
