package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/quillworks/promptvault/internal/vault/service"
	"github.com/quillworks/promptvault/internal/vault/session"
	"github.com/quillworks/promptvault/internal/vault/store"
	"github.com/quillworks/promptvault/pkg/httpx"
	"github.com/quillworks/promptvault/pkg/slogx"

	_ "github.com/quillworks/promptvault/api/vault" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion  string
	startTime     time.Time
	secureCookies bool
	logger        *slog.Logger

	store            store.Store
	sessions         *session.Store
	AuthService      *service.AuthService
	PromptService    *service.PromptService
	MigrationService *service.TitleMigrationService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	sessions *session.Store,
	logger *slog.Logger,
	secureCookies bool,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		secureCookies: secureCookies,
		store:         st,
		sessions:      sessions,
		logger:        logger,
	}

	// Set default middleware chain. Session resolution is global: every
	// handler can assume a session exists in the request context.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		SessionMiddleware(sessions, secureCookies),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProfile()
	r.registerPrompts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			PromptVault API
//	@version		0.1.0
//	@description	Account and saved-prompt service: session-cookie authentication with
//	@description	login throttling, per-user prompt storage with quota and ownership
//	@description	checks, and best-effort title generation via an external completion
//	@description	service.
//
//	@contact.name				Quillworks
//	@contact.url				https://github.com/quillworks/promptvault
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	loginHandler := &LoginHandler{AuthService: r.AuthService, SecureCookies: r.secureCookies}
	logoutHandler := &LogoutHandler{AuthService: r.AuthService, SecureCookies: r.secureCookies}
	checkHandler := &AuthCheckHandler{AuthService: r.AuthService}

	// Unauthenticated account endpoints carry the strict IP limit on top of
	// the per-session login lockout.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/auth/check",
		httpx.Chain(checkHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerProfile() {
	profileHandler := &ProfileHandler{AuthService: r.AuthService}
	passwordHandler := &ChangePasswordHandler{AuthService: r.AuthService}
	deleteHandler := &DeleteAccountHandler{AuthService: r.AuthService, SecureCookies: r.secureCookies}

	r.Mux.Handle("GET /v1/profile",
		httpx.Chain(profileHandler,
			RequireAuth(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/profile/password",
		httpx.Chain(passwordHandler,
			RequireAuth(),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/account/delete",
		httpx.Chain(deleteHandler,
			RequireAuth(),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerPrompts() {
	h := &PromptsHandler{PromptService: r.PromptService}
	migrateHandler := &MigrateTitlesHandler{MigrationService: r.MigrationService}

	r.Mux.Handle("POST /v1/prompts",
		httpx.Chain(http.HandlerFunc(h.HandleSave),
			RequireAuth(),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/prompts/custom",
		httpx.Chain(http.HandlerFunc(h.HandleSaveCustom),
			RequireAuth(),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /v1/prompts",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			RequireAuth(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/prompts/check",
		httpx.Chain(http.HandlerFunc(h.HandleCheck),
			RequireAuth(),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /v1/prompts/delete",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			RequireAuth(),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/prompts/title",
		httpx.Chain(http.HandlerFunc(h.HandleUpdateTitle),
			RequireAuth(),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /v1/prompts/title/regenerate",
		httpx.Chain(http.HandlerFunc(h.HandleRegenerateTitle),
			RequireAuth(),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// Each batch makes up to ten upstream calls; keep the limit strict.
	r.Mux.Handle("POST /v1/prompts/migrate-titles",
		httpx.Chain(migrateHandler,
			RequireAuth(),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
