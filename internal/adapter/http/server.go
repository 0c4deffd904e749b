package adapthttp

import (
	"net/http"

	"portfolio/internal/app"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

// OIDCConfig carries the optional SSO login configuration. Enabled is false
// when no provider is configured; the SSO routes then answer 404.
type OIDCConfig struct {
	Enabled      bool
	Provider     *oidc.Provider
	OAuth2Config *oauth2.Config
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth       *app.AuthService
	projects   *app.ProjectService
	uploadDir  string
	oidcConfig OIDCConfig
}

// New creates a Server wired to the given application services.
func New(auth *app.AuthService, projects *app.ProjectService, uploadDir string, oidcConfig OIDCConfig) *Server {
	return &Server{auth: auth, projects: projects, uploadDir: uploadDir, oidcConfig: oidcConfig}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/logout", s.handleLogout)
	mux.HandleFunc("GET /auth/sso/login", s.handleSSOLogin)
	mux.HandleFunc("GET /auth/sso/callback", s.handleSSOCallback)
	mux.HandleFunc("GET /auth/config", s.handleAuthConfig)

	// Stored images are public-servable by generated filename.
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir))))

	protected := http.NewServeMux()
	protected.HandleFunc("GET /{$}", s.handleListProjects)
	protected.HandleFunc("GET /projects/{id}", s.handleGetProject)
	protected.HandleFunc("POST /projects", s.handleCreateProject)
	protected.HandleFunc("POST /projects/{id}", s.handleUpdateProject)
	protected.HandleFunc("POST /projects/{id}/delete", s.handleDeleteProject)
	protected.HandleFunc("POST /language", s.handleSetLanguage)
	mux.Handle("/", s.authMiddleware(protected))

	return withNoCache(s.loggingMiddleware(mux))
}
