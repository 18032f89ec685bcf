// Package webserver is the user-facing HTTP surface: registration, login,
// image/keyword search, catalog reload and the profile and admin pages.
package webserver

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"github.com/shoplens/shoplens/config"
	"github.com/shoplens/shoplens/internal/activity"
	"github.com/shoplens/shoplens/internal/catalog"
	"github.com/shoplens/shoplens/internal/classify"
	"github.com/shoplens/shoplens/internal/identity"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Server wires the catalog, identity store, activity journal and classifier
// behind the echo routes.
type Server struct {
	cfg        *config.AppConfig
	catalog    *catalog.Store
	users      *identity.Store
	journal    *activity.Journal
	classifier *classify.Classifier
	results    *resultCache
	echo       *echo.Echo
}

type templateRenderer struct {
	templates *template.Template
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewServer(
	cfg *config.AppConfig,
	catalogStore *catalog.Store,
	users *identity.Store,
	journal *activity.Journal,
	classifier *classify.Classifier,
) *Server {
	s := &Server{
		cfg:        cfg,
		catalog:    catalogStore,
		users:      users,
		journal:    journal,
		classifier: classifier,
		results:    newResultCache(),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.System.Debug
	e.Validator = &payloadValidator{validate: validator.New()}

	funcs := template.FuncMap{
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}
	e.Renderer = &templateRenderer{
		templates: template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")),
	}

	secret := cfg.Web.Secret
	if secret == "" {
		secret = random.String(32, random.Alphanumeric)
		zap.S().Warn("web secret not configured, sessions will not survive restarts")
	}
	cookieStore := sessions.NewCookieStore([]byte(secret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Web.SessionMaxAge,
		HttpOnly: true,
	}

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", cfg.Web.MaxUploadMB)))
	e.Use(session.Middleware(cookieStore))

	e.Static("/uploads", cfg.UploadDir())

	e.GET("/", s.indexHandler)
	e.GET("/register", s.registerForm)
	e.POST("/register", s.registerSubmit)
	e.GET("/login", s.loginForm)
	e.POST("/login", s.loginSubmit)
	e.GET("/logout", s.logoutHandler)

	e.POST("/process", s.processHandler, s.requireLogin)
	e.GET("/reload", s.reloadHandler, s.requireLogin)
	e.GET("/profile", s.profileHandler, s.requireLogin)
	e.GET("/my-searches", s.mySearchesHandler, s.requireLogin)
	e.GET("/admin/dashboard", s.adminDashboard, s.requireLogin, s.requireAdmin)

	s.echo = e
	return s
}

// Start runs the HTTP listener and blocks.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Web.Host, s.cfg.Web.Port)
	zap.S().Infof("web server starting on http://%s", addr)
	return s.echo.Start(addr)
}

// Shutdown stops the listener.
func (s *Server) Shutdown() error {
	return s.echo.Close()
}

func redirect(c echo.Context, path string) error {
	return c.Redirect(http.StatusFound, path)
}
