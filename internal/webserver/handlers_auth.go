package webserver

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shoplens/shoplens/internal/domain"
	"github.com/shoplens/shoplens/internal/identity"
	"github.com/shoplens/shoplens/pkg/metrics"
)

func (s *Server) registerForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register", map[string]interface{}{
		"Flashes": s.popFlashes(c),
	})
}

func (s *Server) registerSubmit(c echo.Context) error {
	email := c.FormValue("email")
	username := c.FormValue("username")
	fullName := c.FormValue("full_name")
	password := c.FormValue("password")
	confirm := c.FormValue("confirm_password")

	err := s.users.Register(email, username, fullName, password, confirm)
	if err != nil {
		var verr *identity.ValidationError
		switch {
		case errors.As(err, &verr):
			s.flash(c, "danger", verr.Reason)
		case errors.Is(err, identity.ErrDuplicateEmail):
			s.flash(c, "danger", "Email already registered")
		default:
			zap.S().Errorf("registration failed: %s", err)
			s.flash(c, "danger", "Registration failed, please try again")
		}
		return redirect(c, "/register")
	}

	s.journal.Record(email, domain.ActionRegister, "New user: "+username, c.RealIP())
	s.flash(c, "success", "Registration successful! Please login")
	return redirect(c, "/login")
}

func (s *Server) loginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", map[string]interface{}{
		"Flashes": s.popFlashes(c),
	})
}

func (s *Server) loginSubmit(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	if email == "" || password == "" {
		s.flash(c, "danger", "Email and password are required")
		return redirect(c, "/login")
	}

	user, err := s.users.Authenticate(email, password)
	if err != nil {
		// One message for unknown email and wrong password alike.
		s.flash(c, "danger", "Invalid email or password")
		return redirect(c, "/login")
	}

	if err := s.users.RecordLogin(email); err != nil {
		zap.S().Errorf("record login failed: %s", err)
	}
	if err := s.setSessionUser(c, user, email); err != nil {
		zap.S().Errorf("session save failed: %s", err)
		s.flash(c, "danger", "Login failed, please try again")
		return redirect(c, "/login")
	}

	metrics.IncrCounter("login_total")
	s.journal.Record(email, domain.ActionLogin, "Successful login from "+c.RealIP(), c.RealIP())
	s.flash(c, "success", fmt.Sprintf("Welcome back, %s!", user.Username))

	if user.IsAdmin() {
		return redirect(c, "/admin/dashboard")
	}
	return redirect(c, "/")
}

func (s *Server) logoutHandler(c echo.Context) error {
	if u, ok := s.currentUser(c); ok {
		s.journal.Record(u.Email, domain.ActionLogout, "User logged out", c.RealIP())
	}
	s.clearSession(c)
	s.flash(c, "info", "You have been logged out")
	return redirect(c, "/")
}
