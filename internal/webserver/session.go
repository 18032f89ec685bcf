package webserver

import (
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/shoplens/shoplens/internal/domain"
)

const sessionName = "shoplens_session"

// sessionUser is the authenticated identity carried by the server-side
// session.
type sessionUser struct {
	Email    string
	Username string
	FullName string
	Role     string
}

func (u sessionUser) IsAdmin() bool { return u.Role == domain.RoleAdmin }

func (s *Server) currentUser(c echo.Context) (sessionUser, bool) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return sessionUser{}, false
	}
	email, _ := sess.Values["email"].(string)
	if email == "" {
		return sessionUser{}, false
	}
	username, _ := sess.Values["username"].(string)
	fullName, _ := sess.Values["full_name"].(string)
	role, _ := sess.Values["role"].(string)
	return sessionUser{Email: email, Username: username, FullName: fullName, Role: role}, true
}

func (s *Server) setSessionUser(c echo.Context, u *domain.User, email string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["email"] = email
	sess.Values["username"] = u.Username
	sess.Values["full_name"] = u.FullName
	sess.Values["role"] = u.Role
	return sess.Save(c.Request(), c.Response())
}

func (s *Server) clearSession(c echo.Context) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return
	}
	// Values only; the cookie itself stays so the post-logout flash
	// message can still ride on it.
	sess.Values = map[interface{}]interface{}{}
	_ = sess.Save(c.Request(), c.Response())
}

// flash queues a one-shot notification; category is one of success,
// info, warning, danger.
func (s *Server) flash(c echo.Context, category, message string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return
	}
	sess.AddFlash(category + "|" + message)
	_ = sess.Save(c.Request(), c.Response())
}

type flashMessage struct {
	Category string
	Message  string
}

func (s *Server) popFlashes(c echo.Context) []flashMessage {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) > 0 {
		_ = sess.Save(c.Request(), c.Response())
	}
	out := make([]flashMessage, 0, len(raw))
	for _, f := range raw {
		str, ok := f.(string)
		if !ok {
			continue
		}
		category, message, found := strings.Cut(str, "|")
		if !found {
			category, message = "info", str
		}
		out = append(out, flashMessage{Category: category, Message: message})
	}
	return out
}

// requireLogin redirects unauthenticated requests to the login page.
func (s *Server) requireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := s.currentUser(c); !ok {
			s.flash(c, "warning", "Please login to access this page")
			return redirect(c, "/login")
		}
		return next(c)
	}
}

// requireAdmin re-checks the role against the identity store, not just the
// session, so demoted accounts lose access immediately.
func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u, ok := s.currentUser(c)
		if !ok {
			return redirect(c, "/login")
		}
		rec, exists := s.users.Get(u.Email)
		if !exists || !rec.IsAdmin() {
			s.flash(c, "danger", "Admin access required")
			return redirect(c, "/")
		}
		return next(c)
	}
}
