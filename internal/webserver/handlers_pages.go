package webserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"github.com/shoplens/shoplens/internal/domain"
	"github.com/shoplens/shoplens/pkg/metrics"
)

func (s *Server) profileHandler(c echo.Context) error {
	u, _ := s.currentUser(c)
	rec, ok := s.users.Get(u.Email)
	if !ok {
		s.clearSession(c)
		return redirect(c, "/login")
	}

	var avgMatches float64
	if len(rec.Searches) > 0 {
		counts := make([]float64, len(rec.Searches))
		for i, e := range rec.Searches {
			counts[i] = float64(e.MatchesCount)
		}
		avgMatches, _ = stats.Mean(counts)
	}

	recent := make([]domain.SearchEntry, 0, 5)
	for i := len(rec.Searches) - 1; i >= 0 && len(recent) < 5; i-- {
		recent = append(recent, rec.Searches[i])
	}

	return c.Render(http.StatusOK, "profile", map[string]interface{}{
		"Flashes":        s.popFlashes(c),
		"User":           u,
		"Record":         rec,
		"TotalSearches":  len(rec.Searches),
		"AvgMatches":     avgMatches,
		"RecentSearches": recent,
	})
}

func (s *Server) mySearchesHandler(c echo.Context) error {
	u, _ := s.currentUser(c)
	rec, ok := s.users.Get(u.Email)
	if !ok {
		s.clearSession(c)
		return redirect(c, "/login")
	}

	// Most recent first.
	searches := make([]domain.SearchEntry, 0, len(rec.Searches))
	for i := len(rec.Searches) - 1; i >= 0; i-- {
		searches = append(searches, rec.Searches[i])
	}

	return c.Render(http.StatusOK, "searches", map[string]interface{}{
		"Flashes":  s.popFlashes(c),
		"User":     u,
		"Searches": searches,
	})
}

func (s *Server) adminDashboard(c echo.Context) error {
	u, _ := s.currentUser(c)
	snap := s.catalog.Snapshot()
	total, active := s.users.Counts()

	var minPrice, meanPrice, medianPrice float64
	if len(snap.Products) > 0 {
		prices := make([]float64, len(snap.Products))
		for i, p := range snap.Products {
			prices[i] = p.Price
		}
		minPrice, _ = stats.Min(prices)
		meanPrice, _ = stats.Mean(prices)
		medianPrice, _ = stats.Median(prices)
	}

	dayAgo := time.Now().Add(-24 * time.Hour)
	return c.Render(http.StatusOK, "admin", map[string]interface{}{
		"Flashes":        s.popFlashes(c),
		"User":           u,
		"ProductCount":   len(snap.Products),
		"StoreCount":     snap.SourceCount,
		"CatalogLoaded":  snap.LoadedAt.Format(domain.TimeLayout),
		"TotalUsers":     total,
		"ActiveUsers":    active,
		"ActiveToday":    s.users.ActiveSince(dayAgo),
		"SearchesToday":  metrics.CountSince("search_total", dayAgo),
		"LoginsToday":    metrics.CountSince("login_total", dayAgo),
		"MinPrice":       minPrice,
		"MeanPrice":      meanPrice,
		"MedianPrice":    medianPrice,
		"ClassifierUp":   s.classifier.Available(),
		"RecentActivity": s.journal.Tail(10),
	})
}
