package webserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/shoplens/shoplens/internal/catalog"
	"github.com/shoplens/shoplens/internal/classify"
	"github.com/shoplens/shoplens/internal/domain"
	"github.com/shoplens/shoplens/pkg/metrics"
)

func (s *Server) indexHandler(c echo.Context) error {
	snap := s.catalog.Snapshot()
	total, _ := s.users.Counts()

	data := map[string]interface{}{
		"Flashes":      s.popFlashes(c),
		"ProductCount": len(snap.Products),
		"StoreCount":   snap.SourceCount,
		"UserCount":    total,
	}
	if u, ok := s.currentUser(c); ok {
		data["User"] = u
	}
	if token := c.QueryParam("r"); token != "" {
		if result, ok := s.results.get(token); ok {
			data["Result"] = result
		}
	}
	return c.Render(http.StatusOK, "index", data)
}

// processHandler accepts an uploaded product image and/or keywords, runs
// classification when an image is present and renders the ranked matches.
func (s *Server) processHandler(c echo.Context) error {
	user, _ := s.currentUser(c)
	keywords := strings.TrimSpace(c.FormValue("keywords"))

	imageBytes, origName, err := s.readUpload(c)
	if err != nil {
		s.flash(c, "danger", "Error reading uploaded file: "+err.Error())
		s.journal.Record(user.Email, domain.ActionError, "Upload read failed: "+err.Error(), c.RealIP())
		return redirect(c, "/")
	}
	if imageBytes == nil && keywords == "" {
		s.flash(c, "danger", "Upload an image or enter keywords to search")
		return redirect(c, "/")
	}

	var (
		label      string
		confidence float64
		imageURL   string
		uploadName string
	)
	if imageBytes != nil {
		uploadName = uuid.NewString() + "_" + filepath.Base(origName)
		if err := writeUpload(filepath.Join(s.cfg.UploadDir(), uploadName), imageBytes); err != nil {
			zap.S().Errorf("save upload failed: %s", err)
			s.flash(c, "danger", "Error saving uploaded image")
			s.journal.Record(user.Email, domain.ActionError, "Image save failed: "+err.Error(), c.RealIP())
			return redirect(c, "/")
		}
		imageURL = "/uploads/" + uploadName

		label, confidence, err = s.classifier.Classify(c.Request().Context(), imageBytes)
		if errors.Is(err, classify.ErrUnavailable) {
			label, confidence = "Unknown", 0
		} else if err != nil {
			s.flash(c, "danger", "Error processing image: "+err.Error())
			s.journal.Record(user.Email, domain.ActionError, "Image processing failed: "+err.Error(), c.RealIP())
			return redirect(c, "/")
		}
	}

	snap := s.catalog.Snapshot()
	matches := catalog.Match(snap.Products, label, keywords)
	best, hasBest := catalog.GlobalBestPrice(matches)

	metrics.IncrCounter("search_total")
	s.journal.Record(user.Email, domain.ActionSearch,
		fmt.Sprintf("Found %d products for %q", len(matches), label), c.RealIP())

	entry := domain.SearchEntry{
		Timestamp:    time.Now().Format(domain.TimeLayout),
		Category:     label,
		Keywords:     keywords,
		MatchesCount: len(matches),
		Image:        uploadName,
	}
	if err := s.users.AppendSearch(user.Email, entry); err != nil {
		zap.S().Errorf("append search history failed: %s", err)
	}
	if imageBytes != nil {
		if err := s.users.IncrementUploads(user.Email); err != nil {
			zap.S().Errorf("increment uploads failed: %s", err)
		}
	}

	s.flash(c, "success", fmt.Sprintf("Found %d matching products", len(matches)))
	token := s.results.put(searchResult{
		Prediction: label,
		Confidence: confidence,
		Keywords:   keywords,
		Matches:    matches,
		BestPrice:  best,
		HasBest:    hasBest,
		ImageURL:   imageURL,
	})
	return redirect(c, "/?r="+token)
}

func (s *Server) reloadHandler(c echo.Context) error {
	user, _ := s.currentUser(c)
	snap, err := s.catalog.Reload()
	if err != nil {
		zap.S().Errorf("catalog reload failed: %s", err)
		s.flash(c, "danger", "Database reload failed")
		s.journal.Record(user.Email, domain.ActionError, "Catalog reload failed: "+err.Error(), c.RealIP())
		return redirect(c, "/")
	}
	detail := fmt.Sprintf("Loaded %d products from %d files", len(snap.Products), snap.SourceCount)
	s.journal.Record(user.Email, domain.ActionReload, detail, c.RealIP())
	s.flash(c, "success", fmt.Sprintf("Database reloaded! %d products from %d stores",
		len(snap.Products), snap.SourceCount))
	return redirect(c, "/")
}

// readUpload returns the submitted file's bytes, or nil when no file was
// attached.
func (s *Server) readUpload(c echo.Context) ([]byte, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		// Missing file is a keyword-only search, not an error.
		return nil, "", nil
	}
	if fh.Filename == "" || fh.Size == 0 {
		return nil, "", nil
	}
	src, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, "", err
	}
	return data, fh.Filename, nil
}

func writeUpload(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}
