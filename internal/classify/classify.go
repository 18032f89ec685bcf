// Package classify wraps the external pretrained image classifier. The
// network itself runs behind an HTTP inference endpoint and is treated as a
// black box: this adapter ships the image bytes over, decodes the top-1
// prediction into a human-readable label and bounds concurrent inference
// with a worker pool.
package classify

import (
	"bytes"
	"context"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/panjf2000/ants/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shoplens/shoplens/config"
)

// ErrUnavailable reports that the model endpoint is not configured or not
// reachable; callers substitute an "Unknown" label and degrade to
// keyword-only matching instead of failing the request.
var ErrUnavailable = errors.New("classifier unavailable")

var titleCaser = cases.Title(language.English)

type prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type inferenceResponse struct {
	Predictions []prediction `json:"predictions"`
}

// Classifier is the adapter over the remote pretrained network.
type Classifier struct {
	endpoint string
	timeout  time.Duration
	pool     *ants.Pool
}

func New(cfg config.ClassifierConfig) *Classifier {
	c := &Classifier{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		timeout:  time.Duration(cfg.TimeoutSec) * time.Second,
	}
	if c.timeout <= 0 {
		c.timeout = 15 * time.Second
	}
	if c.endpoint == "" {
		zap.S().Warn("classifier endpoint not configured, image recognition disabled")
		return c
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		zap.S().Errorf("classifier pool init failed: %s", err)
		return c
	}
	c.pool = pool
	return c
}

// Available reports whether inference can be attempted.
func (c *Classifier) Available() bool {
	return c.endpoint != "" && c.pool != nil
}

// Classify sends one image to the inference service and returns the
// decoded top-1 label with its confidence.
func (c *Classifier) Classify(ctx context.Context, img []byte) (string, float64, error) {
	if !c.Available() {
		return "", 0, ErrUnavailable
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(img)); err != nil {
		return "", 0, errors.Wrap(err, "decode image")
	}

	type result struct {
		label      string
		confidence float64
		err        error
	}
	ch := make(chan result, 1)
	err := c.pool.Submit(func() {
		var resp inferenceResponse
		err := gout.POST(c.endpoint + "/v1/classify").
			WithContext(ctx).
			SetTimeout(c.timeout).
			SetHeader(gout.H{"Content-Type": "application/octet-stream"}).
			SetBody(img).
			BindJSON(&resp).
			Do()
		if err != nil {
			ch <- result{err: errors.Wrap(err, "inference request")}
			return
		}
		if len(resp.Predictions) == 0 {
			ch <- result{err: errors.New("inference returned no predictions")}
			return
		}
		top := resp.Predictions[0]
		ch <- result{label: DecodeLabel(top.Label), confidence: top.Confidence}
	})
	if err != nil {
		return "", 0, ErrUnavailable
	}

	select {
	case r := <-ch:
		return r.label, r.confidence, r.err
	case <-ctx.Done():
		return "", 0, ctx.Err()
	}
}

// Close releases the worker pool.
func (c *Classifier) Close() {
	if c.pool != nil {
		c.pool.Release()
	}
}

// DecodeLabel turns a raw class name like "running_shoe" into a display
// label like "Running Shoe".
func DecodeLabel(raw string) string {
	return titleCaser.String(strings.ReplaceAll(raw, "_", " "))
}
