package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shoplens/shoplens/config"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodeLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"running_shoe", "Running Shoe"},
		{"cellular_telephone", "Cellular Telephone"},
		{"laptop", "Laptop"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := DecodeLabel(tc.raw); got != tc.want {
			t.Errorf("DecodeLabel(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestClassifyUnavailableWithoutEndpoint(t *testing.T) {
	c := New(config.ClassifierConfig{})
	defer c.Close()
	if c.Available() {
		t.Fatal("classifier without endpoint reports available")
	}
	_, _, err := c.Classify(context.Background(), pngBytes(t))
	if err != ErrUnavailable {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}

func TestClassifyDecodesTopPrediction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/classify" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"predictions": []map[string]interface{}{
				{"label": "running_shoe", "confidence": 0.91},
				{"label": "sandal", "confidence": 0.05},
			},
		})
	}))
	defer srv.Close()

	c := New(config.ClassifierConfig{Endpoint: srv.URL, TimeoutSec: 5, Workers: 2})
	defer c.Close()

	label, confidence, err := c.Classify(context.Background(), pngBytes(t))
	if err != nil {
		t.Fatalf("Classify returned error: %v", err)
	}
	if label != "Running Shoe" {
		t.Errorf("label = %q, want %q", label, "Running Shoe")
	}
	if confidence != 0.91 {
		t.Errorf("confidence = %v, want 0.91", confidence)
	}
}

func TestClassifyRejectsNonImagePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("inference endpoint called for invalid image")
	}))
	defer srv.Close()

	c := New(config.ClassifierConfig{Endpoint: srv.URL, TimeoutSec: 5})
	defer c.Close()

	if _, _, err := c.Classify(context.Background(), []byte("not an image")); err == nil {
		t.Fatal("expected error for non-image payload")
	}
}

func TestClassifyEmptyPredictionList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"predictions":[]}`))
	}))
	defer srv.Close()

	c := New(config.ClassifierConfig{Endpoint: srv.URL, TimeoutSec: 5})
	defer c.Close()

	if _, _, err := c.Classify(context.Background(), pngBytes(t)); err == nil {
		t.Fatal("expected error for empty prediction list")
	}
}
