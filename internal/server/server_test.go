package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewRouter(Options{Quality: 23, ZoomMin: 1.00, ZoomMax: 1.06})
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("Unexpected health body: %s", w.Body.String())
	}
}

func TestFormPage(t *testing.T) {
	router := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Expected HTML, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "script") {
		t.Error("Form page should contain the script field")
	}
}

func TestRenderRejectsEmptyScript(t *testing.T) {
	router := newTestRouter()

	form := url.Values{}
	form.Set("script", "   \n\n  ")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for an empty script, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "error") {
		t.Errorf("Expected an error payload, got %s", w.Body.String())
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	router := newTestRouter()

	form := url.Values{}
	form.Set("script", "Одна строка")
	form.Set("format", "panorama")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/render", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for an unknown format, got %d", w.Code)
	}
}

func TestClampHelpers(t *testing.T) {
	if got := clampFloat(20, 8, 15); got != 15 {
		t.Errorf("clampFloat(20) = %f, expected 15", got)
	}
	if got := clampFloat(5, 8, 15); got != 8 {
		t.Errorf("clampFloat(5) = %f, expected 8", got)
	}
	if got := clampInt(300, 50, 140); got != 140 {
		t.Errorf("clampInt(300) = %d, expected 140", got)
	}
	if got := parseInt("мусор", 30); got != 30 {
		t.Errorf("parseInt on garbage should fall back to 30, got %d", got)
	}
	if got := parseFloat("", 10); got != 10 {
		t.Errorf("parseFloat on empty should fall back to 10, got %f", got)
	}
}
