package cookies

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWrite_PlainHTTPFallsBackToLax(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Write(w, r, "tecrail_session", "token-value", 1800)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != "tecrail_session" || c.Value != "token-value" {
		t.Errorf("cookie content wrong: %+v", c)
	}
	if !c.HttpOnly {
		t.Error("cookie must be HttpOnly")
	}
	if c.Secure {
		t.Error("plain HTTP must not set Secure")
	}
	if c.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected Lax, got %v", c.SameSite)
	}
	if c.MaxAge != 1800 {
		t.Errorf("max age %d", c.MaxAge)
	}
}

func TestWrite_TLSUsesNoneAndSecure(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.TLS = &tls.ConnectionState{}

	Write(w, r, "tecrail_session", "token-value", 1800)

	c := w.Result().Cookies()[0]
	if !c.Secure {
		t.Error("TLS must set Secure")
	}
	if c.SameSite != http.SameSiteNoneMode {
		t.Errorf("expected None, got %v", c.SameSite)
	}
}

func TestWrite_ForwardedProtoCountsAsTLS(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("X-Forwarded-Proto", "https")

	Write(w, r, "tecrail_session", "token-value", 1800)

	c := w.Result().Cookies()[0]
	if !c.Secure || c.SameSite != http.SameSiteNoneMode {
		t.Errorf("behind a TLS proxy the cookie must be Secure+None: %+v", c)
	}
}

func TestClear(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Clear(w, r, "tecrail_session")

	c := w.Result().Cookies()[0]
	if c.Value != "" || c.MaxAge != -1 {
		t.Errorf("expected an expiring empty cookie, got %+v", c)
	}
}
