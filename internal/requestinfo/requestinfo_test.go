package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

func TestParse(t *testing.T) {
	ua := parse(chromeUA)
	if ua.Raw != chromeUA {
		t.Fatalf("Raw = %q", ua.Raw)
	}
	if ua.Browser != "Chrome" {
		t.Errorf("Browser = %q", ua.Browser)
	}
	if ua.OS != "Windows" {
		t.Errorf("OS = %q", ua.OS)
	}
	if ua.Device != "Computer" {
		t.Errorf("Device = %q", ua.Device)
	}
	if ua.IsBot {
		t.Error("Chrome flagged as bot")
	}
}

func TestParse_Bot(t *testing.T) {
	ua := parse("Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	if !ua.IsBot {
		t.Error("Googlebot not flagged as bot")
	}
}

func TestEnrich(t *testing.T) {
	var got *Info
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", chromeUA)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("Info missing from context")
	}
	if got.UA.Browser != "Chrome" {
		t.Errorf("Browser = %q", got.UA.Browser)
	}
	// httptest.NewRequest sets RemoteAddr to 192.0.2.1:1234.
	if got.IP != "192.0.2.1" {
		t.Errorf("IP = %q", got.IP)
	}
}

func TestFromContext_WithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if FromContext(req.Context()) != nil {
		t.Fatal("expected nil Info without Enrich")
	}
}
