package infrastructure

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestNWSClientRequestShape verifies the endpoint path and the headers the
// NWS API requires.
func TestNWSClientRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/alerts/active/area/TX" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("User-Agent"); got != "weather-app/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/geo+json" {
			t.Errorf("Accept = %q", got)
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write([]byte(`{"features": [{"properties": {"event": "Tornado Warning", "severity": "Extreme"}}]}`))
	}))
	defer server.Close()

	client := NewNWSClient(server.URL, server.Client())
	alerts, err := client.GetActiveAlerts(context.Background(), "TX")
	if err != nil {
		t.Fatalf("GetActiveAlerts() error = %v", err)
	}
	if len(alerts.Features) != 1 || alerts.Features[0].Properties.Event != "Tornado Warning" {
		t.Errorf("alerts = %+v", alerts)
	}
}

// TestNWSClientHTTPError verifies non-200 statuses error.
func TestNWSClientHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewNWSClient(server.URL, server.Client())
	if _, err := client.GetActiveAlerts(context.Background(), "TX"); err == nil {
		t.Fatal("GetActiveAlerts succeeded on HTTP 500")
	}
}

// TestNWSClientBadJSON verifies decode failures error.
func TestNWSClientBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := NewNWSClient(server.URL, server.Client())
	if _, err := client.GetActiveAlerts(context.Background(), "TX"); err == nil {
		t.Fatal("GetActiveAlerts succeeded on invalid JSON")
	}
}
