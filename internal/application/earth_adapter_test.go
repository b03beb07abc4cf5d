package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nasa-mcp-server/internal/infrastructure"
)

func newEarthAdapterForTest(t *testing.T, handler http.HandlerFunc) *EarthAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewEarthAdapter(infrastructure.NewEPICClient(server.URL, server.Client()))
}

// TestEarthAdapterParameterValidation covers type, limit and date checks.
func TestEarthAdapterParameterValidation(t *testing.T) {
	adapter := newEarthAdapterForTest(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream was called for invalid parameters")
	})

	tests := []struct {
		name    string
		args    map[string]interface{}
		wantErr string
	}{
		{
			name:    "unknown type",
			args:    map[string]interface{}{"type": "infrared"},
			wantErr: "Invalid type 'infrared'",
		},
		{
			name:    "zero limit",
			args:    map[string]interface{}{"limit": float64(0)},
			wantErr: "limit must be at least 1",
		},
		{
			name:    "malformed date",
			args:    map[string]interface{}{"earth_date": "Jan 15"},
			wantErr: "earth_date must be in YYYY-MM-DD format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := adapter.Call(context.Background(), tt.args)
			if err == nil {
				t.Fatalf("Call succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestEarthAdapterDefaultsToNatural verifies the natural collection is
// queried when no type is given.
func TestEarthAdapterDefaultsToNatural(t *testing.T) {
	adapter := newEarthAdapterForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/natural" {
			t.Errorf("path = %s, want /natural", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	blocks, err := adapter.Call(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got := callText(t, blocks); got != "No images found for the specified parameters" {
		t.Errorf("text = %q", got)
	}
}

// TestEarthAdapterDateRouting verifies a date narrows the query path.
func TestEarthAdapterDateRouting(t *testing.T) {
	adapter := newEarthAdapterForTest(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/enhanced/date/2024-01-15" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	})

	if _, err := adapter.Call(context.Background(), map[string]interface{}{
		"type":       "enhanced",
		"earth_date": "2024-01-15",
	}); err != nil {
		t.Fatalf("Call() error = %v", err)
	}
}

// TestEarthAdapterRendersArchiveURLs verifies records render as archive
// URLs with the limit applied.
func TestEarthAdapterRendersArchiveURLs(t *testing.T) {
	adapter := newEarthAdapterForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"image": "epic_1b_20240115003633", "date": "2024-01-15 00:36:33", "caption": "Earth from L1"},
			{"image": "epic_1b_20240115021733", "date": "2024-01-15 02:17:33"},
			{"image": "epic_1b_20240115035833", "date": "2024-01-15 03:58:33"}
		]`))
	})

	blocks, err := adapter.Call(context.Background(), map[string]interface{}{
		"earth_date": "2024-01-15",
		"limit":      float64(2),
	})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}

	text := callText(t, blocks)
	for _, want := range []string{
		"Earth Images Found!",
		"Image Type: Natural",
		"Images returned: 2 of 3 available",
		"https://epic.gsfc.nasa.gov/archive/natural/2024/01/15/png/epic_1b_20240115003633.png",
		"Caption: Earth from L1",
		"Caption: No caption available",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "epic_1b_20240115035833") {
		t.Error("limit did not trim the third record")
	}
}

// TestEarthAdapterLimitCapped verifies oversized limits clamp silently.
func TestEarthAdapterLimitCapped(t *testing.T) {
	adapter := newEarthAdapterForTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"image": "epic_1b_20240115003633", "date": "2024-01-15"}]`))
	})

	blocks, err := adapter.Call(context.Background(), map[string]interface{}{"limit": float64(500)})
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if !strings.Contains(callText(t, blocks), "Images returned: 1 of 1 available") {
		t.Error("clamped limit should still render available records")
	}
}
