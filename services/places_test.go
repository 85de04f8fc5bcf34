package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spycce/SmartTrip/helpers"
)

func TestSuggest(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("format") != "json" || r.Header.Get("User-Agent") == "" {
			t.Errorf("request = %v %v", r.URL, r.Header)
		}
		var items []string
		for i := 0; i < 7; i++ {
			items = append(items, fmt.Sprintf(`{"display_name":"Goa %d, India","lat":"15.%d","lon":"74.1"}`, i, i))
		}
		items = append(items[:1], append([]string{`{"display_name":"Broken","lat":"x","lon":"y"}`}, items[1:]...)...)
		w.Write([]byte("[" + strings.Join(items, ",") + "]"))
	}))
	defer srv.Close()

	svc := NewPlaceService(&helpers.Config{NominatimURL: srv.URL}, helpers.NopLogger())

	if got := svc.Suggest(context.Background(), "Go"); len(got) != 0 || got == nil {
		t.Fatalf("short query = %#v", got)
	}
	if calls != 0 {
		t.Fatalf("short query hit the provider")
	}

	got := svc.Suggest(context.Background(), "Goa")
	if len(got) != 5 {
		t.Fatalf("suggestions = %d, want 5", len(got))
	}
	if got[0].DisplayName != "Goa 0, India" || got[1].DisplayName != "Goa 1, India" || got[1].Lat != 15.1 {
		t.Fatalf("suggestions = %+v", got)
	}
}

func TestSuggestProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	got := NewPlaceService(&helpers.Config{NominatimURL: srv.URL}, helpers.NopLogger()).Suggest(context.Background(), "Mumbai")
	if got == nil || len(got) != 0 {
		t.Fatalf("Suggest() = %#v", got)
	}
}
