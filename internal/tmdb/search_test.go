package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestSearchMovies(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			http.NotFound(w, r)
			return
		}
		query = r.URL.Query()
		json.NewEncoder(w).Encode(Page{Page: 2, Results: []MediaItem{{ID: 603, Title: "The Matrix"}}})
	}))
	defer server.Close()

	client := newTestClient(server)
	page, err := client.SearchMovies(context.Background(), "matrix", "es-ES", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := query.Get("query"); got != "matrix" {
		t.Errorf("query = %q, want matrix", got)
	}
	if got := query.Get("include_adult"); got != "false" {
		t.Errorf("include_adult = %q, want false", got)
	}
	if got := query.Get("language"); got != "es-ES" {
		t.Errorf("language = %q, want es-ES", got)
	}
	if got := query.Get("page"); got != "2" {
		t.Errorf("page = %q, want 2", got)
	}
	if len(page.Results) != 1 || page.Results[0].Title != "The Matrix" {
		t.Errorf("unexpected results: %+v", page.Results)
	}
}

func TestSearchPeople(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/person" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(PersonPage{Results: []Person{{ID: 6384, Name: "Keanu Reeves"}}})
	}))
	defer server.Close()

	client := newTestClient(server)
	page, err := client.SearchPeople(context.Background(), "keanu", "", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Results) != 1 || page.Results[0].Name != "Keanu Reeves" {
		t.Errorf("unexpected results: %+v", page.Results)
	}
}
