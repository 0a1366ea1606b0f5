package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"animelib/internal/catalog"
	"animelib/internal/fetch"
)

const narutoPayload = `{"data":[
  {"mal_id":20,"title":"Naruto","title_english":"Naruto","title_japanese":"ナルト","type":"TV",
   "episodes":220,"score":8.0,"studios":[{"mal_id":1,"name":"Studio Pierrot"}],
   "aired":{"from":"2002-10-03T00:00:00+00:00","to":null},
   "broadcast":{"day":"Thursdays","time":"19:30"},
   "images":{"webp":{"large_image_url":"https://cdn.example/naruto.webp"}}},
  {"mal_id":1735,"title":"Naruto: Shippuuden","episodes":null,"studios":[]}
]}`

func newClient(t *testing.T, handler http.HandlerFunc) (*catalog.Client, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	client, err := catalog.New(server.URL+"/", catalog.WithRateLimit(0))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return client, &hits
}

func TestSearchDecodesResults(t *testing.T) {
	var gotQuery, gotLimit, gotPath string
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(narutoPayload))
	})

	results, err := client.Search(context.Background(), "  Naruto ", catalog.CandidateLimit)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if gotPath != "/anime" || gotQuery != "Naruto" || gotLimit != "5" {
		t.Fatalf("unexpected request path=%q q=%q limit=%q", gotPath, gotQuery, gotLimit)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	first := results[0]
	if first.MalID != 20 || first.Title != "Naruto" {
		t.Fatalf("unexpected first result %+v", first)
	}
	if first.Episodes == nil || *first.Episodes != 220 {
		t.Fatalf("expected 220 episodes, got %v", first.Episodes)
	}
	if first.Studio() != "Studio Pierrot" {
		t.Fatalf("unexpected studio %q", first.Studio())
	}
	if first.CoverURL() != "https://cdn.example/naruto.webp" {
		t.Fatalf("unexpected cover url %q", first.CoverURL())
	}
	if first.Aired.From == nil || first.Aired.To != nil {
		t.Fatalf("unexpected aired %+v", first.Aired)
	}
	second := results[1]
	if second.Episodes != nil || second.Studio() != "" {
		t.Fatalf("expected missing optional fields, got %+v", second)
	}
}

func TestSearchTruncatesToLimit(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(narutoPayload))
	})
	results, err := client.Search(context.Background(), "Naruto", catalog.ProbeLimit)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 1 || results[0].MalID != 20 {
		t.Fatalf("expected only the top result, got %+v", results)
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	})
	results, err := client.Search(context.Background(), "zzzz", catalog.ProbeLimit)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}

func TestSearchFailuresAreSearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data":`))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, hits := newClient(t, tt.handler)
			_, err := client.Search(context.Background(), "Bleach", catalog.ProbeLimit)
			var searchErr *catalog.SearchError
			if !errors.As(err, &searchErr) {
				t.Fatalf("expected SearchError, got %v", err)
			}
			if searchErr.Query != "Bleach" {
				t.Fatalf("unexpected query %q", searchErr.Query)
			}
			if hits.Load() != 1 {
				t.Fatalf("catalog searches must not retry, got %d requests", hits.Load())
			}
		})
	}
}

func TestSearchServerErrorCarriesStatus(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	_, err := client.Search(context.Background(), "Bleach", catalog.ProbeLimit)
	var statusErr *fetch.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected wrapped 429, got %v", err)
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	client, hits := newClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := client.Search(context.Background(), "   ", catalog.ProbeLimit)
	var searchErr *catalog.SearchError
	if !errors.As(err, &searchErr) {
		t.Fatalf("expected SearchError, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no request, got %d", hits.Load())
	}
}

func TestGetAnime(t *testing.T) {
	client, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/anime/269" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"mal_id":269,"title":"Bleach","episodes":366}}`))
	})
	anime, err := client.GetAnime(context.Background(), 269)
	if err != nil {
		t.Fatalf("GetAnime returned error: %v", err)
	}
	if anime.MalID != 269 || anime.Title != "Bleach" {
		t.Fatalf("unexpected anime %+v", anime)
	}
	if _, err := client.GetAnime(context.Background(), 1); err == nil {
		t.Fatal("expected error for missing anime")
	}
	if _, err := client.GetAnime(context.Background(), 0); err == nil {
		t.Fatal("expected error for invalid id")
	}
}

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := catalog.New("  "); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
