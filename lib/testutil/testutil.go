package testutil

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

type Entry struct {
	Name     string
	Facility string
}

// Site is a fake directory site: a facet listing endpoint at /facets and
// listing pages under /lekarze/<category>/<location>,sl,<page>,s.
type Site struct {
	// Locations and Categories are the raw labels the facet endpoint returns.
	Locations  []string
	Categories []string
	// Listings maps "<category>/<location>" to its pages, page 1 first.
	// Pages past the end are rendered without entries.
	Listings map[string][][]Entry
	// Failing lists the request paths that respond with 503.
	Failing map[string]bool

	mu       sync.Mutex
	requests []string
}

func (s *Site) record(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, path)
}

// Requests returns every requested path in the order they arrived.
func (s *Site) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Site) facets(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AutocompleteType int `json:"autocompleteType"`
	}
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	labels := s.Categories
	if req.AutocompleteType == 2 {
		labels = s.Locations
	}
	w.Header().Set("content-type", "application/json; charset=utf-8")
	json.NewEncoder(w).Encode(map[string]any{"d": labels})
}

// parseListingPath splits "<category>/<location>,sl,<page>,s".
func parseListingPath(path string) (string, string, int, bool) {
	category, rest, ok := strings.Cut(path, "/")
	if !ok {
		return "", "", 0, false
	}
	parts := strings.Split(rest, ",")
	if len(parts) != 4 || parts[1] != "sl" || parts[3] != "s" {
		return "", "", 0, false
	}
	page, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", "", 0, false
	}
	return category, parts[0], page, true
}

func RenderListing(entries []Entry) string {
	var b strings.Builder
	b.WriteString("<html><body><div class=\"results\">\n")
	for _, e := range entries {
		fmt.Fprintf(
			&b,
			"<div class=\"doctors-box\"><a><span>%s</span></a><p class=\"doctor-facility\">%s</p></div>\n",
			html.EscapeString(e.Name),
			html.EscapeString(e.Facility),
		)
	}
	b.WriteString("</div></body></html>")
	return b.String()
}

func (s *Site) listing(w http.ResponseWriter, r *http.Request) {
	category, location, page, ok := parseListingPath(strings.TrimPrefix(r.URL.Path, "/lekarze/"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	pages := s.Listings[category+"/"+location]
	var entries []Entry
	if page >= 1 && page <= len(pages) {
		entries = pages[page-1]
	}
	w.Header().Set("content-type", "text/html; charset=utf-8")
	fmt.Fprint(w, RenderListing(entries))
}

func (s *Site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.record(r.URL.Path)
	if s.Failing[r.URL.Path] {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	switch {
	case r.URL.Path == "/facets" && r.Method == http.MethodPost:
		s.facets(w, r)
	case strings.HasPrefix(r.URL.Path, "/lekarze/") && r.Method == http.MethodGet:
		s.listing(w, r)
	default:
		http.NotFound(w, r)
	}
}

// Serve starts the site, the server is closed when the test ends.
// The listing url is <server url>/lekarze and the facets url <server url>/facets.
func Serve(t testing.TB, site *Site) *httptest.Server {
	server := httptest.NewServer(site)
	t.Cleanup(server.Close)
	return server
}
