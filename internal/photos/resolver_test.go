package photos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCandidatesOrderAndShape(t *testing.T) {
	r := NewResolver(Config{BaseURL: "https://photos.example.com/rooms/"})

	candidates := r.Candidates(7, "The Vault!")
	require.Equal(t, []string{
		"https://photos.example.com/rooms/0007-the-vault.jpg",
		"https://photos.example.com/rooms/0007-the-vault.JPG",
	}, candidates)
}

func TestResolvePrefersLowercaseExtension(t *testing.T) {
	var mu sync.Mutex
	var requested []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.URL.Path)
		mu.Unlock()

		require.Equal(t, http.MethodHead, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	resolver := NewResolver(Config{BaseURL: srv.URL})

	url, ok := resolver.Resolve(context.Background(), 7, "The Vault!")
	require.True(t, ok)
	require.Equal(t, srv.URL+"/0007-the-vault.jpg", url)
	require.Equal(t, []string{"/0007-the-vault.jpg"}, requested, "should stop after the first hit")
}

func TestResolveFallsBackToUppercase(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/0042-atlas.JPG" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resolver := NewResolver(Config{BaseURL: srv.URL})

	url, ok := resolver.Resolve(context.Background(), 42, "Atlas")
	require.True(t, ok)
	require.Equal(t, srv.URL+"/0042-atlas.JPG", url)
}

func TestResolveNeitherExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	resolver := NewResolver(Config{BaseURL: srv.URL})

	url, ok := resolver.Resolve(context.Background(), 7, "The Vault!")
	require.False(t, ok)
	require.Empty(t, url)
}

func TestResolveSwallowsTransportErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	srv.Close() // probes will fail to connect

	resolver := NewResolver(Config{BaseURL: srv.URL})

	url, ok := resolver.Resolve(context.Background(), 7, "The Vault!")
	require.False(t, ok, "probe errors resolve to missing, never panic or error")
	require.Empty(t, url)
}
