package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDo_SendsBearerAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, "/api/admin/orders", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1}]`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", nil)
	var rows []Record
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "t", "/api/admin/orders", "tok", nil, &rows))
	require.Len(t, rows, 1)
}

func TestDo_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "username taken", http.StatusConflict)
	}))
	defer srv.Close()

	err := New(srv.URL, nil).Do(context.Background(), http.MethodPost, "t", "/x", "", map[string]string{"a": "b"}, nil)
	require.Error(t, err)
	require.Equal(t, http.StatusConflict, Status(err))
	require.Equal(t, "username taken", Body(err))
}

func TestDo_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := New(url, nil).Do(context.Background(), http.MethodGet, "t", "/x", "", nil, nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnavailable))
	require.Equal(t, 0, Status(err))
}

func TestDo_EmptyBodyIsFine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var out Record
	require.NoError(t, New(srv.URL, nil).Do(context.Background(), http.MethodPost, "t", "/x", "", nil, &out))
}
