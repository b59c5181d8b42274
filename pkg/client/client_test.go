package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cverr "github.com/matzehuels/columnview/pkg/errors"
	"github.com/matzehuels/columnview/pkg/graph"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, log.New(io.Discard))
	require.NoError(t, err)
	c.Delay = time.Millisecond
	return c
}

func TestNew(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:8080", false},
		{"https://graphs.example/", false},
		{"ftp://graphs.example", true},
		{"", true},
	}
	for _, tt := range tests {
		_, err := New(tt.url, nil)
		if tt.wantErr {
			assert.True(t, cverr.Is(err, cverr.ErrCodeInvalidInput), "New(%q) error = %v", tt.url, err)
		} else {
			assert.NoError(t, err, "New(%q)", tt.url)
		}
	}
}

func TestList(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/graphs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, "[1, 2, 7]")
	}))

	ids, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 7}, ids)
}

func TestList_Null(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "null")
	}))

	ids, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
}

func TestGet(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/graphs/4", r.URL.Path)
		io.WriteString(w, `{"nodes":[{"id":1,"name":"a"},{"id":2,"name":"b"}],"edges":[{"fromId":1,"toId":2}]}`)
	}))

	g, err := c.Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, []graph.Node{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}, g.Nodes)
	assert.Equal(t, []graph.Edge{{From: 1, To: 2}}, g.Edges)
}

func TestGet_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		code   cverr.Code
	}{
		{"NotFound", http.StatusNotFound, `{"error":{}}`, cverr.ErrCodeNotFound},
		{"BadRequest", http.StatusBadRequest, "", cverr.ErrCodeUnavailable},
		{"ServerError", http.StatusInternalServerError, "", cverr.ErrCodeUnavailable},
		{"Malformed", http.StatusOK, `{"nodes": [`, cverr.ErrCodeUnavailable},
		{"WrongShape", http.StatusOK, `{"nodes": "x"}`, cverr.ErrCodeUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))

			_, err := c.Get(context.Background(), 1)
			require.Error(t, err)
			assert.Equal(t, tt.code, cverr.GetCode(err), "error = %v", err)
		})
	}
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		io.WriteString(w, "[5]")
	}))

	ids, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{5}, ids)
	assert.EqualValues(t, 3, calls.Load())
}

func TestNoRetryOnNotFound(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.Get(context.Background(), 9)
	assert.True(t, cverr.Is(err, cverr.ErrCodeNotFound))
	assert.EqualValues(t, 1, calls.Load())
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c, err := New(srv.URL, log.New(io.Discard))
	require.NoError(t, err)
	c.Attempts = 2
	c.Delay = time.Millisecond

	_, err = c.List(context.Background())
	require.Error(t, err)
	assert.Equal(t, cverr.ErrCodeNetwork, cverr.GetCode(err))
}

func TestTimeout(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.List(ctx)
	assert.True(t, cverr.Is(err, cverr.ErrCodeTimeout), "error = %v", err)
}
