package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestHTTPSourceQuery(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"docs":[{"id":1,"slug":"a","title":"A"}],"totalDocs":1,"limit":1,"totalPages":1,"page":1}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/", zaptest.NewLogger(t), WithAPIKey("secret"))
	res, err := src.Find(context.Background(), Query{
		Collection: "posts",
		Where:      []Filter{{Field: "slug", Op: Equals, Value: "a"}},
		Sort:       "-publishedAt",
		Limit:      1,
		Depth:      2,
		Draft:      true,
		Unpaged:    true,
	})
	require.NoError(t, err)
	require.Len(t, res.Docs, 1)
	assert.Equal(t, 1, res.TotalDocs)

	require.NotNil(t, got)
	assert.Equal(t, "/api/posts", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "a", q.Get("where[slug][equals]"))
	assert.Equal(t, "-publishedAt", q.Get("sort"))
	assert.Equal(t, "1", q.Get("limit"))
	assert.Equal(t, "2", q.Get("depth"))
	assert.Equal(t, "true", q.Get("draft"))
	assert.Equal(t, "false", q.Get("pagination"))
	assert.Empty(t, q.Get("page"))
	assert.Equal(t, "users API-Key secret", got.Header.Get("Authorization"))
}

func TestHTTPSourceRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"docs":[],"totalDocs":0,"limit":10,"totalPages":1,"page":1}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, zaptest.NewLogger(t), WithRetry(3, time.Millisecond))
	res, err := src.Find(context.Background(), Query{Collection: "pages"})
	require.NoError(t, err)
	assert.Empty(t, res.Docs)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSourceDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, nil, WithRetry(5, time.Millisecond))
	_, err := src.Find(context.Background(), Query{Collection: "posts"})
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Status)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPSourceGivesUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, nil, WithRetry(2, time.Millisecond))
	_, err := src.Find(context.Background(), Query{Collection: "posts"})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Status)
}
