package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// -----------------------------------------------------------------------------
// Unit Tests (White-Box Testing of Handler Logic)
// -----------------------------------------------------------------------------

func serve(srv *FeedServer, method, path string, header http.Header) *http.Response {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	srv.handleRequest(w, req)
	return w.Result()
}

// TestHandler_ServingContent verifies that each route carries its own MIME
// type and body.
func TestHandler_ServingContent(t *testing.T) {
	srv := NewFeedServer("0")

	tests := []struct {
		route string
		mime  string
		body  []byte
	}{
		{config.RouteCalendar, config.MimeTextCalendar, []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nEND:VCALENDAR")},
		{config.RouteImage, config.MimeImagePNG, []byte("\x89PNG fake")},
		{config.RouteStats, config.MimeJSON, []byte(`{"weeksLived":1252}`)},
	}

	for _, tt := range tests {
		srv.Update(tt.route, tt.body)
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			resp := serve(srv, http.MethodGet, tt.route, nil)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.mime, resp.Header.Get(config.HeaderContentType))
			assert.Equal(t, config.MimeNoSniff, resp.Header.Get(config.HeaderXContentType))
			assert.Contains(t, resp.Header.Get(config.HeaderCacheControl), "no-cache")
			assert.NotEmpty(t, resp.Header.Get(config.HeaderETag))

			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.body, body)
		})
	}
}

// TestHandler_Caching verifies that the server respects ETag headers (If-None-Match)
// and returns 304 Not Modified to save bandwidth.
func TestHandler_Caching(t *testing.T) {
	srv := NewFeedServer("0")
	srv.Update(config.RouteCalendar, []byte("DATA_VERSION_1"))

	first := serve(srv, http.MethodGet, config.RouteCalendar, nil)
	etag := first.Header.Get(config.HeaderETag)
	lastModified := first.Header.Get(config.HeaderLastModified)
	require.NotEmpty(t, etag, "Server must provide an ETag")

	t.Run("IfNoneMatch", func(t *testing.T) {
		resp := serve(srv, http.MethodGet, config.RouteCalendar, http.Header{config.HeaderIfNoneMatch: {etag}})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotModified, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Empty(t, body, "Body must be empty on 304 Not Modified")
	})

	t.Run("IfModifiedSince", func(t *testing.T) {
		resp := serve(srv, http.MethodGet, config.RouteCalendar, http.Header{config.HeaderIfModifiedSince: {lastModified}})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotModified, resp.StatusCode)
	})

	t.Run("StaleETag", func(t *testing.T) {
		resp := serve(srv, http.MethodGet, config.RouteCalendar, http.Header{config.HeaderIfNoneMatch: {`"old"`}})
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("ContentChangeChangesETag", func(t *testing.T) {
		srv.Update(config.RouteCalendar, []byte("DATA_VERSION_2"))
		resp := serve(srv, http.MethodGet, config.RouteCalendar, nil)
		defer func() { _ = resp.Body.Close() }()
		assert.NotEqual(t, etag, resp.Header.Get(config.HeaderETag))
	})
}

// TestHandler_Head returns headers without a body.
func TestHandler_Head(t *testing.T) {
	srv := NewFeedServer("0")
	srv.Update(config.RouteStats, []byte(`{}`))

	resp := serve(srv, http.MethodHead, config.RouteStats, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Empty(t, body)
}

// TestHandler_MethodNotAllowed ensures strictly GET and HEAD are accepted.
func TestHandler_MethodNotAllowed(t *testing.T) {
	srv := NewFeedServer("0")

	resp := serve(srv, http.MethodPost, config.RouteCalendar, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, config.AllowedMethods, resp.Header.Get(config.HeaderAllow))
}

// TestHandler_Initializing verifies the 503 behavior when data is not yet ready.
func TestHandler_Initializing(t *testing.T) {
	srv := NewFeedServer("0")
	srv.Update(config.RouteCalendar, []byte("ready"))

	resp := serve(srv, http.MethodGet, config.RouteImage, nil)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode, "routes fill independently")
	assert.Equal(t, config.RetryAfterSeconds, resp.Header.Get(config.HeaderRetryAfter))
}

// TestHandler_NotFound rejects unknown paths, including the root.
func TestHandler_NotFound(t *testing.T) {
	srv := NewFeedServer("0")

	for _, path := range []string{"/", "/weeks.ics/extra", "/stats"} {
		resp := serve(srv, http.MethodGet, path, nil)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

// TestUpdate_UnknownRoute is ignored without panicking.
func TestUpdate_UnknownRoute(t *testing.T) {
	srv := NewFeedServer("0")
	assert.NotPanics(t, func() { srv.Update("/nope", []byte("x")) })
}

// -----------------------------------------------------------------------------
// Concurrency Tests (Race Detection)
// -----------------------------------------------------------------------------

// TestServer_RaceCondition validates the thread-safety of atomic.Pointer usage.
// Run this with `go test -race`.
func TestServer_RaceCondition(t *testing.T) {
	srv := NewFeedServer("0")
	var wg sync.WaitGroup

	end := time.Now().Add(300 * time.Millisecond)

	for w := 0; w < 5; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			i := 0
			for time.Now().Before(end) {
				srv.Update(config.RouteCalendar, []byte(fmt.Sprintf("VERSION:%d-%d", id, i)))
				i++
				time.Sleep(1 * time.Microsecond)
			}
		}(w)
	}

	for r := 0; r < 20; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) {
				req := httptest.NewRequest(http.MethodGet, config.RouteCalendar, nil)
				w := httptest.NewRecorder()
				srv.handleRequest(w, req)

				if code := w.Code; code != http.StatusOK && code != http.StatusServiceUnavailable {
					t.Errorf("Unexpected status code during race test: %d", code)
				}
			}
		}()
	}

	wg.Wait()
}

// -----------------------------------------------------------------------------
// Integration Tests (Real TCP Lifecycle)
// -----------------------------------------------------------------------------

// TestServer_Lifecycle spins up the actual TCP listener to verify network binding
// and graceful shutdown logic.
func TestServer_Lifecycle(t *testing.T) {
	const port = "18099"

	srv := NewFeedServer(port)
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)

	go func() {
		errChan <- srv.Start(ctx)
	}()

	url := "http://127.0.0.1:" + port + config.RouteCalendar

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return true
	}, 2*time.Second, 50*time.Millisecond, "Server failed to bind/listen in time")

	resp, err := http.Get(url)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	_ = resp.Body.Close()

	srv.Update(config.RouteCalendar, []byte("BEGIN:VCALENDAR\nEND:VCALENDAR"))

	resp, err = http.Get(url)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeTextCalendar, resp.Header.Get(config.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Contains(t, string(body), "BEGIN:VCALENDAR")

	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err, "Server should shutdown gracefully without error")
	case <-time.After(5 * time.Second):
		t.Fatal("Server shutdown timed out")
	}
}

// TestServer_InvalidPort fails fast.
func TestServer_InvalidPort(t *testing.T) {
	err := NewFeedServer("").Start(context.Background())
	assert.EqualError(t, err, config.ErrPortRequired)
}
