package server

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// cacheItem stores one rendered feed and its metadata for HTTP caching.
type cacheItem struct {
	data         []byte
	etag         string
	lastModified string // RFC1123 format required by HTTP headers
}

// resource is one served route. Reads vastly outnumber updates, so the
// content sits behind an atomic.Pointer instead of a lock.
type resource struct {
	mime  string
	cache atomic.Pointer[cacheItem]
}

// FeedServer serves the week calendar, the share image and the statistics
// on localhost.
type FeedServer struct {
	Port      string
	resources map[string]*resource
}

// NewFeedServer creates a server with its three routes, all initially empty.
func NewFeedServer(port string) *FeedServer {
	return &FeedServer{
		Port: port,
		resources: map[string]*resource{
			config.RouteCalendar: {mime: config.MimeTextCalendar},
			config.RouteImage:    {mime: config.MimeImagePNG},
			config.RouteStats:    {mime: config.MimeJSON},
		},
	}
}

// Start initializes the HTTP server and blocks until the context is cancelled.
func (s *FeedServer) Start(ctx context.Context) error {
	if err := config.ValidatePort(s.Port); err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc(config.RouteRoot, s.handleRequest)

	srv := &http.Server{
		Addr:         config.LocalhostBindAddr + config.AddrSeparator + s.Port,
		Handler:      mux,
		ReadTimeout:  config.ServerReadTimeout,
		WriteTimeout: config.ServerWriteTimeout,
		IdleTimeout:  config.ServerIdleTimeout,
	}

	serverError := make(chan error, config.ChannelBufferSize)

	go func() {
		slog.Info(config.MsgServerListen,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyPort, s.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverError <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info(config.MsgServerStop, config.LogKeyComponent, config.CompServer)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("%s: %w", config.ErrServerShutdown, err)
		}
		return nil

	case err := <-serverError:
		return fmt.Errorf("%s: %w", config.ErrServerStartup, err)
	}
}

// Update atomically replaces the content served at route.
// Unknown routes are logged and ignored.
func (s *FeedServer) Update(route string, data []byte) {
	res, ok := s.resources[route]
	if !ok {
		slog.Warn(config.ErrUnknownRoute,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyRoute, route,
		)
		return
	}

	hash := sha256.Sum256(data)
	etag := fmt.Sprintf(config.FormatETag, hex.EncodeToString(hash[:]))

	res.cache.Store(&cacheItem{
		data:         data,
		etag:         etag,
		lastModified: time.Now().UTC().Format(http.TimeFormat),
	})

	slog.Debug(config.MsgCacheUpdated,
		config.LogKeyComponent, config.CompServer,
		config.LogKeyRoute, route,
		config.LogKeySizeBytes, len(data),
		config.LogKeyETag, etag,
	)
}

// handleRequest serves a feed with HTTP caching support.
func (s *FeedServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	res, ok := s.resources[r.URL.Path]
	if !ok {
		http.Error(w, config.HTTPMsgNotFound, http.StatusNotFound)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set(config.HeaderAllow, config.AllowedMethods)
		http.Error(w, config.HTTPMsgMethodNotAll, http.StatusMethodNotAllowed)
		return
	}

	item := res.cache.Load()
	if item == nil {
		w.Header().Set(config.HeaderRetryAfter, config.RetryAfterSeconds)
		http.Error(w, config.HTTPMsgInitializing, http.StatusServiceUnavailable)
		return
	}

	w.Header().Set(config.HeaderContentType, res.mime)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlPrivate)
	w.Header().Set(config.HeaderETag, item.etag)
	w.Header().Set(config.HeaderLastModified, item.lastModified)

	if match := r.Header.Get(config.HeaderIfNoneMatch); match == item.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if since := r.Header.Get(config.HeaderIfModifiedSince); since != "" {
		if clientTime, err := time.Parse(http.TimeFormat, since); err == nil {
			if serverTime, err := time.Parse(http.TimeFormat, item.lastModified); err == nil {
				// If server content is not newer than client cache, return 304.
				if !serverTime.After(clientTime) {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
	}

	if r.Method == http.MethodGet {
		if _, err := io.Copy(w, bytes.NewReader(item.data)); err != nil {
			slog.Error(config.ErrWriteResp,
				config.LogKeyComponent, config.CompServer,
				config.LogKeyError, err,
			)
		}
	}
}
