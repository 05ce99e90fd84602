package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"kiosk-signage-backend/config"
	"kiosk-signage-backend/handlers"
	"kiosk-signage-backend/services"
	"kiosk-signage-backend/storage"
	"kiosk-signage-backend/store"
)

// reloadExitCode tells the supervisor to restart the (newly deployed) binary,
// the daemon equivalent of a forced page refresh.
const reloadExitCode = 3

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	logger := newLogger(cfg.Debug)
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Select the object store backend
	var objects storage.Client
	var files *storage.FSClient
	if cfg.StorageURL != "" {
		objects = storage.NewHTTPClient(cfg.StorageURL)
	} else {
		fsClient, err := storage.NewFSClient(cfg.MediaDir)
		if err != nil {
			sugar.Fatalw("failed to open media directory", "dir", cfg.MediaDir, "error", err)
		}
		objects = fsClient
		files = fsClient
	}

	// Open the mutation history store
	history, err := store.Open(ctx, cfg.DBPath)
	if err != nil {
		sugar.Fatalw("failed to open history store", "path", cfg.DBPath, "error", err)
	}
	defer history.Close()

	// Initialize services
	playback := services.NewPlaybackService(services.NewLogDisplay(sugar), cfg.ImageDwell, sugar)
	playlists := services.NewPlaylistService(objects, cfg.KioskID, cfg.ContentPollInterval, sugar)
	playlists.OnChange(playback.SetPlaylist)
	sessions := services.NewSessionService(cfg.KioskID, playback, sugar)
	notify := services.NewNotificationService(cfg.NotificationTTL, sugar)
	mutations := services.NewMutationService(objects, playlists, notify, history, sugar)

	reload := make(chan struct{}, 1)
	versions := services.NewVersionService(objects, config.BuildVersion, cfg.VersionPollInterval, func() {
		if err := history.Record(ctx, cfg.KioskID, "reload", storage.VersionKey); err != nil {
			sugar.Warnw("failed to record reload", "error", err)
		}
		select {
		case reload <- struct{}{}:
		default:
		}
	}, sugar)

	// Initialize handlers
	playlistHandler := handlers.NewPlaylistHandler(playlists, playback, sugar)
	sessionHandler := handlers.NewSessionHandler(sessions, playlists, notify, sugar)
	mediaHandler := handlers.NewMediaHandler(mutations, files, sugar)
	historyHandler := handlers.NewHistoryHandler(history, playlists, sugar)

	// Create router
	r := mux.NewRouter()
	r.Use(createLoggingMiddleware(sugar))

	// Playlist and playback routes
	r.HandleFunc("/api/playlist", playlistHandler.GetPlaylist).Methods("GET")
	r.HandleFunc("/api/playlist/refresh", playlistHandler.RefreshPlaylist).Methods("POST")
	r.HandleFunc("/api/playback/current", playlistHandler.GetCurrent).Methods("GET")
	r.HandleFunc("/api/playback/ended", playlistHandler.MediaEnded).Methods("POST")

	// Session and notification routes
	r.HandleFunc("/api/session", sessionHandler.GetSession).Methods("GET")
	r.HandleFunc("/api/session/mute/toggle", sessionHandler.ToggleMute).Methods("POST")
	r.HandleFunc("/api/session/fullscreen", sessionHandler.SetFullscreen).Methods("POST")
	r.HandleFunc("/api/session/fullscreen/changed", sessionHandler.FullscreenChanged).Methods("POST")
	r.HandleFunc("/api/session/ui", sessionHandler.SetUIVisible).Methods("POST")
	r.HandleFunc("/api/session/kiosk", sessionHandler.SetKiosk).Methods("POST")
	r.HandleFunc("/api/notification", sessionHandler.GetNotification).Methods("GET")

	// Media mutation and serving routes
	r.HandleFunc("/api/media", mediaHandler.Upload).Methods("POST")
	r.HandleFunc("/api/media/{key:.+}", mediaHandler.Delete).Methods("DELETE")
	r.HandleFunc("/media/{key:.+}", mediaHandler.Serve).Methods("GET")

	// History routes
	r.HandleFunc("/api/history", historyHandler.GetHistory).Methods("GET")

	// Set up CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: corsHandler.Handler(r),
	}

	// Start the pollers
	go playlists.Run(ctx)
	go versions.Run(ctx)

	sugar.Infow("starting server",
		"port", cfg.Port,
		"kioskId", cfg.KioskID,
		"buildVersion", config.BuildVersion,
		"mediaDir", cfg.MediaDir,
		"storageUrl", cfg.StorageURL,
	)

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	restart := false
	select {
	case <-sigCh:
		sugar.Infow("shutdown signal received")
	case <-reload:
		restart = true
		sugar.Infow("new build detected, restarting")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}

	cancel()
	playback.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Warnw("server shutdown failed", "error", err)
	}

	if restart {
		logger.Sync()
		history.Close()
		os.Exit(reloadExitCode)
	}
}

// newLogger builds the process logger
func newLogger(debug bool) *zap.Logger {
	var logger *zap.Logger
	var err error
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// createLoggingMiddleware creates middleware for logging requests
func createLoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response writer wrapper to capture status code
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			logger.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration", time.Since(start),
			)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
