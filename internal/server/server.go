// Package server wires the repositories, services, and handlers together
// and owns the HTTP listener lifecycle.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Mr7Gabriel/clone-x-app/internal/auth"
	"github.com/Mr7Gabriel/clone-x-app/internal/handler"
	"github.com/Mr7Gabriel/clone-x-app/internal/middleware"
	sqliteRepo "github.com/Mr7Gabriel/clone-x-app/internal/repository/sqlite"
	"github.com/Mr7Gabriel/clone-x-app/internal/service"
	"github.com/Mr7Gabriel/clone-x-app/internal/upload"
)

// Config holds everything the server needs to start.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string
	UploadDir string
	SeedData  bool
}

// Server owns the router and the resources that must be released on
// shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, builds the service and handler graph, and
// registers every route. The returned server is ready for Start.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	if cfg.SeedData {
		if err := s.seedSampleData(context.Background()); err != nil {
			db.Close()
			return nil, fmt.Errorf("seeding sample data: %w", err)
		}
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	store, err := upload.NewStore(s.config.UploadDir)
	if err != nil {
		return fmt.Errorf("creating upload store: %w", err)
	}

	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	postService := service.NewPostService(s.db, s.db, s.db, s.db, s.logger)
	userService := service.NewUserService(s.db, s.db, s.db, s.logger)
	notificationService := service.NewNotificationService(s.db, s.logger)
	messageService := service.NewMessageService(s.db, s.logger)
	uploadService := service.NewUploadService(store, s.db, s.logger)
	statsService := service.NewStatsService(s.db)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	postHandler := handler.NewPostHandler(postService, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	notificationHandler := handler.NewNotificationHandler(notificationService, s.logger)
	messageHandler := handler.NewMessageHandler(messageService, s.logger)
	uploadHandler := handler.NewUploadHandler(uploadService, s.logger)
	statsHandler := handler.NewStatsHandler(statsService)

	requireAuth := auth.RequireAuth(tokens)

	// Uploaded images are served straight from disk. The stored paths are
	// uploads/users/{id}/..., relative to the upload dir.
	fileServer := http.FileServer(http.Dir(s.config.UploadDir))
	s.router.Handle("/uploads/*", http.StripPrefix("/uploads/", fileServer))

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.Get("/posts", postHandler.HandleList)
		r.Get("/posts/{postID}/replies", postHandler.HandleListReplies)

		r.Get("/users/search", userHandler.HandleSearch)
		r.Get("/users/username/{username}", userHandler.HandleGetByUsername)
		r.Get("/users/{userID}", userHandler.HandleGet)
		r.Get("/users/{userID}/posts", postHandler.HandleListByUser)
		r.Get("/users/{userID}/followers", userHandler.HandleFollowers)
		r.Get("/users/{userID}/following", userHandler.HandleFollowing)

		r.Get("/trending", handler.HandleTrending)
		r.Get("/health", handler.HandleHealth)
		r.Get("/stats", statsHandler.HandleStats)

		// Everything below requires a valid bearer token.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Post("/posts", postHandler.HandleCreate)
			r.Post("/posts/{postID}/like", postHandler.HandleLike)
			r.Post("/posts/{postID}/retweet", postHandler.HandleRetweet)
			r.Post("/posts/{postID}/replies", postHandler.HandleCreateReply)
			r.Post("/posts/{postID}/bookmark", postHandler.HandleBookmark)
			r.Get("/posts/{postID}/is-bookmarked", postHandler.HandleIsBookmarked)
			r.Get("/users/{userID}/bookmarks", postHandler.HandleBookmarks)

			r.Put("/users/{userID}", userHandler.HandleUpdate)
			r.Delete("/users/{userID}", userHandler.HandleDelete)
			r.Post("/users/{userID}/follow", userHandler.HandleFollow)
			r.Get("/users/{userID}/is-following", userHandler.HandleIsFollowing)
			r.Get("/users/{userID}/suggestions", userHandler.HandleSuggestions)

			r.Get("/users/{userID}/notifications", notificationHandler.HandleList)
			r.Get("/users/{userID}/notifications/unread-count", notificationHandler.HandleUnreadCount)
			r.Patch("/notifications/{notificationID}/read", notificationHandler.HandleMarkRead)

			r.Post("/messages", messageHandler.HandleSend)
			r.Get("/users/{userID}/messages", messageHandler.HandleConversations)
			r.Get("/users/{userID}/messages/{otherUserID}", messageHandler.HandleConversation)

			r.Post("/upload/profile-image", uploadHandler.HandleProfileImage)
			r.Post("/upload/banner-image", uploadHandler.HandleBannerImage)
			r.Post("/upload/post-image", uploadHandler.HandlePostImage)
		})
	})

	s.router.NotFound(handler.HandleNotFound)

	return nil
}

// seedSampleData loads demo accounts and posts into an empty database.
func (s *Server) seedSampleData(ctx context.Context) error {
	passwords := auth.NewPasswordService()
	if err := s.db.SeedSampleData(ctx, passwords.Hash); err != nil {
		return err
	}
	s.logger.Info("sample data seeded")
	return nil
}

// Router exposes the configured mux, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the listener until SIGINT/SIGTERM, then drains in-flight
// requests and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
