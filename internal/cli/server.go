package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"studybuddy-service/internal/app"
	"studybuddy-service/internal/config"
	"studybuddy-service/internal/infra/memory"
	pgstore "studybuddy-service/internal/infra/postgres"
	redissession "studybuddy-service/internal/infra/redis"
	"studybuddy-service/internal/llm"
	transport "studybuddy-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the study assistant server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	provider, err := llm.NewProvider(ctx, providerConfig(cfg))
	if err != nil {
		return err
	}
	log.Printf("using model backend %s", provider.ModelID())

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	sessionTTL := config.TTLDuration(cfg.Session.TTL, 30*time.Minute)

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redissession.NewSessionStore(redisClient, sessionTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	var results app.ResultStore = memory.NewResultStore()
	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		results = pgstore.NewResultStore(pool)
	}

	service := app.NewStudyService(provider, sessions, results)
	handler := transport.NewHandler(service)
	wsHandler := transport.NewWSChatHandler(service)

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.HandleFunc("/ws/chat", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting study assistant on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// providerConfig merges config file settings with environment overrides, so
// API keys can stay out of the YAML.
func providerConfig(cfg config.Config) llm.Config {
	out := llm.Config{
		Provider: cfg.LLM.Provider,
		Gemini: llm.GeminiConfig{
			APIKey: cfg.LLM.Gemini.APIKey,
			Model:  cfg.LLM.Gemini.Model,
		},
		OpenAI: llm.OpenAIConfig{
			APIKey: cfg.LLM.OpenAI.APIKey,
			Model:  cfg.LLM.OpenAI.Model,
		},
		Retry: llm.DefaultRetryConfig(),
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		out.Gemini.APIKey = key
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		out.OpenAI.APIKey = key
	}
	return out
}
