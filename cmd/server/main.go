package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"nova/internal/agent"
	"nova/internal/config"
	"nova/internal/handler"
	"nova/internal/middleware"
	"nova/internal/persona"
	"nova/internal/repository/sqlite"
	serviceChat "nova/internal/service/chat"
	"nova/internal/service/llm"
	"nova/internal/service/llm/providers/gemini"
	"nova/internal/service/llm/providers/ollama"
	"nova/internal/tools"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"db_path", cfg.DBPath,
	)

	ctx := context.Background()

	// Open the conversation log
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open conversation log: %v", err)
	}
	defer db.Close()

	if err := sqlite.InitSchema(db); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}
	logger.Info("conversation log ready", "path", cfg.DBPath)

	turnRepo := sqlite.NewTurnRepository(db, logger)

	// Load persona (name + system instruction)
	p := persona.Load(cfg.PersonaPath)
	logger.Info("persona loaded", "name", p.Name)

	// Tool integrations - each one is optional
	var calendarTool gemini.CalendarTool
	if cfg.CalendarCredentials != "" {
		if _, err := os.Stat(cfg.CalendarCredentials); err == nil {
			cal, err := tools.NewCalendarService(ctx, cfg.CalendarCredentials, logger)
			if err != nil {
				logger.Warn("calendar integration disabled", "error", err)
			} else {
				calendarTool = cal
				logger.Info("calendar integration enabled")
			}
		}
	}

	var agentTool gemini.AgentTool
	if cfg.PCAgentURL != "" {
		agentTool = agent.NewClient(cfg.PCAgentURL, logger)
		logger.Info("pc agent integration enabled", "url", cfg.PCAgentURL)
	}

	// Backends: cloud streaming (Gemini) and local batch (Ollama). The
	// cloud backend is optional; without an API key, requests routed to it
	// fail with an explicit error and it contributes nothing to /models.
	var (
		cloudBackend llm.StreamingBackend
		cloudLister  llm.ModelLister
	)
	if cfg.GeminiAPIKey != "" {
		geminiProvider, err := gemini.NewProvider(ctx, cfg.GeminiAPIKey, calendarTool, agentTool, logger)
		if err != nil {
			log.Fatalf("Failed to create gemini provider: %v", err)
		}
		defer geminiProvider.Close()
		cloudBackend = geminiProvider
		cloudLister = geminiProvider
	} else {
		logger.Warn("GEMINI_API_KEY not set, cloud backend disabled")
	}

	ollamaProvider := ollama.NewProvider(cfg.OllamaURL, logger)

	// Recall-intent keywords for the context window policy
	keywords, err := config.LoadRecallKeywords(cfg.RecallKeywordsFile)
	if err != nil {
		log.Fatalf("Failed to load recall keywords: %v", err)
	}

	assembler := serviceChat.NewAssembler(
		turnRepo,
		keywords,
		config.SmallContextWindow,
		config.LargeContextWindow,
		logger,
	)
	orchestrator := serviceChat.NewOrchestrator(
		turnRepo,
		assembler,
		cloudBackend,
		ollamaProvider,
		p.Instructions,
		logger,
	)
	catalog := serviceChat.NewCatalog(cloudLister, ollamaProvider, logger)

	logger.Info("services initialized")

	// Handlers
	chatHandler := handler.NewChatHandler(orchestrator, cfg.DefaultModel, logger)
	modelsHandler := handler.NewModelsHandler(catalog, logger)
	personaHandler := handler.NewPersonaHandler(p, logger)

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /persona", personaHandler.GetPersona)
	mux.HandleFunc("GET /models", modelsHandler.ListModels)
	mux.HandleFunc("POST /chat", chatHandler.Chat)

	// Static frontend, when present
	if info, err := os.Stat(cfg.PublicDir); err == nil && info.IsDir() {
		mux.Handle("/", http.FileServer(http.Dir(cfg.PublicDir)))
		logger.Info("static frontend mounted", "dir", cfg.PublicDir)
	}

	// Build middleware chain (applied in reverse order, they wrap each other)
	var h http.Handler = mux
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  2 * time.Minute, // large image uploads over slow links
		WriteTimeout: 0,               // disabled to allow long-lived chat streams
		IdleTimeout:  60 * time.Second,
	}

	// Run until interrupted, then drain in-flight exchanges
	shutdownCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-shutdownCtx.Done()
	logger.Info("shutting down")

	drainCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(drainCtx); err != nil {
		logger.Error("shutdown incomplete", "error", err)
	}
}
