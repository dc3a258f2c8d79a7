package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "GelezaSmart/docs"
	"GelezaSmart/internal/auth"
	"GelezaSmart/internal/config"
	"GelezaSmart/internal/handler"
	"GelezaSmart/internal/llm"
	"GelezaSmart/internal/logging"
	"GelezaSmart/internal/storage"
	"GelezaSmart/internal/tutor"
	"GelezaSmart/internal/voice"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Geleza Smart API
// @version         1.0
// @description     Personalized math tutor for students.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		// 로거 생성 전이므로 기본 로거 사용
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile})
	defer logger.Sync()
	gin.SetMode(cfg.GinMode)

	if cfg.InsecureJWTSecret {
		logger.Warn("JWT_SECRET_KEY environment variable is not set. Using default key.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	profiles, closeStore, err := openProfileStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to open profile store", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer closeStore()

	gen, err := llm.NewGenerator(ctx, llm.ProviderConfig{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey,
		Model:    cfg.LLMModel,
		BaseURL:  cfg.LLMBaseURL,
	})
	if err != nil {
		logger.Fatal("failed to create generator", zap.String("provider", cfg.LLMProvider), zap.Error(err))
	}
	vision := llm.DefaultVision(cfg.LLMProvider)
	if cfg.LLMVision != nil {
		vision = *cfg.LLMVision
	}
	tutorLLM := llm.NewTutor(gen, llm.Options{
		HistoryWindow: cfg.LLMHistoryWindow,
		Vision:        vision,
		Timeout:       cfg.LLMTimeout,
	}, logger.Named("llm"))

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		logger.Fatal("failed to create token manager", zap.Error(err))
	}

	svc := tutor.NewService(profiles, tutorLLM, logger.Named("tutor"), tutor.WithSessionTTL(cfg.SessionTTL))

	hopts := []handler.Option{handler.WithImageMaxBytes(cfg.ImageMaxBytes)}
	if cfg.VoiceEnabled {
		credentials := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		stt, err := voice.NewTranscriber(ctx, credentials, cfg.VoiceLanguage, logger.Named("voice"))
		if err != nil {
			logger.Fatal("failed to create transcriber", zap.Error(err))
		}
		defer stt.Close()
		tts, err := voice.NewNarrator(ctx, credentials, cfg.VoiceLanguage, logger.Named("voice"))
		if err != nil {
			logger.Fatal("failed to create narrator", zap.Error(err))
		}
		defer tts.Close()
		hopts = append(hopts, handler.WithVoice(stt, tts))
	}

	router := handler.NewRouter(handler.New(svc, tokens, logger.Named("http"), hopts...), handler.RouterOptions{
		ClassCode:          cfg.ClassCode,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		StaticDir:          cfg.StaticDir,
		Swagger:            true,
	}, logger.Named("http"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Geleza Smart API listening",
			zap.String("addr", srv.Addr),
			zap.String("provider", cfg.LLMProvider),
			zap.Bool("vision", vision),
			zap.String("storage", cfg.StorageBackend),
			zap.Bool("voice", cfg.VoiceEnabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openProfileStore(ctx context.Context, cfg *config.Config) (storage.ProfileStore, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageFirestore:
		fs, err := storage.NewFirestoreProfileStore(ctx, cfg.GCPProject)
		if err != nil {
			return nil, nil, err
		}
		return fs, func() { fs.Close() }, nil
	default:
		db, err := storage.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewSQLiteProfileStore(db), func() { db.Close() }, nil
	}
}
