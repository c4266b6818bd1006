package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/AtharvaKhot17/QuickHireAI/config"
	"github.com/AtharvaKhot17/QuickHireAI/internal/api/handlers"
	"github.com/AtharvaKhot17/QuickHireAI/internal/api/middleware"
	"github.com/AtharvaKhot17/QuickHireAI/internal/api/routes"
	"github.com/AtharvaKhot17/QuickHireAI/internal/auth"
	"github.com/AtharvaKhot17/QuickHireAI/internal/cache"
	"github.com/AtharvaKhot17/QuickHireAI/internal/interview"
	"github.com/AtharvaKhot17/QuickHireAI/internal/logger"
	"github.com/AtharvaKhot17/QuickHireAI/internal/providers/llm"
	"github.com/AtharvaKhot17/QuickHireAI/internal/providers/stt"
	"github.com/AtharvaKhot17/QuickHireAI/internal/repositories/memory"
	mongorepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/mongo"
	pgrepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/postgres"
	redisrepo "github.com/AtharvaKhot17/QuickHireAI/internal/repositories/redis"
	"github.com/AtharvaKhot17/QuickHireAI/internal/services"
	"github.com/AtharvaKhot17/QuickHireAI/internal/storage"
	"github.com/AtharvaKhot17/QuickHireAI/internal/workers"
)

func main() {
	_ = godotenv.Load()

	log := logger.New()
	cfg := config.LoadAppConfig()
	if cfg.Server.GinMode != "" {
		gin.SetMode(cfg.Server.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Backends are optional; a configured backend that cannot be reached is fatal.
	mongoOK := initBackend(log, "mongo", config.InitMongo)
	postgresOK := initBackend(log, "postgres", config.InitPostgres)
	redisOK := initBackend(log, "redis", config.InitRedis)

	if mongoOK {
		if err := config.EnsureMongoIndexes(); err != nil {
			log.WithError(err).Warn("failed to ensure mongo indexes")
		}
	}
	if postgresOK && cfg.Server.AutoMigrate {
		if err := config.MigratePostgres(ctx); err != nil {
			log.WithError(err).Fatal("postgres migration failed")
		}
	}

	// Text generation
	llmClient, err := llm.New(ctx, cfg.LLM, log)
	if err != nil {
		log.WithError(err).Fatal("LLM init error")
	}
	defer llmClient.Close()

	var extra map[string][]string
	if path := cfg.Interview.QuestionBankPath; path != "" {
		extra, err = config.LoadQuestionBank(path)
		if err != nil {
			log.WithError(err).Fatal("question bank load error")
		}
		log.WithField("skills", len(extra)).Info("question bank loaded")
	}

	questions := interview.NewGenerator(llmClient.Provider, interview.NewBank(extra), log)
	evaluator := interview.NewEvaluator(llmClient.Provider, log)
	final := interview.NewFinalEvaluator(llmClient.Provider, log)

	// Session store
	var store services.SessionStore
	switch cfg.Session.Store {
	case "redis":
		if !redisOK {
			log.Fatal("SESSION_STORE=redis needs REDIS_ADDR")
		}
		store = redisrepo.NewSessionRepo(cache.NewRedisCache(config.RedisClient, ""), cfg.Session.TTL)
	case "mongo":
		if !mongoOK {
			log.Fatal("SESSION_STORE=mongo needs MONGO_URI")
		}
		db, _ := config.MongoDatabase()
		store = mongorepo.NewSessionRepo(db, cfg.Session.TTL)
	default:
		mem := memory.NewSessionRepo(cfg.Session.TTL)
		go mem.RunSweeper(ctx, cfg.Session.SweepInterval)
		store = mem
	}
	log.WithField("store", cfg.Session.Store).Info("session store ready")

	// Object storage and speech
	var uploader storage.Uploader
	if cfg.Storage.GCSBucket != "" {
		gcs, err := storage.NewGCSUploader(ctx, cfg.Storage.GCSBucket, cfg.Storage.GCSPrefix)
		if err != nil {
			log.WithError(err).Fatal("GCS init error")
		}
		defer gcs.Close()
		uploader = gcs
	}

	var audio services.AudioService
	if cfg.Speech.Enabled {
		speech, err := stt.NewGoogleSpeech(ctx)
		if err != nil {
			log.WithError(err).Fatal("speech init error")
		}
		defer speech.Close()
		audio = services.NewAudioService(speech, uploader, log)
	}

	// Company dashboard
	var (
		tokens      *auth.TokenIssuer
		companySvc  services.CompanyService
		candidates  services.CandidateService
		interviews  services.InterviewService
		reports     services.ReportService
		answerLogs  services.AnswerLogService
		completions services.CompletionPublisher
		workerPool  *workers.ReportWorkerPool
		inline      *workers.InlinePublisher
	)
	if mongoOK && postgresOK && cfg.Auth.JWTSecret != "" {
		tokens, err = auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTTTL)
		if err != nil {
			log.WithError(err).Fatal("token issuer init error")
		}
		db, _ := config.MongoDatabase()
		interviewRepo := mongorepo.NewInterviewRepo(db)

		companySvc = services.NewCompanyService(pgrepo.NewCompanyRepo(config.PostgresDB), tokens)
		interviews = services.NewInterviewService(interviewRepo, cfg.Interview.MaxQuestions)
		candidates = services.NewCandidateService(pgrepo.NewCandidateRepo(config.PostgresDB), interviewRepo, interviews, uploader, log)
		reports = services.NewReportService(store, final, mongorepo.NewReportRepo(db), interviews, candidates, log)
		answerLogs = services.NewAnswerLogService(pgrepo.NewAnswerLogRepo(config.PostgresDB), llmClient.Embedder, candidates, interviews)

		if redisOK {
			workerPool = &workers.ReportWorkerPool{
				Redis:      config.RedisClient,
				Reports:    reports,
				NumWorkers: cfg.Reports.Workers,
				Logger:     log,
				Stream:     cfg.Reports.Stream,
			}
			if err := workerPool.Start(ctx); err != nil {
				log.WithError(err).Fatal("report workers start error")
			}
			completions = &workers.StreamPublisher{Redis: config.RedisClient, Stream: cfg.Reports.Stream}
		} else {
			inline = &workers.InlinePublisher{Reports: reports, Logger: log}
			completions = inline
		}
		log.Info("company dashboard enabled")
	} else {
		log.Info("company dashboard disabled (needs MONGO_URI, POSTGRES_URI and JWT_SECRET)")
	}

	sessions := services.NewSessionService(services.SessionServiceDeps{
		Store:                 store,
		Questions:             questions,
		Evaluator:             evaluator,
		Final:                 final,
		Invitations:           candidates,
		Completions:           completions,
		Recorder:              answerLogs,
		DefaultTotalQuestions: cfg.Interview.TotalQuestions,
		MaxTotalQuestions:     cfg.Interview.MaxQuestions,
		Logger:                log,
	})

	deps := routes.Deps{
		Session:     handlers.NewSessionHandler(sessions, audio),
		Tokens:      tokens,
		CORSOrigins: cfg.Server.CORSOrigins,
	}
	if companySvc != nil {
		deps.Company = handlers.NewCompanyHandler(companySvc)
		deps.Interview = handlers.NewInterviewHandler(interviews, candidates, reports, answerLogs)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.WithField("port", cfg.Server.Port).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server error")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("http shutdown error")
	}
	if workerPool != nil {
		workerPool.Wait()
	}
	if inline != nil {
		inline.Wait()
	}

	_ = config.CloseRedis()
	_ = config.ClosePostgres()
	_ = config.CloseMongo(shutdownCtx)
}

func initBackend(log *logrus.Logger, name string, initFn func() error) bool {
	err := initFn()
	switch {
	case err == nil:
		log.WithField("backend", name).Info("connected")
		return true
	case errors.Is(err, config.ErrNotConfigured):
		log.WithField("backend", name).Info("not configured, features that need it are disabled")
		return false
	default:
		log.WithError(err).WithField("backend", name).Fatal("backend init error")
		return false
	}
}
