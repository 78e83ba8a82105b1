package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	accessHttp "github.com/davicafu/cursolab/internal/access/infra/inbound/http"
	"github.com/davicafu/cursolab/internal/access/session"
	alumnoApp "github.com/davicafu/cursolab/internal/alumno/application"
	"github.com/davicafu/cursolab/internal/config"
	eventoApp "github.com/davicafu/cursolab/internal/evento/application"
	eventoDomain "github.com/davicafu/cursolab/internal/evento/domain"
	eventoHttp "github.com/davicafu/cursolab/internal/evento/infra/inbound/http"
	infraEvents "github.com/davicafu/cursolab/internal/shared/infra/events"
	sharedBus "github.com/davicafu/cursolab/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/cursolab/internal/shared/infra/platform/cache"
	"github.com/davicafu/cursolab/pkg/logger"
)

// ---------------- Main ----------------
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger.Init(cfg.LogLevel) // inicializa zap
	log := logger.Logger()    // obtiene logger estructurado
	defer log.Sync()          // flush buffers al salir

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------------- DB ----------------
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer store.close()

	// ---------------- Cache ----------------
	var cacheInstance sharedCache.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		memCache := sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
		defer memCache.Stop()
		cacheInstance = memCache
	} else {
		cacheInstance = sharedCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}
	defer rdb.Close()

	// ---------------- Events ---------------
	var publisher sharedBus.EventPublisher
	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos", zap.Strings("brokers", cfg.KafkaBrokers))
		writer := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  eventoDomain.EventoTopic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer writer.Close()
		publisher = infraEvents.NewKafkaPublisher(writer, log)
	} else {
		log.Info("⚡️Usando bus de eventos en memoria")
		publisher = infraEvents.NewInMemoryEventBus(eventoDomain.EventoTopic)
	}

	// --------------- Servicios --------------
	eventoService := eventoApp.NewEventoService(store.eventos, cacheInstance, cfg.CacheTTL, publisher, log)
	alumnoService := alumnoApp.NewAlumnoService(store.alumnos, log)
	dispatcher := eventoApp.NewDispatcher(eventoService, alumnoService, log)

	if cfg.SeedDemo {
		if err := seedDemo(ctx, store.alumnos, eventoService, log); err != nil {
			log.Fatal("failed to seed demo data", zap.Error(err))
		}
	}

	// ---------------- HTTP ----------------
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionTTL)

	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(log))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/")
	api.Use(
		accessHttp.SessionMiddleware(sessions, cfg.SessionCookie, log),
		accessHttp.CSRFMiddleware(),
	)
	eventoHttp.RegisterEventoRoutes(api, eventoHttp.NewEventoHandler(dispatcher, log))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Apagando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}
