package main

import (
	"context"
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/davicafu/moderlab/internal/bootstrap"
	config "github.com/davicafu/moderlab/internal/config"
	infraCache "github.com/davicafu/moderlab/internal/infra/cache"
	"github.com/davicafu/moderlab/internal/infra/clock"
	outboxMongo "github.com/davicafu/moderlab/internal/infra/db/mongodb"
	outboxPostgres "github.com/davicafu/moderlab/internal/infra/db/postgres"
	outboxSQLite "github.com/davicafu/moderlab/internal/infra/db/sqlite"
	infraEvents "github.com/davicafu/moderlab/internal/infra/events"
	"github.com/davicafu/moderlab/internal/infra/identity"
	"github.com/davicafu/moderlab/internal/infra/ids"
	"github.com/davicafu/moderlab/internal/moderation/application"
	moderationDomain "github.com/davicafu/moderlab/internal/moderation/domain"
	analytics "github.com/davicafu/moderlab/internal/moderation/infra/analytics/clickhouse"
	moderationPostgres "github.com/davicafu/moderlab/internal/moderation/infra/db/postgres"
	moderationSQLite "github.com/davicafu/moderlab/internal/moderation/infra/db/sqlite"
	moderationEvents "github.com/davicafu/moderlab/internal/moderation/infra/inbound/events"
	moderationHttp "github.com/davicafu/moderlab/internal/moderation/infra/inbound/http"
	"github.com/davicafu/moderlab/internal/outbox"
	"github.com/davicafu/moderlab/internal/outbox/relay"
	"github.com/davicafu/moderlab/internal/shared/app/ports"
	"github.com/davicafu/moderlab/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// ---------------- Main ----------------
func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.LogLevel) // inicializa zap
	log := logger.Logger()    // obtiene logger estructurado
	defer log.Sync()          // flush buffers al salir

	ctx := context.Background()

	// ---------------- DB ----------------
	var (
		db       *sql.DB
		adapters bootstrap.Adapters
		err      error
	)

	switch cfg.DBDriver {
	case "postgres":
		db, err = sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			log.Fatal("failed to open Postgres", zap.Error(err))
		}
		if err := moderationPostgres.InitTasksPostgres(db); err != nil {
			log.Fatal("failed to initialize tasks schema", zap.Error(err))
		}
		if err := outboxPostgres.InitOutboxPostgres(db); err != nil {
			log.Fatal("failed to initialize outbox schema", zap.Error(err))
		}
		adapters = bootstrap.PostgresAdapters{}
	default:
		db, err = sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			log.Fatal("failed to open SQLite", zap.Error(err))
		}
		if err := moderationSQLite.InitTasksSQLite(db); err != nil {
			log.Fatal("failed to initialize tasks schema", zap.Error(err))
		}
		if err := outboxSQLite.InitOutboxSQLite(db); err != nil {
			log.Fatal("failed to initialize outbox schema", zap.Error(err))
		}
		adapters = bootstrap.SQLiteAdapters{}
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("failed to ping database", zap.Error(err))
	}

	// ---------------- Cache ----------------
	var cacheInstance application.Cache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria:", zap.Error(err))
		cacheInstance = infraCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	} else {
		cacheInstance = infraCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// ---------------- Scope ----------------
	role := ports.RoleUser
	if cfg.UserRole == string(ports.RoleAdmin) {
		role = ports.RoleAdmin
	}

	scope := bootstrap.NewScopeFactory(
		db,
		adapters,
		identity.NewStaticProvider(cfg.UserID, role),
		clock.NewUTC(),
		ids.NewUUID7Generator(),
		cfg.AdminID,
		cacheInstance,
		int(cfg.CacheTTL.Seconds()),
		log,
	)

	// ---------------- Analytics ----------------
	var auditConsumer *moderationEvents.DecisionAuditConsumer
	if cfg.ClickhouseAddr != "" {
		analyticsRepo, err := analytics.NewDecisionAnalyticsRepo(cfg.ClickhouseAddr, cfg.ClickhouseDB)
		if err != nil {
			log.Warn("⚠️ ClickHouse no disponible, analítica deshabilitada", zap.Error(err))
		} else if err := analyticsRepo.InitSchema(); err != nil {
			log.Warn("⚠️ No se pudo crear el esquema de analítica", zap.Error(err))
		} else {
			auditConsumer = moderationEvents.NewDecisionAuditConsumer(analyticsRepo, log)
			log.Info("✅ ClickHouse conectado, analítica habilitada")
		}
	}

	// ---------------- Events ----------------
	var publisher outbox.Publisher

	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos")

		writer := infraEvents.NewKafkaWriter(cfg.KafkaBrokers)
		defer writer.Close()

		kafkaPublisher := infraEvents.NewKafkaPublisher(writer, cfg.TopicPrefix, log)
		publisher = kafkaPublisher

		// Entrada: cada meetup creado abre una tarea de moderación.
		meetupReader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    cfg.MeetupTopic,
			GroupID:  cfg.ConsumerGroup,
			MinBytes: 10e3, // 10KB
			MaxBytes: 10e6, // 10MB
		})
		defer meetupReader.Close()

		meetupConsumer := moderationEvents.NewMeetupConsumer(scope, log)
		infraEvents.NewConsumerAdapter(meetupReader, meetupConsumer, log).Start(ctx)

		// Salida de vuelta: las decisiones publicadas alimentan la analítica.
		if auditConsumer != nil {
			decisionsReader := kafka.NewReader(kafka.ReaderConfig{
				Brokers:  cfg.KafkaBrokers,
				Topic:    kafkaPublisher.TopicFor(moderationDomain.EventModerationDecisionAdded),
				GroupID:  cfg.ConsumerGroup + "-analytics",
				MinBytes: 10e3, // 10KB
				MaxBytes: 10e6, // 10MB
			})
			defer decisionsReader.Close()

			infraEvents.NewConsumerAdapter(decisionsReader, auditConsumer, log).Start(ctx)
		}
	} else {
		log.Info("⚡️Usando bus de eventos en memoria (canales de Go)")

		inMemory := infraEvents.NewInMemoryPublisher(10, log)
		publisher = inMemory

		// Sin broker no llegan meetups de otros servicios; solo se escuchan
		// los eventos propios para la analítica.
		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case msg := <-inMemory.Subscribe():
					if auditConsumer != nil && msg.EventType == moderationDomain.EventModerationDecisionAdded {
						auditConsumer.HandleMessage(ctx, msg.MessageID.String(), msg.Data)
					}
				}
			}
		}()
	}

	// ------------ Outbox Relay ------------
	// Se podría ejecutar externamente
	processor := outbox.NewProcessor(adapters.OutboxStore(db), publisher, log)

	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Warn("⚠️ MongoDB no disponible, archivo de mensajes deshabilitado", zap.Error(err))
		} else {
			defer mongoClient.Disconnect(ctx)
			processor = processor.WithArchiver(outboxMongo.NewMessageArchive(mongoClient, cfg.MongoDB))
			log.Info("✅ MongoDB conectado, archivo de mensajes habilitado")
		}
	}

	worker := relay.NewWorker(processor, cfg.OutboxPeriod, cfg.OutboxLimit, log)
	go worker.Start(ctx)

	// ---------------- HTTP ----------------
	handler := moderationHttp.NewModerationHandler(scope)
	router := gin.Default()
	moderationHttp.RegisterModerationRoutes(router, handler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("🚀 Server running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
