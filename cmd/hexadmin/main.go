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
	"github.com/rs/cors"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	activityApp "github.com/davicafu/hexadmin/internal/activity/application"
	activityDomain "github.com/davicafu/hexadmin/internal/activity/domain"
	activityEvents "github.com/davicafu/hexadmin/internal/activity/infra/inbound/events"
	activityHttp "github.com/davicafu/hexadmin/internal/activity/infra/inbound/http"
	activityClickhouse "github.com/davicafu/hexadmin/internal/activity/infra/outbound/analytics/clickhouse"
	activityMongo "github.com/davicafu/hexadmin/internal/activity/infra/outbound/db/mongorepo"
	activitySQL "github.com/davicafu/hexadmin/internal/activity/infra/outbound/db/sqlrepo"
	blogApp "github.com/davicafu/hexadmin/internal/blog/application"
	blogDomain "github.com/davicafu/hexadmin/internal/blog/domain"
	blogHttp "github.com/davicafu/hexadmin/internal/blog/infra/inbound/http"
	blogRepo "github.com/davicafu/hexadmin/internal/blog/infra/outbound/db/sqlrepo"
	"github.com/davicafu/hexadmin/internal/config"
	globalApp "github.com/davicafu/hexadmin/internal/global/application"
	globalDomain "github.com/davicafu/hexadmin/internal/global/domain"
	globalHttp "github.com/davicafu/hexadmin/internal/global/infra/inbound/http"
	globalRepo "github.com/davicafu/hexadmin/internal/global/infra/outbound/db/sqlrepo"
	productApp "github.com/davicafu/hexadmin/internal/product/application"
	productDomain "github.com/davicafu/hexadmin/internal/product/domain"
	productHttp "github.com/davicafu/hexadmin/internal/product/infra/inbound/http"
	productRepo "github.com/davicafu/hexadmin/internal/product/infra/outbound/db/sqlrepo"
	sharedDomain "github.com/davicafu/hexadmin/internal/shared/domain"
	sharedEvents "github.com/davicafu/hexadmin/internal/shared/domain/events"
	infraEvents "github.com/davicafu/hexadmin/internal/shared/infra/events"
	sharedHttp "github.com/davicafu/hexadmin/internal/shared/infra/inbound/http"
	"github.com/davicafu/hexadmin/internal/shared/infra/outbound/filesystem"
	sharedBus "github.com/davicafu/hexadmin/internal/shared/infra/platform/bus"
	sharedCache "github.com/davicafu/hexadmin/internal/shared/infra/platform/cache"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/db/sqlstore"
	"github.com/davicafu/hexadmin/internal/shared/infra/platform/pagination"
	"github.com/davicafu/hexadmin/internal/shared/infra/relayer"
	tagApp "github.com/davicafu/hexadmin/internal/tag/application"
	tagDomain "github.com/davicafu/hexadmin/internal/tag/domain"
	tagHttp "github.com/davicafu/hexadmin/internal/tag/infra/inbound/http"
	tagRepo "github.com/davicafu/hexadmin/internal/tag/infra/outbound/db/sqlrepo"
	teamApp "github.com/davicafu/hexadmin/internal/team/application"
	teamDomain "github.com/davicafu/hexadmin/internal/team/domain"
	teamHttp "github.com/davicafu/hexadmin/internal/team/infra/inbound/http"
	teamRepo "github.com/davicafu/hexadmin/internal/team/infra/outbound/db/sqlrepo"
	userApp "github.com/davicafu/hexadmin/internal/user/application"
	userDomain "github.com/davicafu/hexadmin/internal/user/domain"
	userHttp "github.com/davicafu/hexadmin/internal/user/infra/inbound/http"
	userRepo "github.com/davicafu/hexadmin/internal/user/infra/outbound/db/sqlrepo"
	"github.com/davicafu/hexadmin/internal/user/infra/outbound/security"
	"github.com/davicafu/hexadmin/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// ---------------- Main ----------------
func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.LogLevel)
	log := logger.Logger()
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ---------------- DB ----------------
	dsn := cfg.SQLitePath
	if cfg.DBDriver == "postgres" {
		dsn = cfg.PostgresDSN
	}
	db, err := sqlstore.Open(ctx, cfg.DBDriver, dsn)
	if err != nil {
		log.Fatal("failed to open database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer db.Close()

	if err := db.ExecSchema(ctx, sqlstore.OutboxSchema); err != nil {
		log.Fatal("failed to initialize outbox schema", zap.Error(err))
	}
	// blogs referencia a users: el orden importa.
	schemas := []struct {
		name string
		init func(context.Context, *sqlstore.DB) error
	}{
		{"users", userRepo.InitSchema},
		{"products", productRepo.InitSchema},
		{"tags", tagRepo.InitSchema},
		{"teams", teamRepo.InitSchema},
		{"blogs", blogRepo.InitSchema},
		{"global", globalRepo.InitSchema},
	}
	for _, s := range schemas {
		if err := s.init(ctx, db); err != nil {
			log.Fatal("failed to initialize schema", zap.String("schema", s.name), zap.Error(err))
		}
	}
	log.Info("✅ Database ready", zap.String("driver", string(db.Dialect)))

	// ---------------- Cache ----------------
	cache := newCache(ctx, cfg, log)

	// ---------------- Repos + registro de paginación ----------------
	users := userRepo.NewUserRepo(db)
	products := productRepo.NewProductRepo(db)
	tags := tagRepo.NewTagRepo(db)
	team := teamRepo.NewTeamRepo(db)
	blogs := blogRepo.NewBlogRepo(db)
	siteConfig := globalRepo.NewConfigRepo(db)
	regions := globalRepo.NewRegionRepo(db)

	activities, closeActivities, err := newActivityStore(ctx, cfg, db, log)
	if err != nil {
		log.Fatal("failed to open activity store", zap.String("store", cfg.ActivityStore), zap.Error(err))
	}
	defer closeActivities()

	registry := pagination.NewRegistry[sharedDomain.Criteria]()
	userBinding := mustRegister(pagination.Register[*userDomain.User, sharedDomain.Criteria](registry, userDomain.Kind, users))
	productBinding := mustRegister(pagination.Register[*productDomain.Product, sharedDomain.Criteria](registry, productDomain.Kind, products))
	tagBinding := mustRegister(pagination.Register[*tagDomain.Tag, sharedDomain.Criteria](registry, tagDomain.Kind, tags))
	teamBinding := mustRegister(pagination.Register[*teamDomain.Member, sharedDomain.Criteria](registry, teamDomain.Kind, team))
	blogBinding := mustRegister(pagination.Register[*blogDomain.Blog, sharedDomain.Criteria](registry, blogDomain.Kind, blogs))
	provinceBinding := mustRegister(pagination.Register[*globalDomain.Province, sharedDomain.Criteria](registry, globalDomain.ProvinceKind, regions.Provinces()))
	cityBinding := mustRegister(pagination.Register[*globalDomain.City, sharedDomain.Criteria](registry, globalDomain.CityKind, regions.Cities()))
	activityBinding := mustRegister(pagination.Register[*activityDomain.Activity, sharedDomain.Criteria](registry, activityDomain.Kind, activities))
	log.Info("📚 Entities registered", zap.Strings("kinds", registry.Kinds()))

	// --------------- Servicios --------------
	loc := cfg.Location()
	hasher := security.NewBcryptHasher()
	tokens := security.NewJWTIssuer(cfg.TokenSecret, cfg.TokenTTL, cfg.RefreshTokenTTL)

	authService := userApp.NewAuthService(users, hasher, tokens, log)
	userService := userApp.NewUserService(users, userBinding, hasher, cache, log)
	productService := productApp.NewProductService(products, productBinding, cache, log)
	tagService := tagApp.NewTagService(tags, tagBinding, cache, log)
	teamService := teamApp.NewTeamService(team, teamBinding,
		filesystem.NewImageStorage(cfg.PublicDir, teamDomain.Kind, loc), cache, log)
	blogService := blogApp.NewBlogService(blogs, blogBinding,
		filesystem.NewImageStorage(cfg.PublicDir, blogDomain.Kind, loc), cache, log)
	globalService := globalApp.NewGlobalService(siteConfig, regions, provinceBinding, cityBinding, cache, log)
	activityService := activityApp.NewActivityService(activities, activityBinding, log)

	// ---------------- Seeds ----------------
	if err := globalService.SeedRegions(ctx); err != nil {
		log.Warn("Failed to seed regions", zap.Error(err))
	}
	if cfg.SeedAdmin {
		if err := authService.SeedAdmin(ctx, userDomain.AdminSeed()); err != nil {
			log.Warn("Failed to seed admin user", zap.Error(err))
		}
	}

	// ---------------- Events ---------------
	activityConsumer := activityEvents.NewActivityConsumer(activityService, log)
	publisher := startEventBus(ctx, cfg, activityConsumer, log)

	// ------------ Outbox Worker ------------
	eventRegistry := sharedEvents.MergeRegistries(
		userDomain.NewEventRegistry(),
		productDomain.NewEventRegistry(),
		tagDomain.NewEventRegistry(),
		teamDomain.NewEventRegistry(),
		blogDomain.NewEventRegistry(),
		globalDomain.NewEventRegistry(),
	)
	outboxWorker := relayer.NewOutboxWorker(sqlstore.NewOutboxRepo(db), publisher, eventRegistry, cfg.OutboxPeriod, cfg.OutboxLimit, log)
	go outboxWorker.Start(ctx)

	// ---------------- HTTP ----------------
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(sharedHttp.Recovery(log), sharedHttp.ZapLogger(log))
	router.Static("/static", cfg.PublicDir)
	sharedHttp.RegisterSystemRoutes(router, loc)

	auth := sharedHttp.RequireAuth(userHttp.NewTokenAuthenticator(authService))
	api := router.Group("/api/v1")
	userHttp.RegisterAuthRoutes(api, userHttp.NewAuthHandler(authService, userService), auth)
	userHttp.RegisterUserRoutes(api, userHttp.NewUserHandler(userService), auth)
	productHttp.RegisterProductRoutes(api, productHttp.NewProductHandler(productService), auth)
	tagHttp.RegisterTagRoutes(api, tagHttp.NewTagHandler(tagService), auth)
	teamHttp.RegisterTeamRoutes(api, teamHttp.NewTeamHandler(teamService), auth)
	blogHttp.RegisterBlogRoutes(api, blogHttp.NewBlogHandler(blogService), auth)
	globalHttp.RegisterGlobalRoutes(api, globalHttp.NewGlobalHandler(globalService))
	activityHttp.RegisterActivityRoutes(api, activityHttp.NewActivityHandler(activityService), auth)
	sharedHttp.RegisterEntityRoutes(api, sharedHttp.NewEntityHandler(registry), auth)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           cors.AllowAll().Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("🚀 Server running", zap.String("url", "http://localhost:"+cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server shutdown failed", zap.Error(err))
	}
}

// mustRegister sólo falla por un nombre repetido o un handle nil: error de programación.
func mustRegister[T any](b *pagination.Binding[T, sharedDomain.Criteria], err error) *pagination.Binding[T, sharedDomain.Criteria] {
	if err != nil {
		panic(err)
	}
	return b
}

// newCache usa Redis si responde y, si no, una caché en memoria.
func newCache(ctx context.Context, cfg *config.Config, log *zap.Logger) sharedCache.Cache {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		err := rdb.Ping(ctx).Err()
		if err == nil {
			log.Info("✅ Redis conectado, cache habilitado", zap.String("addr", cfg.RedisAddr))
			return sharedCache.NewRedisCache(rdb, "hexadmin", cfg.CacheTTL)
		}
		log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		_ = rdb.Close()
	}
	return sharedCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
}

// newActivityStore elige dónde se guarda la actividad según ACTIVITY_STORE.
func newActivityStore(ctx context.Context, cfg *config.Config, db *sqlstore.DB, log *zap.Logger) (activityDomain.ActivityRepository, func(), error) {
	switch cfg.ActivityStore {
	case "clickhouse":
		repo, err := activityClickhouse.NewActivityRepo(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			return nil, nil, err
		}
		if err := repo.InitSchema(ctx); err != nil {
			repo.Close()
			return nil, nil, err
		}
		log.Info("📊 Activity log on ClickHouse", zap.String("addr", cfg.ClickHouseAddr))
		return repo, func() { repo.Close() }, nil

	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, nil, err
		}
		closeClient := func() { _ = client.Disconnect(context.Background()) }
		repo, err := activityMongo.NewActivityRepo(ctx, client, cfg.MongoDB)
		if err != nil {
			closeClient()
			return nil, nil, err
		}
		if err := repo.InitSchema(ctx); err != nil {
			closeClient()
			return nil, nil, err
		}
		log.Info("📊 Activity log on MongoDB", zap.String("db", cfg.MongoDB))
		return repo, closeClient, nil

	default:
		if err := activitySQL.InitSchema(ctx, db); err != nil {
			return nil, nil, err
		}
		return activitySQL.NewActivityRepo(db), func() {}, nil
	}
}

// startEventBus arranca Kafka o el bus en memoria y conecta el consumidor de actividad.
func startEventBus(ctx context.Context, cfg *config.Config, consumer sharedBus.MessageHandler, log *zap.Logger) sharedBus.EventBus {
	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos", zap.Strings("brokers", cfg.KafkaBrokers))

		writer := kafka.NewWriter(kafka.WriterConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    cfg.KafkaTopic,
			Balancer: &kafka.Hash{},
		})
		go func() {
			<-ctx.Done()
			writer.Close()
		}()

		reader := kafka.NewReader(kafka.ReaderConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    cfg.KafkaTopic,
			GroupID:  cfg.KafkaGroupID,
			MinBytes: 10e3, // 10KB
			MaxBytes: 10e6, // 10MB
		})
		infraEvents.NewConsumerAdapter(reader, consumer, log).Start(ctx)

		return infraEvents.NewKafkaPublisher(writer, log)
	}

	log.Info("⚡️ Usando bus de eventos en memoria (canales de Go)")
	bus := infraEvents.NewInMemoryEventBus(log)
	bus.Consume(ctx, 100, consumer)
	go func() {
		<-ctx.Done()
		bus.Close()
	}()
	return bus
}
