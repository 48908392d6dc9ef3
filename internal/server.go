package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/fittrack/fittrack/internal/admin"
	"github.com/fittrack/fittrack/internal/auth"
	"github.com/fittrack/fittrack/internal/broadcast"
	"github.com/fittrack/fittrack/internal/config"
	"github.com/fittrack/fittrack/internal/db"
	"github.com/fittrack/fittrack/internal/ledger"
	"github.com/fittrack/fittrack/internal/middleware"
	"github.com/fittrack/fittrack/internal/public"
	"github.com/fittrack/fittrack/internal/stats"
	"github.com/fittrack/fittrack/internal/telemetry/metrics"
	"github.com/fittrack/fittrack/internal/telemetry/tracing"
	"github.com/fittrack/fittrack/internal/users"
	"github.com/fittrack/fittrack/internal/view"
	"github.com/fittrack/fittrack/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	authService  *auth.Service
	loginChecker *auth.LoginChecker

	ledgerRepo       *ledger.Repo
	ledgerService    *ledger.Service
	usersRepo        *users.Repo
	broadcaster      *broadcast.Broadcaster
	weeklyCache      *stats.WeeklyCache
	publicAggregator *public.Aggregator

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

// changeFanout is the single sink for durable ledger mutations: it
// drops the derived caches and wakes live subscribers. Invalidation
// runs before the wake so a subscriber that refreshes immediately
// cannot read a stale week.
type changeFanout struct {
	broadcaster *broadcast.Broadcaster
	weeklyCache *stats.WeeklyCache
}

func (f *changeFanout) NotifyChanged(ownerID int) {
	f.weeklyCache.Invalidate(ownerID)
	f.weeklyCache.Invalidate(0) // cross-user snapshot includes every owner
	f.broadcaster.NotifyChanged(ownerID)
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fittrack", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fittrack-backend")
	if err != nil {
		return nil, err
	}

	broadcaster := broadcast.NewBroadcaster(metricsManager)
	weeklyCache := stats.NewWeeklyCache(params.Config.WeeklyCacheTTLSeconds)

	ledgerRepo := ledger.NewRepo(dbPool)
	ledgerService := ledger.NewService(ledgerRepo, &changeFanout{
		broadcaster: broadcaster,
		weeklyCache: weeklyCache,
	}, metricsManager)

	s := &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, authService),

		ledgerRepo:    ledgerRepo,
		ledgerService: ledgerService,
		usersRepo:     users.NewRepo(dbPool),
		broadcaster:   broadcaster,
		weeklyCache:   weeklyCache,
		publicAggregator: public.NewAggregator(
			ledgerRepo,
			weeklyCache,
			params.Config.WeeklyCaloriesGoal,
		),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, "fittrack backend")
	}).Methods("GET").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	usersHandler := users.NewHandler(s.usersRepo, s.authService)
	r.HandleFunc("/register", usersHandler.HandleRegister).Methods("POST", "OPTIONS").Name("register")
	r.Handle("/login", middleware.RateLimit(
		reqRateLimiter,
		"login",
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	)(http.HandlerFunc(usersHandler.HandleLogin))).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/logout", usersHandler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	r.HandleFunc("/profile/avatar", usersHandler.HandleGetAvatar).Methods("GET", "OPTIONS").Name("get-avatar")
	r.HandleFunc("/profile/avatar", usersHandler.HandleSetAvatar).Methods("PUT", "OPTIONS").Name("set-avatar")

	ledgerHandler := ledger.NewHandler(s.ledgerService)
	r.HandleFunc("/workouts", ledgerHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts", ledgerHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/{id}", ledgerHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	r.HandleFunc("/workouts/{id}/archive", ledgerHandler.HandleArchive).Methods("POST", "OPTIONS").Name("archive-workout")
	r.HandleFunc("/workouts/{id}/restore", ledgerHandler.HandleRestore).Methods("POST", "OPTIONS").Name("restore-workout")
	r.HandleFunc("/workouts/archive/restore-all", ledgerHandler.HandleRestoreAll).Methods("POST", "OPTIONS").Name("restore-all-workouts")
	r.HandleFunc("/workouts/archive/clear", ledgerHandler.HandleClearArchive).Methods("POST", "OPTIONS").Name("clear-workout-archive")
	r.HandleFunc("/workouts/import", ledgerHandler.HandleImport).Methods("POST", "OPTIONS").Name("import-workouts")
	r.HandleFunc("/workouts/export", ledgerHandler.HandleExport).Methods("GET", "OPTIONS").Name("export-workouts")

	analyzer := stats.NewAnalyzer(
		s.ledgerService,
		s.config.WeeklyCaloriesGoal,
		s.config.WorkoutCountGoal,
	)
	statsHandler := stats.NewHandler(analyzer, s.weeklyCache)
	r.HandleFunc("/stats/overview", statsHandler.HandleOverview).Methods("GET", "OPTIONS").Name("stats-overview")
	r.HandleFunc("/stats/weekly", statsHandler.HandleWeekly).Methods("GET", "OPTIONS").Name("stats-weekly")

	adminHandler := admin.NewHandler(s.ledgerService, s.usersRepo)
	r.HandleFunc("/admin/data", adminHandler.HandleData).Methods("GET", "OPTIONS").Name("admin-data")
	r.HandleFunc("/admin/users/{id}/workouts", adminHandler.HandleUserWorkouts).Methods("GET", "OPTIONS").Name("admin-user-workouts")
	r.HandleFunc("/admin/users/{id}/archive", adminHandler.HandleArchiveUser).Methods("POST", "OPTIONS").Name("admin-archive-user")
	r.HandleFunc("/admin/users/{id}/restore", adminHandler.HandleRestoreUser).Methods("POST", "OPTIONS").Name("admin-restore-user")
	r.HandleFunc("/admin/users/{id}/delete", adminHandler.HandleDeleteUser).Methods("POST", "OPTIONS").Name("admin-delete-user")

	publicHandler := public.NewHandler(s.publicAggregator)
	r.HandleFunc("/public/stats", publicHandler.HandleStats).Methods("GET", "OPTIONS").Name("public-stats")

	eventsHandler := broadcast.NewHandler(s.broadcaster)
	r.HandleFunc("/events", eventsHandler.HandleEvents).Methods("GET").Name("events")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	// the community snapshot follows every ledger change, with the
	// fallback poll covering missed or failed refreshes
	publicSub := s.broadcaster.Subscribe(view.Public())
	publicObserver := broadcast.NewObserver(
		s.publicAggregator.Refresh,
		time.Duration(s.config.RefreshThrottleSeconds)*time.Second,
		time.Duration(s.config.FallbackPollIntervalSeconds)*time.Second,
	)
	go func() {
		defer s.broadcaster.Unsubscribe(publicSub)
		publicObserver.Run(ctx, publicSub.Signals())
	}()

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}
