package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-seat-booking/internal/booking"
	"github.com/iliyamo/cinema-seat-booking/internal/config"
	"github.com/iliyamo/cinema-seat-booking/internal/database"
	"github.com/iliyamo/cinema-seat-booking/internal/handler"
	"github.com/iliyamo/cinema-seat-booking/internal/middleware"
	"github.com/iliyamo/cinema-seat-booking/internal/queue"
	"github.com/iliyamo/cinema-seat-booking/internal/repository"
	"github.com/iliyamo/cinema-seat-booking/internal/router"
	queue_publisher "github.com/iliyamo/cinema-seat-booking/internal/service"
	"github.com/iliyamo/cinema-seat-booking/internal/store"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	} else {
		defer rdb.Close()
	}

	var factory store.Factory
	switch cfg.StoreDriver {
	case config.DriverRedis:
		if rdb == nil {
			log.Fatal("STORE_DRIVER=redis but redis is unreachable")
		}
		factory = store.NewRedis(rdb, cfg.StorePrefix).Factory()
	default:
		log.Printf("using in-memory booking store; state is lost on restart")
		factory = store.NewMemory().Factory()
	}

	var pub booking.Publisher
	if cfg.PublishEvents {
		pub = queue_publisher.New(cfg.AMQPURL)
	}
	reg, err := booking.NewRegistry(factory, booking.Options{
		Seats:     cfg.SeatCount,
		Catalog:   cfg.Catalog,
		Publisher: pub,
	})
	if err != nil {
		log.Fatal(err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	health := &handler.HealthHandler{Deps: map[string]handler.Pinger{"redis": nil, "db": nil}}
	if rdb != nil {
		health.Deps["redis"] = redisPinger(rdb)
	}

	bookingHandler := handler.NewBookingHandler(reg)
	router.RegisterRoutes(e, health, handler.NewSessionHandler(cfg.SessionSecret, cfg.SessionTTL), bookingHandler)
	router.RegisterBooking(e, bookingHandler, cfg.SessionSecret,
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	if cfg.DB.Enabled() {
		db := openAnalyticsDB(cfg.DB)
		defer db.Close()
		health.Deps["db"] = db
		analytics := handler.NewAnalyticsHandler(repository.NewQRScanRepo(db), cfg.QRRedirectURL)
		router.RegisterAnalytics(e, analytics, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	} else {
		log.Printf("DB_HOST not set; QR analytics endpoints disabled")
	}

	if cfg.ConsumerEnabled {
		go func() {
			if err := queue.StartBookingConsumer(ctx, cfg.AMQPURL, "logs"); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("booking-consumer: stopped: %v", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, store=%s, seats=%d)", addr, cfg.Env, cfg.StoreDriver, cfg.SeatCount)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

func redisPinger(rdb *redis.Client) handler.PingFunc {
	return func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
}

func openAnalyticsDB(cfg config.DBConfig) *sql.DB {
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open analytics db: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("analytics schema: %v", err)
	}
	return db
}
