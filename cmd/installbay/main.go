package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"installbay/internal/clover"
	"installbay/internal/commerce"
	"installbay/internal/config"
	"installbay/internal/events"
	"installbay/internal/http/handlers"
	applog "installbay/internal/log"
	"installbay/internal/ratestore"
	"installbay/internal/repos"
	"installbay/internal/services"
	"installbay/internal/supabase"
	"installbay/internal/tracing"
	"installbay/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// logger is not up yet
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	if err := applog.Init(cfg.Server.Env, cfg.Server.LogFile); err != nil {
		_, _ = os.Stderr.WriteString("logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer applog.Sync()
	log := applog.L()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, "installbay", cfg.Server.Env, cfg.Tracing.Endpoint)
	if err != nil {
		log.Fatal("tracing init", zap.Error(err))
	}

	timeout := cfg.Server.VendorTimeout

	// ---------- Integrations ----------
	pos := upstream.Unavailable[services.POS]("missing " + strings.Join(cfg.Clover.Missing(), ", "))
	if len(cfg.Clover.Missing()) == 0 {
		pos = upstream.Ready[services.POS](clover.New(cfg.Clover.APIURL, cfg.Clover.Token, cfg.Clover.MerchantID, timeout))
	} else {
		log.Warn("clover integration disabled", zap.Strings("missing", cfg.Clover.Missing()))
	}
	catalog := upstream.Unavailable[services.Catalog]("missing " + strings.Join(cfg.Commerce.Missing(), ", "))
	if len(cfg.Commerce.Missing()) == 0 {
		catalog = upstream.Ready[services.Catalog](commerce.New(cfg.Commerce.APIURL, cfg.Commerce.Token, cfg.Commerce.StoreID, timeout))
	} else {
		log.Warn("commerce integration disabled", zap.Strings("missing", cfg.Commerce.Missing()))
	}

	// ---------- Storage ----------
	src := handlers.Sources{
		POS:     pos,
		Catalog: catalog,
		Auth:    supabase.NewAuth(cfg.Supabase.URL, cfg.Supabase.AnonKey, timeout),
		Events:  events.Nop{},
	}
	if cfg.Database.URL != "" {
		db, err := repos.OpenDB(cfg.Database.URL)
		if err != nil {
			log.Fatal("database", zap.Error(err))
		}
		defer db.Close()
		src.Bookings = repos.NewSQLBookingRepo(db)
		src.Inquiries = repos.NewSQLInquiryRepo(db)
		log.Info("repositories: direct sql")
	} else {
		rest := supabase.NewREST(cfg.Supabase.URL, cfg.Supabase.ServiceRoleKey, timeout)
		src.Bookings = repos.NewRESTBookingRepo(rest)
		src.Inquiries = repos.NewRESTInquiryRepo(rest)
		log.Info("repositories: hosted rest api")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		pub := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer pub.Close()
		src.Events = pub
		log.Info("events: kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	var limiterStore fiber.Storage
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		limiterStore = ratestore.New(rdb)
		defer limiterStore.Close()
		log.Info("rate limiter: redis", zap.String("addr", cfg.Redis.Addr))
	}

	// ---------- App ----------
	deps := handlers.NewDeps(src, cfg.Server.CookieSecure)
	app := handlers.NewApp(deps, handlers.Options{
		Views:     handlers.NewViews(cfg.Server.TemplatesDir, cfg.Server.Env != "production"),
		StaticDir: cfg.Server.StaticDir,
		Storage:   limiterStore,
		AccessLog: true,
	})

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}()

	log.Info("listening", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Server.Env))
	if err := app.Listen(":" + cfg.Server.Port); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal("listen", zap.Error(err))
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		log.Error("tracing shutdown", zap.Error(err))
	}
}
