package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	inhttp "github.com/suchimauz/doctor-schedule-engine/internal/adapters/in/http"
	"github.com/suchimauz/doctor-schedule-engine/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/doctor-schedule-engine/internal/adapters/out/cache"
	"github.com/suchimauz/doctor-schedule-engine/internal/adapters/out/logger"
	"github.com/suchimauz/doctor-schedule-engine/internal/adapters/out/memstore"
	"github.com/suchimauz/doctor-schedule-engine/internal/adapters/out/postgres"
	"github.com/suchimauz/doctor-schedule-engine/internal/config"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/ports/out"
	"github.com/suchimauz/doctor-schedule-engine/internal/core/services"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"postgresEnabled": cfg.Postgres.URL != "",
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Хранилище: postgres при заданном URL, иначе память процесса
	var ruleStore out.RuleStorePort
	var shiftStore out.ShiftStorePort
	var bookingPort out.BookingPort

	if cfg.Postgres.URL != "" {
		pgAdapter, err := postgres.NewPostgresAdapter(ctx, cfg, mainLogger.WithModule("PostgresAdapter"))
		if err != nil {
			log.Error("app.postgres.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		defer pgAdapter.Close()

		ruleStore = pgAdapter
		shiftStore = pgAdapter
		bookingPort = pgAdapter
	} else {
		memAdapter := memstore.NewMemStoreAdapter(mainLogger.WithModule("MemStoreAdapter"))
		ruleStore = memAdapter
		shiftStore = memAdapter
		bookingPort = memAdapter
	}

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	// Инициализация сервисов
	slotGenerator := services.NewSlotGeneratorService(ruleStore, bookingPort, cacheAdapter, mainLogger)
	weekPlanner := services.NewWeekPlannerService(slotGenerator, mainLogger)
	availability := services.NewAvailabilityService(ruleStore, bookingPort, cacheAdapter, mainLogger)
	scheduleFacade := services.NewScheduleFacade(slotGenerator, weekPlanner, availability)
	shiftService := services.NewShiftService(shiftStore, mainLogger)

	// Настройка HTTP сервера
	router := gin.Default()
	controller := inhttp.NewScheduleController(scheduleFacade, shiftService, cfg)
	controller.RegisterRoutes(router)

	// Слушатель событий только если включен RabbitMQ
	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewScheduleCacheListener(scheduleFacade, cfg, mainLogger.WithModule("RabbitMQListener"))
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
