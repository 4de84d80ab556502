package app

import (
	"context"
	"fmt"

	"planning-bot/internal/config"
	"planning-bot/internal/planningapi"
	"planning-bot/internal/repository"
	"planning-bot/internal/service"
	"planning-bot/internal/state"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Services - сервисы планирования поверх выбранного бэкенда
type Services struct {
	Establishments *service.EstablishmentService
	Users          *service.UserService
	Templates      *service.TemplateService
	Shifts         *service.ShiftService
	Absences       *service.AbsenceService
	Planning       *service.PlanningService
}

func NewServices(backend *repository.Backend, cfg *config.BotConfig, settings *config.Settings) *Services {
	return &Services{
		Establishments: service.NewEstablishmentService(backend.Establishments),
		Users:          service.NewUserService(backend.Users),
		Templates:      service.NewTemplateService(backend.Templates),
		Shifts:         service.NewShiftService(backend.Shifts),
		Absences:       service.NewAbsenceService(backend.Shifts, settings.Labels()),
		Planning:       service.NewPlanningService(backend, cfg.WeekStartsOn),
	}
}

// OpenBackend подключает REST API или локальную базу по BACKEND_MODE.
// Возвращаемая функция освобождает ресурсы бэкенда
func OpenBackend(ctx context.Context, cfg *config.BotConfig) (*repository.Backend, func() error, error) {
	switch cfg.BackendMode {
	case config.BackendLocal:
		db, err := repository.OpenSQLite(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}

		backend, err := repository.NewGormBackend(db)
		if err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}

		logrus.WithField("database", cfg.DatabaseURL).Info("Using local planning database")
		return backend, sqlDB.Close, nil

	case config.BackendAPI:
		opts := []planningapi.Option{
			planningapi.WithTimeout(cfg.APITimeout),
			planningapi.WithRateLimit(float64(cfg.APIRateLimit), int(cfg.APIRateLimit)),
		}
		if cfg.APIToken != "" {
			opts = append(opts, planningapi.WithToken(cfg.APIToken))
		}
		client := planningapi.NewClient(cfg.APIBaseURL, opts...)

		if cfg.APIToken == "" && cfg.HasCredentials() {
			if _, err := client.Login(ctx, cfg.APIEmail, cfg.APIPassword); err != nil {
				return nil, nil, fmt.Errorf("login to planning API: %w", err)
			}
		}

		logrus.WithField("base_url", cfg.APIBaseURL).Info("Using planning REST API")
		return client.Backend(), func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("unknown backend mode %q", cfg.BackendMode)
}

// OpenStateStore - Redis при заданном REDIS_ADDR, иначе хранилище в памяти
func OpenStateStore(ctx context.Context, cfg *config.BotConfig) (state.Store, func() error, error) {
	if cfg.RedisAddr == "" {
		logrus.Warn("REDIS_ADDR is not set, chat state is kept in memory")
		return state.NewMemoryStore(), func() error { return nil }, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDB),
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	logrus.WithField("addr", cfg.RedisAddr).Info("Chat state stored in redis")
	return state.NewRedisStore(client, cfg.StateTTL), client.Close, nil
}
