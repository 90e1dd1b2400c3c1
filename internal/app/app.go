package app

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-hrm/internal/audit"
	"go-hrm/internal/rbac"
	"go-hrm/internal/shared/connection"
	"go-hrm/internal/state"
	"go-hrm/internal/sync"
)

// App bundles everything main needs to tear down in order.
type App struct {
	Engine    *state.Engine
	Poller    *sync.Poller
	Publisher *audit.Publisher
}

// BuildApp wires the HRM service: loads the aggregate from the State
// Store (seeding it on first run), builds the engine with its commit
// hooks, and registers every feature's routes on the router.
func BuildApp(router *gin.Engine) (*App, error) {
	logger := zap.L().Named("app")

	storeURL := os.Getenv("STORE_URL")
	client := sync.NewClient(storeURL)

	initial, err := loadInitialState(client, logger)
	if err != nil {
		return nil, err
	}

	engine := state.NewEngine(initial)
	if storeURL != "" {
		engine.OnCommit(client.CommitHook())
	}

	var publisher *audit.Publisher
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		publisher = audit.NewPublisher(broker)
		engine.OnCommit(publisher.CommitHook())
		logger.Info("audit mirror enabled", zap.String("broker", broker))
	}

	rbacService, err := rbac.NewService()
	if err != nil {
		return nil, err
	}

	rdb := redisClientFromEnv(logger)

	if err := registerModules(router, engine, rbacService, rdb); err != nil {
		return nil, err
	}

	var poller *sync.Poller
	if storeURL != "" {
		poller = sync.NewPoller(client, engine, pollIntervalFromEnv())
		poller.Start()
		logger.Info("store poller running", zap.String("store_url", storeURL))
	}

	return &App{Engine: engine, Poller: poller, Publisher: publisher}, nil
}

// Shutdown stops background work before the process exits. The poller
// goes first so a late pull cannot race the closing engine.
func (a *App) Shutdown(ctx context.Context) {
	if a.Poller != nil {
		a.Poller.Stop()
	}
	a.Engine.Close()
	if a.Publisher != nil {
		if err := a.Publisher.Close(); err != nil {
			zap.L().Warn("audit publisher close failed", zap.Error(err))
		}
	}
}

// loadInitialState pulls the document from the store, seeding a fresh
// one when the store is empty or unreachable. A pull failure degrades
// to local-only operation instead of refusing to start.
func loadInitialState(client *sync.Client, logger *zap.Logger) (*state.HRMState, error) {
	if os.Getenv("STORE_URL") == "" {
		logger.Warn("STORE_URL not set, running local-only")
		return seedState()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	remote, err := client.Pull(ctx)
	if err != nil {
		logger.Warn("store unreachable at startup, running local-only until next sync", zap.Error(err))
		return seedState()
	}
	if remote != nil {
		logger.Info("state loaded from store")
		return remote, nil
	}

	seeded, err := seedState()
	if err != nil {
		return nil, err
	}
	if _, err := client.Init(ctx, seeded); err != nil {
		logger.Warn("store init failed", zap.Error(err))
	}
	return seeded, nil
}

// seedState builds a fresh aggregate with one admin account so the
// first login is possible. Credentials come from the environment.
func seedState() (*state.HRMState, error) {
	st := state.NewState()

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	adminID := uuid.New()
	st.Employees = append(st.Employees, state.Employee{
		ID:                adminID,
		FullName:          "Administrator",
		Email:             email,
		Password:          string(hashed),
		Role:              state.RoleAdmin,
		MonthlyHourTarget: state.MonthlyTargets[0],
		HourlyRate:        0,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	st.OvertimeSettings = append(st.OvertimeSettings, state.OvertimeSettings{
		EmployeeID:         adminID,
		OvertimeMultiplier: 1.0,
		UpdatedAt:          now,
	})
	return st, nil
}

func redisClientFromEnv(logger *zap.Logger) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	rdb, err := connection.ConnectRedisWithRetry(addr, 5)
	if err != nil {
		logger.Warn("redis unavailable, idempotency disabled", zap.Error(err))
		return nil
	}
	return rdb
}

func pollIntervalFromEnv() time.Duration {
	raw := os.Getenv("POLL_INTERVAL")
	if raw == "" {
		return sync.DefaultPollInterval
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return sync.DefaultPollInterval
	}
	return d
}
