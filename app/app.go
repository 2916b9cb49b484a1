package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"equipment_borrow/db"
	"equipment_borrow/session"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Repo   *db.Repo
	Config Config

	appSess *session.AppSessionStore
}

// Config 从环境变量读取
type Config struct {
	Port        string
	DatabaseURL string
	DBDebug     bool
	RedisAddr   string
	RedisPwd    string
	WebOrigins  []string
	SessionTTL  time.Duration
	SeenEvery   time.Duration

	BootstrapModeratorEmail string
	SeedDemo                bool
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

// SecureCookie 只要有一个 https 来源就下发 Secure cookie
func (c Config) SecureCookie() bool {
	for _, o := range c.WebOrigins {
		if strings.HasPrefix(o, "https://") {
			return true
		}
	}
	return false
}

func MustNew(cfg Config) *App {
	// --- DB: Postgres ---
	dbConn, err := db.ConnectDB(cfg.DatabaseURL, cfg.DBDebug)
	if err != nil {
		log.Fatalf("db: %v", err)
	}

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- Gin ---
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger())
	useCORS(r, cfg.WebOrigins)

	return &App{
		Router: r, DB: dbConn, RDB: rdb, Repo: db.NewRepo(dbConn), Config: cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
}

func (a *App) Close() {
	_ = a.RDB.Close()
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func LoadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	seconds := func(k string, def time.Duration) time.Duration {
		n, err := strconv.Atoi(os.Getenv(k))
		if err != nil || n <= 0 {
			return def
		}
		return time.Duration(n) * time.Second
	}
	var origins []string
	for _, o := range strings.Split(get("WEB_ORIGINS", "http://localhost:3000"), ",") {
		if s := strings.TrimSpace(o); s != "" {
			origins = append(origins, s)
		}
	}
	return Config{
		Port:                    get("PORT", "3001"),
		DatabaseURL:             db.DSNFromEnv(),
		DBDebug:                 os.Getenv("DB_DEBUG") == "true",
		RedisAddr:               get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:                os.Getenv("REDIS_PASSWORD"),
		WebOrigins:              origins,
		SessionTTL:              seconds("SESSION_TTL_SECONDS", 24*time.Hour),
		SeenEvery:               seconds("LAST_SEEN_THROTTLE_SECONDS", 5*time.Minute),
		BootstrapModeratorEmail: strings.ToLower(strings.TrimSpace(os.Getenv("BOOTSTRAP_MODERATOR_EMAIL"))),
		SeedDemo:                os.Getenv("SEED_DEMO") == "true",
	}
}

func (c Config) String() string {
	return fmt.Sprintf("port=%s redis=%s origins=%v session_ttl=%s seed_demo=%v", c.Port, c.RedisAddr, c.WebOrigins, c.SessionTTL, c.SeedDemo)
}
