package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	intconfig "github.com/iwatajunior/transportes-sub001/internal/config"
	intdb "github.com/iwatajunior/transportes-sub001/internal/db"
	"github.com/iwatajunior/transportes-sub001/internal/events"
	router "github.com/iwatajunior/transportes-sub001/internal/http"
	"github.com/iwatajunior/transportes-sub001/internal/http/handlers"
	"github.com/iwatajunior/transportes-sub001/internal/services"
	"github.com/iwatajunior/transportes-sub001/internal/utils"
)

func main() {
	env, err := intconfig.LoadEnv()
	utils.ConfigureLogger(env.LogLevel, env.LogFormat, os.Stdout)
	if err != nil {
		utils.Log.WithError(err).Fatal("invalid configuration")
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		utils.Log.WithError(err).Fatal("database connection failed")
	}
	defer intconfig.CloseDB()

	var cache *services.LookupCache
	rdb, err := intconfig.ConnectRedis(context.Background(), env)
	switch {
	case err != nil:
		utils.Log.WithError(err).Warn("redis unavailable, lookup cache disabled")
	case rdb != nil:
		defer closeRedis(rdb)
		cache = &services.LookupCache{Client: rdb, TTL: env.CacheTTL}
	}

	loc, err := time.LoadLocation(env.Timezone)
	if err != nil {
		utils.Log.WithError(err).Warnf("unknown timezone %q, using local time", env.Timezone)
		loc = time.Local
	}

	hub := events.NewHub(originChecker(env.CORSOrigins))
	defer hub.Close()

	hd := handlers.New(handlers.Deps{
		DB:        db,
		Dialect:   intdb.ParseDialect(env.DBDriver),
		Bus:       hub,
		Cache:     cache,
		JWTSecret: []byte(env.JWTSecret),
		JWTTTL:    env.JWTTTL,
		Location:  loc,
	})
	r := router.NewRouter(hd, router.Options{CORSOrigins: env.CORSOrigins, Hub: hub})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		utils.Log.Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	utils.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		utils.Log.WithError(err).Error("graceful shutdown failed")
		return
	}

	utils.Log.Info("server stopped")
}

// originChecker applies the CORS allow-list to WebSocket handshakes.
func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

func closeRedis(c *redis.Client) {
	if err := c.Close(); err != nil {
		utils.Log.WithError(err).Warn("redis close failed")
	}
}
