package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fleetops/internal/auth"
	intconfig "fleetops/internal/config"
	intdb "fleetops/internal/db"
	router "fleetops/internal/http"
	"fleetops/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	conn, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer intconfig.CloseDB()

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if env.DBAutoMigrate {
		if err := intdb.Migrate(bootCtx, conn); err != nil {
			bootCancel()
			log.Fatalf("migration failed: %v", err)
		}
	}

	tokens := auth.NewTokenService(env.JWTSecret, env.JWTExpiryMinutes)
	admin := services.AuthService{DB: conn, Tokens: tokens, RequestID: "boot"}
	if err := admin.EnsureAdmin(bootCtx, env.AdminUsername, env.AdminPassword); err != nil {
		log.Printf("warning: bootstrap admin not created: %v", err)
	}
	bootCancel()

	r := router.NewRouter(env, tokens)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
