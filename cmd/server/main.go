// Package main is the entry point for the shop server.
//
// main stays minimal on purpose:
// 1. Read configuration (env vars, optionally from a .env file)
// 2. Create the logger
// 3. Hand everything to internal/server and block
//
// All actual logic lives in the imported packages.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/HerosSMP/Heros-shop.de/internal/server"
)

const defaultSessionTTL = 12 * time.Hour

func main() {
	// A missing .env file is fine — real deployments set env vars directly.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	dbPath := "data/shop.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", filepath.Dir(dbPath)),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// JWT_SECRET should be a long random string, e.g.
	//   JWT_SECRET=$(openssl rand -hex 32)
	// Without one we generate an ephemeral secret so the server still runs,
	// but every restart then invalidates all admin sessions.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			logger.Error("failed to generate session secret", slog.String("error", err.Error()))
			os.Exit(1)
		}
		jwtSecret = hex.EncodeToString(buf)
		logger.Warn("JWT_SECRET not set — using an ephemeral secret, sessions will not survive restarts")
	}

	sessionTTL := defaultSessionTTL
	if ttlStr := os.Getenv("SESSION_TTL"); ttlStr != "" {
		ttl, err := time.ParseDuration(ttlStr)
		if err != nil || ttl <= 0 {
			logger.Error("invalid SESSION_TTL value, expected a duration like 12h",
				slog.String("value", ttlStr))
			os.Exit(1)
		}
		sessionTTL = ttl
	}

	cfg := server.Config{
		Port:       port,
		DBPath:     dbPath,
		JWTSecret:  jwtSecret,
		SessionTTL: sessionTTL,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until SIGINT/SIGTERM.
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
