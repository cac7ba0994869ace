package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/threadlens/threadlens/backend/internal/router"
	"github.com/threadlens/threadlens/backend/internal/setup"
	"github.com/threadlens/threadlens/shared/config"
	"github.com/threadlens/threadlens/shared/logger"
)

// loadDotEnv loads .env.local then .env; already-set OS env vars win.
func loadDotEnv() {
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()

	loadDotEnv()
	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("setup failed", "error", err)
		os.Exit(1)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	addr := cfg.Public.ListenAddr
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Log.Info("gallery api listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
