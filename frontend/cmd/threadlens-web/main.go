package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/threadlens/threadlens/frontend/internal/router"
	"github.com/threadlens/threadlens/frontend/internal/setup"
	"github.com/threadlens/threadlens/shared/config"
	"github.com/threadlens/threadlens/shared/logger"
)

func loadDotEnv() {
	for _, f := range []string{".env.local", ".env"} {
		if _, err := os.Stat(f); err == nil {
			_ = godotenv.Load(f)
		}
	}
}

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "frontend/config", "path to folder with configs")
	flag.Parse()

	loadDotEnv()
	cfg := config.MustLoadPublic(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		logger.Log.Error("setup failed", "error", err)
		os.Exit(1)
	}

	r := router.New(deps)

	addr := cfg.Public.ListenAddr
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Log.Info("gallery viewer listening", "addr", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
