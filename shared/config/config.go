package config

import (
	"fmt"
	"os"
	"path"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"

	"github.com/threadlens/threadlens/shared/domain"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	ListenAddr string `yaml:"listen_addr" validate:"required"`
	// Origin of the gallery viewer app, used for backend CORS.
	ViewerOrigin string `yaml:"viewer_origin"`
	// Base URL the viewer uses to reach the JSON API.
	ApiBaseUrl string `yaml:"api_base_url"`
	// Prefix prepended to local media paths when cooking URLs (CDN or app host).
	MediaBaseUrl string `yaml:"media_base_url"`
	// Root directory of the local media store (originals and derived thumbnails).
	MediaPath string `yaml:"media_path"`

	Gallery Gallery `yaml:"gallery"`

	LogLevel      string `yaml:"log_level"`
	LogJSON       bool   `yaml:"log_json"`
	SecureCookies bool   `yaml:"secure_cookies"`
}

// Gallery carries the per-request knobs the query engine treats as read-only.
type Gallery struct {
	Enabled bool `yaml:"enabled"`
	// Minimum width AND height for an upload to qualify, inclusive per axis.
	MinImageSize int `yaml:"min_image_size" validate:"gte=0"`
	// Group ids allowed to view galleries. Id 0 means everyone.
	AllowedGroups []domain.GroupId `yaml:"allowed_groups"`
	// Category ids whose topics never expose a gallery.
	ExcludedCategories []domain.CategoryId `yaml:"excluded_categories"`
}

type Private struct {
	Pg        Pg     `yaml:"pg"`
	JwtSecret string `yaml:"jwt_secret" validate:"required"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoadPublic reads only public.yaml. The viewer process carries no
// secrets, so it never touches private.yaml.
func MustLoadPublic(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(public); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
	return &Config{Public: public}
}

// MustLoad reads public.yaml and private.yaml from the folder and validates
// the result. Env vars override secrets: THREADLENS_JWT_SECRET, PG_PASSWORD.
func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	if v := os.Getenv("THREADLENS_JWT_SECRET"); v != "" {
		private.JwtSecret = v
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		private.Pg.Password = v
	}

	cfg := &Config{public, private}
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		panic(fmt.Sprintf("invalid config: %v", err))
	}
	return cfg
}
