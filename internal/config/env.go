package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Env struct {
	App      AppConfig     `koanf:"app"`
	Log      LogConfig     `koanf:"log"`
	DB       DBConfig      `koanf:"db"`
	Auth     AuthConfig    `koanf:"auth"`
	Features FeatureConfig `koanf:"features"`
	CORS     CORSConfig    `koanf:"cors"`
}

type AppConfig struct {
	Addr    string `koanf:"addr"`
	GinMode string `koanf:"gin_mode"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type DBConfig struct {
	Driver string `koanf:"driver"`
	DSN    string `koanf:"dsn"`
	Seed   bool   `koanf:"seed"`
}

type AuthConfig struct {
	Secret string        `koanf:"secret"`
	Cookie string        `koanf:"cookie"`
	TTL    time.Duration `koanf:"ttl"`
	Secure bool          `koanf:"secure"`
}

type FeatureConfig struct {
	PersonsPDF bool `koanf:"persons_pdf"`
}

type CORSConfig struct {
	Origins []string `koanf:"origins"`
}

var defaults = map[string]any{
	"app.addr":             ":8080",
	"app.gin_mode":         "",
	"log.level":            "info",
	"db.driver":            "mysql",
	"db.dsn":               "root:@tcp(127.0.0.1:3306)/persons_app?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
	"db.seed":              true,
	"auth.secret":          "change-me",
	"auth.cookie":          "Auth-Key",
	"auth.ttl":             "24h",
	"auth.secure":          false,
	"features.persons_pdf": true,
	"cors.origins":         []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
}

// LoadEnv reads defaults, then CONFIG_FILE (YAML) when set, then CRUD_*
// environment variables. A .env file in the working directory is loaded
// into the environment first if present.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	for key, v := range defaults {
		if err := k.Set(key, v); err != nil {
			return Env{}, err
		}
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Env{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// CRUD_DB_DSN -> db.dsn, CRUD_FEATURES_PERSONS__PDF -> features.persons_pdf
	if err := k.Load(env.Provider("CRUD_", ".", envKey), nil); err != nil {
		return Env{}, err
	}
	if raw := k.String("cors.origins"); strings.Contains(raw, ",") {
		_ = k.Set("cors.origins", splitList(raw))
	}

	var out Env
	if err := k.Unmarshal("", &out); err != nil {
		return Env{}, err
	}
	return out, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, "CRUD_"))
	s = strings.ReplaceAll(s, "__", "\x00")
	s = strings.ReplaceAll(s, "_", ".")
	return strings.ReplaceAll(s, "\x00", "_")
}

func splitList(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
