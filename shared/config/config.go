package config

import (
	"os"
	"path"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Addr             string        `yaml:"addr"`
	LogLevel         string        `yaml:"log_level"`
	LogJSON          bool          `yaml:"log_json"`
	JwtTTL           time.Duration `yaml:"jwt_ttl"`
	SecureCookies    bool          `yaml:"secure_cookies"`
	AllowedOrigins   []string      `yaml:"allowed_origins"`
	CommentsPerPage  int           `yaml:"comments_per_page"`  // feed page size for comment lists
	BookingsPerPage  int           `yaml:"bookings_per_page"`  // feed page size when draining booking lists
	RecentBookings   int           `yaml:"recent_bookings"`    // profile/analytics "recent" cutoff
	TopVenues        int           `yaml:"top_venues"`         // analytics chart size
	StatsRefreshSpec string        `yaml:"stats_refresh_spec"` // cron spec for the booking-stats view refresh
	MediaRoot        string        `yaml:"media_root"`
	MediaBaseURL     string        `yaml:"media_base_url"`
	AvatarMaxPixels  int           `yaml:"avatar_max_pixels"` // longest side after downscale
	MaxAvatarBytes   int64         `yaml:"max_avatar_bytes"`
	MigrationsPath   string        `yaml:"migrations_path"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	Pg     Pg     `yaml:"pg"`
	JwtKey string `yaml:"jwt_key"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	// .env is optional; container secrets usually arrive as env vars
	_ = godotenv.Load()

	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	applyDefaults(&public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)
	applyEnvOverrides(&private)

	return &Config{public, private}
}

func applyDefaults(p *Public) {
	if p.Addr == "" {
		p.Addr = ":8080"
	}
	if p.CommentsPerPage == 0 {
		p.CommentsPerPage = 5
	}
	if p.BookingsPerPage == 0 {
		p.BookingsPerPage = 50
	}
	if p.RecentBookings == 0 {
		p.RecentBookings = 5
	}
	if p.TopVenues == 0 {
		p.TopVenues = 10
	}
	if p.StatsRefreshSpec == "" {
		p.StatsRefreshSpec = "@every 5m"
	}
	if p.AvatarMaxPixels == 0 {
		p.AvatarMaxPixels = 512
	}
	if p.MaxAvatarBytes == 0 {
		p.MaxAvatarBytes = 5 << 20
	}
	if p.MigrationsPath == "" {
		p.MigrationsPath = "migrations"
	}
}

// env wins over private.yaml so deployments can keep secrets out of files
func applyEnvOverrides(p *Private) {
	if v := os.Getenv("PG_HOST"); v != "" {
		p.Pg.Host = v
	}
	if v := os.Getenv("PG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			p.Pg.Port = port
		}
	}
	if v := os.Getenv("PG_USER"); v != "" {
		p.Pg.User = v
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		p.Pg.Password = v
	}
	if v := os.Getenv("PG_DBNAME"); v != "" {
		p.Pg.Dbname = v
	}
	if v := os.Getenv("JWT_KEY"); v != "" {
		p.JwtKey = v
	}
}
