package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Port     string `mapstructure:"port"`
		Env      string `mapstructure:"env"`
		LogLevel string `mapstructure:"log_level"`
	} `mapstructure:"app"`
	DB struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Cache struct {
		ScoreTTL time.Duration `mapstructure:"score_ttl"`
	} `mapstructure:"cache"`
	Kafka struct {
		Brokers []string `mapstructure:"brokers"`
	} `mapstructure:"kafka"`
	Auth struct {
		JWTSecret     string        `mapstructure:"jwt_secret"`
		TokenLifespan time.Duration `mapstructure:"token_lifespan"`
	} `mapstructure:"auth"`
	OpenAI struct {
		APIKey  string `mapstructure:"api_key"`
		BaseURL string `mapstructure:"base_url"`
		Model   string `mapstructure:"model"`
	} `mapstructure:"openai"`
	Providers struct {
		GitHubToken          string        `mapstructure:"github_token"`
		TwitterBearerToken   string        `mapstructure:"twitter_bearer_token"`
		YouTubeAPIKey        string        `mapstructure:"youtube_api_key"`
		InstagramAccessToken string        `mapstructure:"instagram_access_token"`
		Timeout              time.Duration `mapstructure:"timeout"`
		RatePerSecond        float64       `mapstructure:"rate_per_second"`
	} `mapstructure:"providers"`
	Tracing struct {
		OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	} `mapstructure:"tracing"`
}

// LoadConfig reads .env and config.yaml from the given search paths (the
// working directory when none are given), then applies environment overrides.
func LoadConfig(paths ...string) (cfg Config, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	envFiles := make([]string, 0, len(paths))
	for _, p := range paths {
		envFiles = append(envFiles, strings.TrimSuffix(p, "/")+"/.env")
	}
	if err = godotenv.Load(envFiles...); err != nil {
		log.Println("warning: .env file not found, use default.")
	}

	v := viper.New()
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err = v.ReadInConfig(); err != nil {
		log.Printf("note: config.yaml not found, read .env only. Error: %v", err)
	}

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.BindEnv("app.port", "APP_PORT")
	v.BindEnv("app.env", "APP_ENV")
	v.BindEnv("app.log_level", "LOG_LEVEL")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("redis.addr", "REDIS_ADDR")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("cache.score_ttl", "CACHE_SCORE_TTL")
	v.BindEnv("kafka.brokers", "KAFKA_BROKERS")
	v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	v.BindEnv("auth.token_lifespan", "TOKEN_LIFESPAN")

	v.BindEnv("openai.api_key", "OPENAI_API_KEY")
	v.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	v.BindEnv("openai.model", "OPENAI_MODEL")

	v.BindEnv("providers.github_token", "GITHUB_TOKEN")
	v.BindEnv("providers.twitter_bearer_token", "TWITTER_BEARER_TOKEN")
	v.BindEnv("providers.youtube_api_key", "YOUTUBE_API_KEY")
	v.BindEnv("providers.instagram_access_token", "INSTAGRAM_ACCESS_TOKEN")
	v.BindEnv("providers.timeout", "PROVIDER_TIMEOUT")
	v.BindEnv("providers.rate_per_second", "PROVIDER_RATE_PER_SECOND")

	v.BindEnv("tracing.otlp_endpoint", "OTLP_ENDPOINT")

	err = v.Unmarshal(&cfg)
	if err != nil {
		return
	}
	cfg.Kafka.Brokers = splitBrokers(cfg.Kafka.Brokers)
	return
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.env", "development")
	v.SetDefault("cache.score_ttl", 10*time.Minute)
	v.SetDefault("auth.token_lifespan", 24*time.Hour)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("providers.timeout", 15*time.Second)
	v.SetDefault("providers.rate_per_second", 5.0)
}

// splitBrokers accepts both a YAML list and a comma separated env value.
func splitBrokers(raw []string) []string {
	brokers := make([]string, 0, len(raw))
	for _, item := range raw {
		for _, b := range strings.Split(item, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}
	return brokers
}
