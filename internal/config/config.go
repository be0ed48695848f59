package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Redis    Redis    `mapstructure:",squash"`
	Meta     Meta     `mapstructure:",squash"`
	Render   Render   `mapstructure:",squash"`
	Sync     Sync     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`

	MaxOpenConns int `mapstructure:"database_max_open_conns"`
	MaxIdleConns int `mapstructure:"database_max_idle_conns"`
}

type Redis struct {
	Addr           string `mapstructure:"redis_addr"`
	Password       string `mapstructure:"redis_password"`
	DB             int    `mapstructure:"redis_db"`
	QueueName      string `mapstructure:"redis_queue_name"`
	LedgerTTLHours int    `mapstructure:"redis_ledger_ttl_hours"`
}

type Meta struct {
	BaseURL        string        `mapstructure:"meta_base_url"`
	URL            string        `mapstructure:"meta_url"`
	Version        string        `mapstructure:"meta_version"`
	AccessToken    string        `mapstructure:"meta_access_token"`
	AppID          string        `mapstructure:"meta_app_id"`
	AppSecret      string        `mapstructure:"meta_app_secret"`
	LongLivedToken string        `mapstructure:"meta_long_lived_token"`
	HTTPTimeout    time.Duration `mapstructure:"meta_http_timeout"`
	TokenExpiresAt time.Time     `mapstructure:"-"`
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

// Sync concentra todas as constantes do motor de sincronização. Os valores
// padrão formam uma única configuração coerente e são a referência do projeto.
type Sync struct {
	MaxProcessingTime time.Duration `mapstructure:"sync_max_processing_time"`
	SafetyBuffer      time.Duration `mapstructure:"sync_safety_buffer"`
	MaxIterations     int           `mapstructure:"sync_max_iterations"`
	MaxDeferrals      int           `mapstructure:"sync_max_deferrals"`

	PageSize          int `mapstructure:"sync_page_size"`
	CampaignBatchSize int `mapstructure:"sync_campaign_batch_size"`
	AdSetBatchSize    int `mapstructure:"sync_adset_batch_size"`

	PacingDelay    time.Duration `mapstructure:"sync_pacing_delay"`
	BaseBackoff    time.Duration `mapstructure:"sync_base_backoff"`
	MaxBackoff     time.Duration `mapstructure:"sync_max_backoff"`
	HardBackoffMin time.Duration `mapstructure:"sync_hard_backoff_min"`
	HardBackoffMax time.Duration `mapstructure:"sync_hard_backoff_max"`
	MaxRetries     int           `mapstructure:"sync_max_retries"`

	ContinuationDelay time.Duration `mapstructure:"sync_continuation_delay"`
	DeliveryRetries   int           `mapstructure:"sync_delivery_retries"`
	Disabled          bool          `mapstructure:"sync_disabled"`
	StoreFallback     bool          `mapstructure:"sync_store_fallback"`

	PromoterInterval  time.Duration `mapstructure:"sync_promoter_interval"`
	WatchdogCron      string        `mapstructure:"sync_watchdog_cron"`
	StaleAfter        time.Duration `mapstructure:"sync_stale_after"`
	WorkerConcurrency int           `mapstructure:"sync_worker_concurrency"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/traffic?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)

	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_QUEUE_NAME", "meta-sync")
	viper.SetDefault("REDIS_LEDGER_TTL_HOURS", 48)

	viper.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	viper.SetDefault("META_VERSION", "v22.0")
	viper.SetDefault("META_APP_ID", "your_app_id")
	viper.SetDefault("META_APP_SECRET", "your_app_secret")
	viper.SetDefault("META_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("META_HTTP_TIMEOUT", "30s")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	// Orçamento de tempo por invocação
	viper.SetDefault("SYNC_MAX_PROCESSING_TIME", "80s")
	viper.SetDefault("SYNC_SAFETY_BUFFER", "5s")
	viper.SetDefault("SYNC_MAX_ITERATIONS", 500)
	viper.SetDefault("SYNC_MAX_DEFERRALS", 3) // adiamentos seguidos no mesmo cursor

	// Paginação e lotes
	viper.SetDefault("SYNC_PAGE_SIZE", 100)
	viper.SetDefault("SYNC_CAMPAIGN_BATCH_SIZE", 10)
	viper.SetDefault("SYNC_ADSET_BATCH_SIZE", 10)

	// Ritmo e backoff das chamadas ao Meta
	viper.SetDefault("SYNC_PACING_DELAY", "200ms")
	viper.SetDefault("SYNC_BASE_BACKOFF", "2s")
	viper.SetDefault("SYNC_MAX_BACKOFF", "60s")
	viper.SetDefault("SYNC_HARD_BACKOFF_MIN", "60s")
	viper.SetDefault("SYNC_HARD_BACKOFF_MAX", "300s")
	viper.SetDefault("SYNC_MAX_RETRIES", 3)

	// Continuações
	viper.SetDefault("SYNC_CONTINUATION_DELAY", "2s")
	viper.SetDefault("SYNC_DELIVERY_RETRIES", 3)
	viper.SetDefault("SYNC_DISABLED", false)
	viper.SetDefault("SYNC_STORE_FALLBACK", true)

	viper.SetDefault("SYNC_PROMOTER_INTERVAL", "1s")
	viper.SetDefault("SYNC_WATCHDOG_CRON", "*/10 * * * *") // A cada 10 minutos
	viper.SetDefault("SYNC_STALE_AFTER", "30m")
	viper.SetDefault("SYNC_WORKER_CONCURRENCY", 1)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Meta.URL = fmt.Sprintf("%s/%s", config.Meta.BaseURL, config.Meta.Version)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Sync.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate garante que as constantes do motor formam uma configuração utilizável
func (s Sync) Validate() error {
	if s.MaxProcessingTime <= 0 {
		return fmt.Errorf("config: sync_max_processing_time deve ser positivo")
	}
	if s.SafetyBuffer < 0 || s.SafetyBuffer >= s.MaxProcessingTime {
		return fmt.Errorf("config: sync_safety_buffer (%s) deve ser menor que sync_max_processing_time (%s)", s.SafetyBuffer, s.MaxProcessingTime)
	}
	if s.MaxIterations <= 1 {
		return fmt.Errorf("config: sync_max_iterations deve ser maior que 1")
	}
	if s.MaxDeferrals < 1 {
		return fmt.Errorf("config: sync_max_deferrals deve ser pelo menos 1")
	}
	if s.PageSize <= 0 || s.CampaignBatchSize <= 0 || s.AdSetBatchSize <= 0 {
		return fmt.Errorf("config: tamanhos de página e lote devem ser positivos")
	}
	if s.MaxRetries < 0 {
		return fmt.Errorf("config: sync_max_retries não pode ser negativo")
	}
	if s.HardBackoffMax < s.HardBackoffMin {
		return fmt.Errorf("config: sync_hard_backoff_max deve ser maior ou igual a sync_hard_backoff_min")
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
