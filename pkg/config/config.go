package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	GCS          GCSConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	Receipt      ReceiptConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CUKURID_APP_ENV" required:"true"`
	Port         string `envconfig:"CUKURID_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CUKURID_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CUKURID_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CUKURID_DB_DSN"`
	Driver string `envconfig:"CUKURID_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CUKURID_DB_HOST"`
	LegacyPort     int    `envconfig:"CUKURID_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CUKURID_DB_USER"`
	LegacyPassword string `envconfig:"CUKURID_DB_PASSWORD"`
	LegacyName     string `envconfig:"CUKURID_DB_NAME"`
	LegacySSLMode  string `envconfig:"CUKURID_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CUKURID_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CUKURID_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CUKURID_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CUKURID_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CUKURID_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CUKURID_REDIS_ADDR"`
	Password     string        `envconfig:"CUKURID_REDIS_PASSWORD"`
	DB           int           `envconfig:"CUKURID_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CUKURID_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CUKURID_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CUKURID_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CUKURID_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CUKURID_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CUKURID_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CUKURID_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CUKURID_JWT_EXPIRATION_MINUTES" default:"720"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CUKURID_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CUKURID_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"CUKURID_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"CUKURID_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"CUKURID_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"CUKURID_GCS_BUCKET_NAME"`
	UploadURLExpiry   time.Duration `envconfig:"CUKURID_GCS_UPLOAD_URL_EXPIRY" default:"15m"`
	DownloadURLExpiry time.Duration `envconfig:"CUKURID_GCS_DOWNLOAD_URL_EXPIRY" default:"1h"`
}

type PubSubConfig struct {
	DomainTopic        string `envconfig:"CUKURID_PUBSUB_DOMAIN_TOPIC" default:"cukurid-domain-events"`
	DomainSubscription string `envconfig:"CUKURID_PUBSUB_DOMAIN_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"CUKURID_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"CUKURID_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"CUKURID_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type ReceiptConfig struct {
	BusinessName string `envconfig:"CUKURID_RECEIPT_BUSINESS_NAME" default:"CukurID Barbershop"`
	FooterText   string `envconfig:"CUKURID_RECEIPT_FOOTER" default:"Terima kasih atas kunjungan Anda"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
