package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/hibritu/hirehub/pkg/jwtx"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Issuer         string `env:"AUTH_ISSUER" envDefault:"hirehub-auth"`
	JWTSecret      string `env:"AUTH_JWT_SECRET"` // Required outside dev
	BootstrapToken string `env:"BOOTSTRAP_TOKEN"` // Optional: enables POST /v1/bootstrap

	AccessTTL  time.Duration `env:"AUTH_ACCESS_TTL" envDefault:"1h"`
	RefreshTTL time.Duration `env:"AUTH_REFRESH_TTL" envDefault:"168h"`
	OTPTTL     time.Duration `env:"AUTH_OTP_TTL" envDefault:"30m"`
	ResetTTL   time.Duration `env:"AUTH_RESET_TTL" envDefault:"1h"`

	DatabaseDriver string `env:"AUTH_DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseFile   string `env:"AUTH_DATABASE_FILE" envDefault:"auth.db"`
	DatabaseURL    string `env:"AUTH_DATABASE_URL"` // postgres DSN
	PepperFile     string `env:"AUTH_PEPPER_FILE" envDefault:"pepper"`

	// PublicBaseURL is where this service is reachable from a browser. Reset
	// links point at it.
	PublicBaseURL  string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`
	UserAppURL     string `env:"USER_APP_URL"`
	EmployerAppURL string `env:"EMPLOYER_APP_URL"`
	AdminAppURL    string `env:"ADMIN_APP_URL"`

	SMTP SMTPConfig `envPrefix:"SMTP_"`
	Mail MailConfig `envPrefix:"MAIL_"`

	Env                   string        `env:"ENV" envDefault:"dev"`
	LogLevel              string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat             string        `env:"LOG_FORMAT" envDefault:"json"`
	Port                  int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod   time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`
	HousekeepingInterval  time.Duration `env:"HOUSEKEEPING_INTERVAL" envDefault:"1h"`
	HousekeepingRetention time.Duration `env:"HOUSEKEEPING_RETENTION" envDefault:"24h"`
	CORSAllowedOrigins    []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// SMTPConfig is the outgoing relay. Without a host, mail is only logged.
type SMTPConfig struct {
	Host               string        `env:"HOST"`
	Port               int           `env:"PORT" envDefault:"587"`
	Username           string        `env:"USERNAME"`
	Password           string        `env:"PASSWORD"`
	From               string        `env:"FROM" envDefault:"HireHub <no-reply@hirehub.local>"`
	Timeout            time.Duration `env:"TIMEOUT" envDefault:"10s"`
	InsecureSkipVerify bool          `env:"INSECURE_SKIP_VERIFY"`
}

// MailConfig tunes the verification mail retry policy.
type MailConfig struct {
	MaxAttempts     int           `env:"MAX_ATTEMPTS" envDefault:"3"`
	InitialInterval time.Duration `env:"INITIAL_INTERVAL" envDefault:"1s"`
}

func (c Config) IsDev() bool { return c.Env == "dev" }

// LoadConfig reads the environment and validates the result.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	switch c.DatabaseDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("AUTH_DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_DATABASE_DRIVER %q is not supported", c.DatabaseDriver))
	}

	switch {
	case c.JWTSecret == "" && !c.IsDev():
		errs = append(errs, errors.New("AUTH_JWT_SECRET is required outside dev"))
	case c.JWTSecret != "" && len(c.JWTSecret) < jwtx.MinSecretLength:
		errs = append(errs, fmt.Errorf("AUTH_JWT_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}

	// The log sender writes codes and reset links in clear text.
	if c.SMTP.Host == "" && !c.IsDev() {
		errs = append(errs, errors.New("SMTP_HOST is required outside dev"))
	}
	if c.Mail.MaxAttempts < 1 {
		errs = append(errs, errors.New("MAIL_MAX_ATTEMPTS must be at least 1"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}

	return errors.Join(errs...)
}
