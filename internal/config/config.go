package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"EventDesk"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
		LogFile  string `envconfig:"LOG_FILE"`
	}

	TableStore struct {
		Driver  string        `envconfig:"TABLESTORE_DRIVER" default:"rest"`
		URL     string        `envconfig:"SUPABASE_URL" default:"https://your-project-id.supabase.co"`
		Key     string        `envconfig:"SUPABASE_ANON_KEY" default:"your-anon-key-here"`
		DSN     string        `envconfig:"DATABASE_URL"`
		Timeout time.Duration `envconfig:"TABLESTORE_TIMEOUT"` // zero waits on the store indefinitely

		// Migrate creates missing tables when the postgres driver starts.
		Migrate bool `envconfig:"DATABASE_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	Session struct {
		// File is the terminal session; it defaults to session.json under
		// the user config dir. API callers keep theirs in cookies.
		File string `envconfig:"SESSION_FILE"`
	}

	Display struct {
		Currency string `envconfig:"CURRENCY" default:"INR"`
		Locale   string `envconfig:"LOCALE" default:"en-IN"`
	}

	Snapshot struct {
		Cron          string `envconfig:"SNAPSHOT_CRON"`
		Timezone      string `envconfig:"TIMEZONE" default:"Asia/Kolkata"`
		MongoURI      string `envconfig:"MONGODB_URI"`
		MongoDB       string `envconfig:"MONGODB_DB_NAME" default:"eventdesk"`
		SheetsCreds   string `envconfig:"GOOGLE_SHEETS_CREDENTIALS_PATH"`
		SpreadsheetID string `envconfig:"GOOGLE_SHEET_ID"`
	}
}

// Load reads envFile (or ./.env when empty) if present, then the process
// environment.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.TableStore.Driver {
	case DriverREST:
	case DriverPostgres:
		if c.TableStore.DSN == "" {
			return errors.New("DATABASE_URL must be provided for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown TABLESTORE_DRIVER %q", c.TableStore.Driver)
	}

	if c.Snapshot.SheetsCreds != "" && c.Snapshot.SpreadsheetID == "" {
		return errors.New("GOOGLE_SHEET_ID must be provided with GOOGLE_SHEETS_CREDENTIALS_PATH")
	}

	return nil
}
