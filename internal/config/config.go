package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider string `yaml:"provider"` // "yahoo" or "csv"
		CSVDir   string `yaml:"csv_dir"`
		Proxy    string `yaml:"proxy"`
	} `yaml:"data_source"`
	Scan struct {
		SymbolsFile string   `yaml:"symbols_file"`
		ListingFile string   `yaml:"listing_file"`
		Symbols     []string `yaml:"symbols"`
		Start       string   `yaml:"start"`
		End         string   `yaml:"end"`
		Workers     int      `yaml:"workers"`
		HorizonDays int      `yaml:"horizon_days"`
		Movers      int      `yaml:"movers"`
	} `yaml:"scan"`
	Detectors struct {
		GoldenCross struct {
			Enabled bool `yaml:"enabled"`
			Short   int  `yaml:"short"`
			Long    int  `yaml:"long"`
		} `yaml:"golden_cross"`
		MACDCross struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"macd_cross"`
		RSI struct {
			Enabled    bool    `yaml:"enabled"`
			Period     int     `yaml:"period"`
			Overbought float64 `yaml:"overbought"`
			Oversold   float64 `yaml:"oversold"`
		} `yaml:"rsi"`
		OversoldStudy struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"oversold_study"`
	} `yaml:"detectors"`
	Schedule struct {
		Enabled bool   `yaml:"enabled"`
		Cron    string `yaml:"cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Output struct {
		File string `yaml:"file"` // empty means stdout
	} `yaml:"output"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SCOUT_CSV_DIR"); v != "" {
		cfg.DataSource.CSVDir = v
	}
	if v := os.Getenv("SCOUT_SYMBOLS_FILE"); v != "" {
		cfg.Scan.SymbolsFile = v
	}
	if v := os.Getenv("SCOUT_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.Workers = n
		}
	}
	if v := os.Getenv("SCOUT_CRON"); v != "" {
		cfg.Schedule.Cron = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 6
	}
	if cfg.Scan.HorizonDays == 0 {
		cfg.Scan.HorizonDays = 10
	}
	if cfg.Detectors.GoldenCross.Short == 0 {
		cfg.Detectors.GoldenCross.Short = 20
	}
	if cfg.Detectors.GoldenCross.Long == 0 {
		cfg.Detectors.GoldenCross.Long = 50
	}
	if cfg.Detectors.RSI.Period == 0 {
		cfg.Detectors.RSI.Period = 14
	}
	if cfg.Detectors.RSI.Overbought == 0 {
		cfg.Detectors.RSI.Overbought = 80
	}
	if cfg.Detectors.RSI.Oversold == 0 {
		cfg.Detectors.RSI.Oversold = 20
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 0 22 * * 1-5"
	}
	if !cfg.Detectors.GoldenCross.Enabled && !cfg.Detectors.MACDCross.Enabled &&
		!cfg.Detectors.RSI.Enabled && !cfg.Detectors.OversoldStudy.Enabled {
		cfg.Detectors.GoldenCross.Enabled = true
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo":
	case "csv":
		if c.DataSource.CSVDir == "" {
			return fmt.Errorf("data_source.csv_dir is required for the csv provider")
		}
	default:
		return fmt.Errorf("data_source.provider must be yahoo or csv, got %q", c.DataSource.Provider)
	}
	if len(c.Scan.Symbols) == 0 && c.Scan.SymbolsFile == "" && c.Scan.ListingFile == "" {
		return fmt.Errorf("scan.symbols, scan.symbols_file or scan.listing_file is required")
	}
	if c.Scan.Start == "" {
		return fmt.Errorf("scan.start is required")
	}
	if _, err := time.Parse("2006-01-02", c.Scan.Start); err != nil {
		return fmt.Errorf("scan.start must be YYYY-MM-DD: %w", err)
	}
	if c.Scan.End != "" {
		if _, err := time.Parse("2006-01-02", c.Scan.End); err != nil {
			return fmt.Errorf("scan.end must be YYYY-MM-DD: %w", err)
		}
	}
	if c.Scan.Workers <= 0 {
		return fmt.Errorf("scan.workers must be positive")
	}
	if c.Schedule.Enabled && c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required in scheduled mode")
	}
	if c.Schedule.Enabled && c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required in scheduled mode")
	}
	return nil
}

// DateRange returns the parsed scan window. The end date defaults to today
// when unset. Call Validate first.
func (c *Config) DateRange() (time.Time, time.Time) {
	start, _ := time.Parse("2006-01-02", c.Scan.Start)
	end := time.Now().UTC().Truncate(24 * time.Hour)
	if c.Scan.End != "" {
		end, _ = time.Parse("2006-01-02", c.Scan.End)
	}
	return start, end
}
