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
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Telegram    Telegram    `mapstructure:",squash"`
	Report      Report      `mapstructure:",squash"`
	DailyReport DailyReport `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
	APIKey   string `mapstructure:"api_key"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Telegram struct {
	BotToken string `mapstructure:"telegram_bot_token"`
	// ReportChatID is the group the daily report goes to. Zero means the
	// bot binds to the first group chat it sees, as the original did.
	ReportChatID int64 `mapstructure:"report_chat_id"`
	// AdminChatIDs is a comma-separated chat-ID allowlist.
	AdminChatIDs  string `mapstructure:"admin_chat_ids"`
	UpdateTimeout int    `mapstructure:"telegram_update_timeout"`
}

type Report struct {
	// Timezone is the calendar used to resolve date expressions and to
	// bucket lead timestamps into days.
	Timezone string `mapstructure:"report_timezone"`
	// MonthTokens maps a recognized (case-folded) month word to a month
	// number 1..12; 0 means "the current month" and is used for generic
	// aliases like "месяц".
	MonthTokens map[string]int `mapstructure:"report_month_tokens"`
	// RetentionDays is how long leads are kept; 0 disables pruning.
	RetentionDays int `mapstructure:"lead_retention_days"`
}

type DailyReport struct {
	Enabled bool `mapstructure:"daily_report_enabled"`
	// Time is the local wall-clock send time in HH:MM.
	Time string `mapstructure:"daily_report_time"`
}

// defaultMonthTokens covers Ukrainian and Russian month names plus the
// generic "current month" aliases the original command understood.
func defaultMonthTokens() map[string]int {
	return map[string]int{
		// generic aliases, always the current month
		"месяц":   0,
		"місяць":  0,
		"month":   0,
		// Ukrainian
		"січень":   1,
		"лютий":    2,
		"березень": 3,
		"квітень":  4,
		"травень":  5,
		"червень":  6,
		"липень":   7,
		"серпень":  8,
		"вересень": 9,
		"жовтень":  10,
		"листопад": 11,
		"грудень":  12,
		// Russian
		"январь":   1,
		"февраль":  2,
		"март":     3,
		"апрель":   4,
		"май":      5,
		"июнь":     6,
		"июль":     7,
		"август":   8,
		"сентябрь": 9,
		"октябрь":  10,
		"ноябрь":   11,
		"декабрь":  12,
	}
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/leads")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("TELEGRAM_BOT_TOKEN", "")
	viper.SetDefault("REPORT_CHAT_ID", 0)
	viper.SetDefault("ADMIN_CHAT_IDS", "")
	viper.SetDefault("TELEGRAM_UPDATE_TIMEOUT", 30)

	viper.SetDefault("REPORT_TIMEZONE", "Europe/Kyiv")
	viper.SetDefault("REPORT_MONTH_TOKENS", defaultMonthTokens())
	viper.SetDefault("LEAD_RETENTION_DAYS", 180)

	viper.SetDefault("DAILY_REPORT_ENABLED", true)
	viper.SetDefault("DAILY_REPORT_TIME", "20:00")

	viper.SetDefault("API_KEY", "")
	viper.SetDefault("LOG_LEVEL", "info")
}

func NewConfig() (*Config, error) {
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("viper could not read .env, relying on environment: ", err)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Location resolves the configured report timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Report.Timezone)
}

// SendTime parses the configured daily send time.
func (d DailyReport) SendTime() (hour, minute int, err error) {
	t, err := time.Parse("15:04", d.Time)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid daily report time %q: %w", d.Time, err)
	}
	return t.Hour(), t.Minute(), nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("loaded .env from: ", location)
			return
		}
	}

	logrus.Info("no .env file found, using process environment")
}
