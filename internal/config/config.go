package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

var ErrConfigMissing = errors.New("required configuration missing")

const envPrefix = "FOREMANBOT"

type Config struct {
	Bot      BotConfig      `mapstructure:"bot"`
	Foreman  ForemanConfig  `mapstructure:"foreman"`
	Slack    SlackConfig    `mapstructure:"slack"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	HTTP     HTTPConfig     `mapstructure:"http"`
}

type BotConfig struct {
	LogLevel   string        `mapstructure:"log_level"`
	PrettyLogs bool          `mapstructure:"pretty_logs"`
	Greetings  []string      `mapstructure:"greetings"`
	Workers    int           `mapstructure:"workers"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type ForemanConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type SlackConfig struct {
	BotToken          string `mapstructure:"bot_token"`
	AppToken          string `mapstructure:"app_token"`
	VerificationToken string `mapstructure:"verification_token"`
}

// Enabled reports whether any Slack credential was supplied.
func (s SlackConfig) Enabled() bool {
	return s.BotToken != "" || s.AppToken != ""
}

type TelegramConfig struct {
	BotToken       string  `mapstructure:"bot_token"`
	AllowedChatIDs []int64 `mapstructure:"allowed_chat_ids"`
}

func (t TelegramConfig) Enabled() bool {
	return t.BotToken != ""
}

type HTTPConfig struct {
	Listen string `mapstructure:"listen"`
}

// legacyEnv maps the plain variable names used by earlier deployments onto
// config keys. They are bound in addition to the FOREMANBOT_ prefixed names.
var legacyEnv = map[string][]string{
	"foreman.url":               {"FOREMAN_URL"},
	"foreman.username":          {"FOREMAN_USER"},
	"foreman.password":          {"FOREMAN_PASS"},
	"slack.bot_token":           {"SLACK_TOKEN", "TOKEN"},
	"slack.app_token":           {"SLACK_APP_TOKEN"},
	"slack.verification_token":  {"VERIFICATION_TOKEN"},
	"telegram.bot_token":        {"TELEGRAM_TOKEN"},
	"telegram.allowed_chat_ids": {"TELEGRAM_ALLOWED_CHAT_IDS"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("bot.pretty_logs", false)
	v.SetDefault("bot.greetings", []string{"hello", "hi", "greetings"})
	v.SetDefault("bot.workers", 8)
	v.SetDefault("bot.timeout", "30s")
	v.SetDefault("foreman.url", "")
	v.SetDefault("foreman.username", "")
	v.SetDefault("foreman.password", "")
	v.SetDefault("slack.bot_token", "")
	v.SetDefault("slack.app_token", "")
	v.SetDefault("slack.verification_token", "")
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.allowed_chat_ids", []int64{})
	v.SetDefault("http.listen", ":8080")
}

// Load reads .env, then the TOML file at path (config.toml in the working
// directory when path is empty), then the environment. A missing config.toml
// is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("could not read .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		log.Debug().Msg("no config file found, using environment only")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, names := range legacyEnv {
		args := append([]string{key, envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("could not bind env for %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	return cfg, nil
}

func (c *Config) missingForeman() []string {
	var missing []string

	if c.Foreman.URL == "" {
		missing = append(missing, "foreman.url")
	}
	if c.Foreman.Username == "" {
		missing = append(missing, "foreman.username")
	}
	if c.Foreman.Password == "" {
		missing = append(missing, "foreman.password")
	}

	return missing
}

// ValidateForeman checks only the Foreman connection settings.
func (c *Config) ValidateForeman() error {
	if missing := c.missingForeman(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigMissing, strings.Join(missing, ", "))
	}

	return nil
}

// Validate checks the settings the bot cannot run without.
func (c *Config) Validate() error {
	missing := c.missingForeman()

	if !c.Slack.Enabled() && !c.Telegram.Enabled() {
		missing = append(missing, "slack.bot_token or telegram.bot_token")
	}

	if c.Slack.Enabled() {
		if c.Slack.BotToken == "" {
			missing = append(missing, "slack.bot_token")
		}
		if c.Slack.AppToken == "" {
			missing = append(missing, "slack.app_token")
		}
		if c.Slack.VerificationToken == "" {
			missing = append(missing, "slack.verification_token")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrConfigMissing, strings.Join(missing, ", "))
	}

	if c.Bot.Workers < 1 {
		return fmt.Errorf("bot.workers must be at least 1, got %d", c.Bot.Workers)
	}
	if c.Bot.Timeout <= 0 {
		return fmt.Errorf("bot.timeout must be positive, got %s", c.Bot.Timeout)
	}

	return nil
}

// SetupLogging configures the global zerolog logger.
func (c *Config) SetupLogging() {
	if c.Bot.PrettyLogs {
		log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	var logLevel zerolog.Level

	switch strings.ToLower(c.Bot.LogLevel) {
	case "trace":
		logLevel = zerolog.TraceLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)
}
