package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application settings.
type Config struct {
	Discord struct {
		Token string `mapstructure:"token"`
		// GuildID registers slash commands to one guild instead of globally.
		GuildID string `mapstructure:"guild_id"`
	} `mapstructure:"discord"`
	Bot struct {
		Prefix string `mapstructure:"prefix"`
	} `mapstructure:"bot"`
	Storage struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"storage"`
	Log struct {
		File  string `mapstructure:"file"`
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Web struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"web"`
	Ledger struct {
		Retention     time.Duration `mapstructure:"retention"`
		PruneSchedule string        `mapstructure:"prune_schedule"`
	} `mapstructure:"ledger"`
}

const envPrefix = "CMDBRIDGE"

var ErrMissingToken = errors.New("config: discord.token is not set")

// Load reads config.yaml from the given directories (the working directory
// when none are given). Values can be overridden with CMDBRIDGE_* variables,
// e.g. CMDBRIDGE_DISCORD_TOKEN, which may also come from a .env file.
// A missing config file is not an error.
func Load(paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{"."}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("discord.token", "")
	v.SetDefault("discord.guild_id", "")
	v.SetDefault("bot.prefix", "!")
	v.SetDefault("storage.path", "./cmdbridge.db")
	v.SetDefault("log.file", "cmdbridge.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("web.addr", ":8080")
	v.SetDefault("ledger.retention", 24*time.Hour)
	v.SetDefault("ledger.prune_schedule", "@hourly")
}

// Validate reports settings the bot cannot start without.
func (c *Config) Validate() error {
	if c.Discord.Token == "" || c.Discord.Token == "YOUR_DISCORD_BOT_TOKEN_HERE" {
		return ErrMissingToken
	}
	if c.Bot.Prefix == "" {
		return errors.New("config: bot.prefix must not be empty")
	}
	return nil
}
