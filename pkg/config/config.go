package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Digest DigestConfig `mapstructure:"digest"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
}

type DigestConfig struct {
	WorkingHoursStart int    `mapstructure:"working_hours_start"`
	WorkingHoursEnd   int    `mapstructure:"working_hours_end"`
	PrivacyMode       bool   `mapstructure:"privacy_mode"`
	Format            string `mapstructure:"format"`
	MaxEmails         int    `mapstructure:"max_emails"`
	MaxEvents         int    `mapstructure:"max_events"`
	UserName          string `mapstructure:"user_name"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("digest.working_hours_start", 9)
	v.SetDefault("digest.working_hours_end", 17)
	v.SetDefault("digest.privacy_mode", true)
	v.SetDefault("digest.format", "text")
	v.SetDefault("digest.max_emails", 200)
	v.SetDefault("digest.max_events", 50)
	v.SetDefault("digest.user_name", "User")
	v.SetDefault("openai.model", "gpt-3.5-turbo")
	v.SetDefault("openai.max_tokens", 300)
	v.SetDefault("openai.temperature", 0.7)

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file; defaults apply when it is absent
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func validate(config *Config) error {
	d := config.Digest
	if d.WorkingHoursStart < 0 || d.WorkingHoursStart > 23 {
		return fmt.Errorf("working_hours_start must be 0-23, got %d", d.WorkingHoursStart)
	}
	if d.WorkingHoursEnd < 0 || d.WorkingHoursEnd > 23 {
		return fmt.Errorf("working_hours_end must be 0-23, got %d", d.WorkingHoursEnd)
	}
	if d.WorkingHoursEnd <= d.WorkingHoursStart {
		return fmt.Errorf("working_hours_end (%d) must be after working_hours_start (%d)",
			d.WorkingHoursEnd, d.WorkingHoursStart)
	}
	if d.Format != "text" && d.Format != "html" {
		return fmt.Errorf("format must be \"text\" or \"html\", got %q", d.Format)
	}
	return nil
}
