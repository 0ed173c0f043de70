// Package env loads the credentials and endpoints breakthrough needs from
// a dotenv file and the process environment.
package env

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"

	"laptudirm.com/x/breakthrough/pkg/agent"
)

type Config struct {
	OpenAIKey    string `mapstructure:"OPENAI_API_KEY"`
	AnthropicKey string `mapstructure:"ANTHROPIC_API_KEY"`
	RedisURL     string `mapstructure:"REDIS_URL"`
}

var keys = []string{"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "REDIS_URL"}

// Load reads the dotenv file at path, which may be missing. Variables set
// in the environment take precedence over the file's values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Keys returns the API keys of the agents.
func (cfg *Config) Keys() agent.Keys {
	return agent.Keys{
		OpenAI:    cfg.OpenAIKey,
		Anthropic: cfg.AnthropicKey,
	}
}
