package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Gemini     GeminiConfig
	Generation GenerationConfig
	Logger     LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// GeminiConfig holds the external generation endpoint settings. The API key
// and allow-list are read once at startup and are immutable afterwards.
type GeminiConfig struct {
	APIKey          string
	BaseURL         string
	AllowedModels   []string
	Timeout         time.Duration
	MaxOutputTokens int
}

type GenerationConfig struct {
	MaxQuestionCount int
	MaxFiles         int
	MaxFileSize      int64
}

type LoggerConfig struct {
	Level string
	Env   string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 20)
	viper.SetDefault("server.write_timeout", 60)
	viper.SetDefault("server.body_limit", 50*1024*1024)

	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com")
	viper.SetDefault("gemini.allowed_models", []string{"gemini-2.0-flash", "gemini-1.5-flash", "gemini-1.5-pro"})
	viper.SetDefault("gemini.timeout", 90)
	viper.SetDefault("gemini.max_output_tokens", 8192)

	viper.SetDefault("generation.max_question_count", 20)
	viper.SetDefault("generation.max_files", 5)
	viper.SetDefault("generation.max_file_size", 8*1024*1024)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	viper.AutomaticEnv()

	// A config file is optional; env vars and defaults cover everything.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout") * time.Second,
			WriteTimeout: viper.GetDuration("server.write_timeout") * time.Second,
			BodyLimit:    viper.GetInt("server.body_limit"),
		},
		Gemini: GeminiConfig{
			APIKey:          viper.GetString("gemini.api_key"),
			BaseURL:         viper.GetString("gemini.base_url"),
			AllowedModels:   viper.GetStringSlice("gemini.allowed_models"),
			Timeout:         viper.GetDuration("gemini.timeout") * time.Second,
			MaxOutputTokens: viper.GetInt("gemini.max_output_tokens"),
		},
		Generation: GenerationConfig{
			MaxQuestionCount: viper.GetInt("generation.max_question_count"),
			MaxFiles:         viper.GetInt("generation.max_files"),
			MaxFileSize:      viper.GetInt64("generation.max_file_size"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.Gemini.APIKey = apiKey
	}
	if baseURL := os.Getenv("GEMINI_BASE_URL"); baseURL != "" {
		config.Gemini.BaseURL = baseURL
	}
	if models := os.Getenv("GEMINI_ALLOWED_MODELS"); models != "" {
		config.Gemini.AllowedModels = splitAndTrim(models)
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		viper.Set("server.port", port)
		config.Server.Port = viper.GetInt("server.port")
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logger.Level = level
	}

	return config, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
