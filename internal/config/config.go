package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJudgeURL = "https://api-inference.huggingface.co/models/deepseek-ai/DeepSeek-R1-Distill-Qwen-32B"

// Config aggregates the service configuration.
type Config struct {
	Server ServerConfig
	Judge  JudgeConfig
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

// JudgeConfig describes the external evaluation call.
type JudgeConfig struct {
	URL          string
	Token        string
	MaxNewTokens int
	Timeout      time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	judge, err := loadJudgeConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Judge: judge}, nil
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func loadJudgeConfig() (JudgeConfig, error) {
	maxNewTokens := 10
	if override, err := parseOptionalIntEnv("JUDGE_MAX_NEW_TOKENS"); err != nil {
		return JudgeConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return JudgeConfig{}, fmt.Errorf("JUDGE_MAX_NEW_TOKENS must be positive, got %d", *override)
		}
		maxNewTokens = *override
	}

	timeoutSeconds := 30
	if override, err := parseOptionalIntEnv("JUDGE_TIMEOUT"); err != nil {
		return JudgeConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return JudgeConfig{}, fmt.Errorf("JUDGE_TIMEOUT must be positive, got %d", *override)
		}
		timeoutSeconds = *override
	}

	return JudgeConfig{
		URL:          getEnvOrDefault("JUDGE_URL", defaultJudgeURL),
		Token:        strings.TrimSpace(os.Getenv("HF_API_TOKEN")),
		MaxNewTokens: maxNewTokens,
		Timeout:      time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
