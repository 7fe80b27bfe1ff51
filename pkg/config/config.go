package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL — базовый URL Headless API.
const DefaultBaseURL = "https://headless.tebex.io"

// AppConfig — корневая структура конфигурации.
// Она зеркалит структуру config.yaml.
type AppConfig struct {
	Tebex TebexConfig `yaml:"tebex"`
	App   AppSpecific `yaml:"app"`
}

// TebexConfig — настройки клиента Headless API.
//
// Credentials опциональны: без private_key запросы уходят без basic auth,
// без webstore_identifier недоступны все операции с маршрутом accounts.
type TebexConfig struct {
	BaseURL            string `yaml:"base_url"`            // Базовый URL API
	WebstoreIdentifier string `yaml:"webstore_identifier"` // Поддерживает ${VAR}
	PrivateKey         string `yaml:"private_key"`         // Поддерживает ${VAR}
	Timeout            string `yaml:"timeout"`             // Timeout для HTTP запросов (например, "30s")
}

// GetDefaults возвращает дефолтные значения для незаполненных полей.
func (c *TebexConfig) GetDefaults() TebexConfig {
	result := *c // Копируем текущие значения

	if result.BaseURL == "" {
		result.BaseURL = DefaultBaseURL
	}
	if result.Timeout == "" {
		result.Timeout = "30s"
	}

	return result
}

// TimeoutDuration парсит Timeout. Пустое значение даёт дефолт 30s.
func (c *TebexConfig) TimeoutDuration() (time.Duration, error) {
	cfg := c.GetDefaults()
	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid tebex.timeout format: %w", err)
	}
	return d, nil
}

// AppSpecific — общие настройки приложения.
type AppSpecific struct {
	Debug   bool   `yaml:"debug"`
	LogsDir string `yaml:"logs_dir"` // Директория для .log файлов (по умолчанию текущая)
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(rawBytes)
}

// Parse разбирает содержимое config.yaml.
//
// os.ExpandEnv заменяет ${VAR} или $VAR на значение из окружения
// до разбора YAML, поэтому секреты можно держать вне файла.
func Parse(raw []byte) (*AppConfig, error) {
	contentWithEnv := os.ExpandEnv(string(raw))

	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	cfg.Tebex = cfg.Tebex.GetDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate проверяет обязательные поля.
func (c *AppConfig) validate() error {
	u, err := url.Parse(c.Tebex.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("tebex.base_url must be an absolute URL, got %q", c.Tebex.BaseURL)
	}
	if _, err := c.Tebex.TimeoutDuration(); err != nil {
		return err
	}
	// Приватный ключ без идентификатора бесполезен: basic auth требует оба значения
	if c.Tebex.PrivateKey != "" && c.Tebex.WebstoreIdentifier == "" {
		return fmt.Errorf("tebex.private_key is set but tebex.webstore_identifier is empty")
	}
	return nil
}
