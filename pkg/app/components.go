// Package app предоставляет переиспользуемую инициализацию для CLI утилит:
// поиск config.yaml, загрузку конфигурации и создание клиента Headless API.
//
// Entry points в cmd/ только вызывают Initialize и оркестрируют команды.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilkoid/tebex-headless/pkg/config"
	"github.com/ilkoid/tebex-headless/pkg/tebex"
)

// envConfigYAML используется, когда config.yaml не найден:
// все настройки берутся из переменных окружения.
const envConfigYAML = `
tebex:
  base_url: "${TEBEX_BASE_URL}"
  webstore_identifier: "${TEBEX_WEBSTORE_IDENTIFIER}"
  private_key: "${TEBEX_PRIVATE_KEY}"
  timeout: "${TEBEX_TIMEOUT}"
app:
  logs_dir: "${TEBEX_LOGS_DIR}"
`

// Components содержит компоненты, общие для всех утилит.
type Components struct {
	Config *config.AppConfig
	Client *tebex.Client
}

// ConfigPathFinder определяет стратегию поиска пути к config.yaml.
//
// По умолчанию используется DefaultConfigPathFinder, но можно
// реализовать свою стратегию для тестов или специальных случаев.
type ConfigPathFinder interface {
	FindConfigPath() string
}

// DefaultConfigPathFinder реализует стандартную стратегию поиска config.yaml.
//
// Порядок поиска:
// 1. Флаг -config (если указан)
// 2. Текущая директория (./config.yaml)
// 3. Директория бинарника
// 4. Родительская директория (для запуска из cmd/)
//
// Если ничего не найдено, возвращает пустую строку.
type DefaultConfigPathFinder struct {
	// ConfigFlag - значение флага -config, если указан
	ConfigFlag string
}

// FindConfigPath находит путь к config.yaml.
func (f *DefaultConfigPathFinder) FindConfigPath() string {
	// 1. Флаг имеет приоритет
	if f.ConfigFlag != "" {
		return resolveAbsPath(f.ConfigFlag)
	}

	// 2. Текущая директория
	if _, err := os.Stat("config.yaml"); err == nil {
		return resolveAbsPath("config.yaml")
	}

	// 3. Директория бинарника
	if execPath, err := os.Executable(); err == nil {
		cfgPath := filepath.Join(filepath.Dir(execPath), "config.yaml")
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath
		}
	}

	// 4. Родительские директории
	for _, cfgPath := range []string{filepath.Join("..", "config.yaml"), filepath.Join("..", "..", "config.yaml")} {
		if _, err := os.Stat(cfgPath); err == nil {
			return resolveAbsPath(cfgPath)
		}
	}

	return ""
}

// InitializeConfig загружает конфигурацию.
//
// Если finder не нашел config.yaml, конфигурация собирается из переменных
// окружения TEBEX_*. Возвращает путь к файлу или "env".
func InitializeConfig(finder ConfigPathFinder) (*config.AppConfig, string, error) {
	cfgPath := finder.FindConfigPath()

	if cfgPath == "" {
		cfg, err := config.Parse([]byte(envConfigYAML))
		if err != nil {
			return nil, "", fmt.Errorf("failed to build config from environment: %w", err)
		}
		return cfg, "env", nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config from %s: %w", cfgPath, err)
	}

	return cfg, cfgPath, nil
}

// Initialize создаёт клиент Headless API из конфигурации.
func Initialize(cfg *config.AppConfig, opts ...tebex.Option) (*Components, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	client, err := tebex.NewFromConfig(cfg.Tebex, opts...)
	if err != nil {
		return nil, fmt.Errorf("create tebex client: %w", err)
	}

	return &Components{
		Config: cfg,
		Client: client,
	}, nil
}

// ValidateWebstoreIdentifier проверяет, что идентификатор задан и не равен
// строке-шаблону "${TEBEX_WEBSTORE_IDENTIFIER}" (переменная окружения не раскрыта).
//
// Используется в утилитах (cmd/) для ранней проверки конфигурации
// перед выполнением запросов к API.
func ValidateWebstoreIdentifier(identifier string) error {
	if identifier == "" || identifier == "${TEBEX_WEBSTORE_IDENTIFIER}" {
		return fmt.Errorf("TEBEX_WEBSTORE_IDENTIFIER not set in config or environment.\n\n" +
			"Please set the TEBEX_WEBSTORE_IDENTIFIER environment variable:\n" +
			"  export TEBEX_WEBSTORE_IDENTIFIER=your_public_token\n\n" +
			"Or add it to your config.yaml:\n" +
			"  tebex:\n" +
			"    webstore_identifier: \"${TEBEX_WEBSTORE_IDENTIFIER}\"")
	}
	return nil
}

// resolveAbsPath преобразует путь в абсолютный (если это не уже абсолютный путь).
func resolveAbsPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
