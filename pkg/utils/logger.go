// Package utils предоставляет простой файловый логгер для CLI утилит.
//
// Логгер создаёт .log файл с timestamp в имени.
// Thread-safe через sync.Mutex. SDK (pkg/tebex) сам ничего не логирует,
// логируют только утилиты из cmd/.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	logFile  *os.File
	logPath  string
	logMutex sync.Mutex
)

// InitLogger создает/открывает .log файл в директории dir.
//
// Имя файла: tebex-YYYY-MM-DD-HH-MM.log (например, tebex-2025-12-27-15-30.log).
// Пустой dir означает текущую директорию. Повторный вызов без Close ничего не делает.
func InitLogger(dir string) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		return nil
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create logs directory: %w", err)
		}
	}

	timestamp := time.Now().Format("2006-01-02-15-04")
	filename := filepath.Join(dir, fmt.Sprintf("tebex-%s.log", timestamp))

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	logFile = f
	logPath = filename

	// Пишем напрямую: мьютекс уже захвачен
	write(formatLine("INFO", "Logger initialized", "file", filename))

	return nil
}

// LogPath возвращает путь к текущему лог-файлу или "" если логгер не инициализирован.
func LogPath() string {
	logMutex.Lock()
	defer logMutex.Unlock()
	return logPath
}

// Info - информационное сообщение.
func Info(msg string, keyvals ...any) {
	log("INFO", msg, keyvals...)
}

// Error - сообщение об ошибке.
func Error(msg string, keyvals ...any) {
	log("ERROR", msg, keyvals...)
}

// Debug - отладочное сообщение.
func Debug(msg string, keyvals ...any) {
	log("DEBUG", msg, keyvals...)
}

// Warn - предупреждение.
func Warn(msg string, keyvals ...any) {
	log("WARN", msg, keyvals...)
}

// formatLine собирает строку вида:
// [YYYY-MM-DD HH:MM:SS] LEVEL: message key1=value1 key2=value2
//
// Нечетный хвост keyvals отбрасывается.
func formatLine(level, msg string, keyvals ...any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", time.Now().Format("2006-01-02 15:04:05"), level, msg)

	for i := 0; i+1 < len(keyvals); i += 2 {
		fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
	}

	b.WriteString("\n")
	return b.String()
}

func log(level, msg string, keyvals ...any) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile == nil {
		return
	}

	write(formatLine(level, msg, keyvals...))
}

// write пишет строку в файл. Вызывается под logMutex.
// При ошибке записи fallback на stderr.
func write(line string) {
	if _, err := logFile.WriteString(line); err != nil {
		fmt.Fprintf(os.Stderr, "%s", line)
		fmt.Fprintf(os.Stderr, "[LOGGER ERROR: WriteString failed: %v]\n", err)
		return
	}

	if err := logFile.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Sync failed: %v]\n", err)
	}
}

// Close закрывает лог-файл.
//
// Вызывается через defer в main().
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Close failed: %v]\n", err)
		}
		logFile = nil
		logPath = ""
	}
}
