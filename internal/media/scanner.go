package media

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Scanner запускает внешний скрипт антивирусной проверки файла.
// Ненулевой код возврата означает заражение либо сбой проверки.
type Scanner struct {
	script  string
	timeout time.Duration
	logger  Logger
}

// NewScanner создает сканер с ограничением времени выполнения
func NewScanner(script string, timeoutSeconds int, logger Logger) *Scanner {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 300
	}
	return &Scanner{
		script:  script,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		logger:  logger,
	}
}

// Enabled проверяет, настроен ли скрипт проверки
func (s *Scanner) Enabled() bool {
	return s.script != ""
}

// Scan проверяет файл по указанному пути.
// Возвращает ошибку с выводом скрипта при ненулевом коде возврата.
func (s *Scanner) Scan(ctx context.Context, path string) error {
	scanCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(scanCtx, s.script, path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if scanCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("virus scan timed out after %s", s.timeout)
		}
		return fmt.Errorf("virus scan failed: %v: %s", err, strings.TrimSpace(string(output)))
	}

	s.logger.Info("Scanner: file %s is clean", path)
	return nil
}
