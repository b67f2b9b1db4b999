package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LogoStorage отвечает за файловое хранилище логотипов компаний.
type LogoStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewLogoStorage создаёт файловое хранилище.
func NewLogoStorage(rootPath string, maxUploadMB int64) (*LogoStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &LogoStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// Save сохраняет логотип и возвращает относительный путь.
func (s *LogoStorage) Save(ctx context.Context, sessionID, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	safeSession := sanitizeFilename(sessionID)
	safeName := sanitizeFilename(originalName)
	fileName := fmt.Sprintf("logo_%d%s", time.Now().UnixNano(), filepath.Ext(safeName))

	sessionDir := filepath.Join(s.rootPath, safeSession)
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать каталог сессии: %w", err)
	}

	targetPath := filepath.Join(sessionDir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	limitedReader := io.LimitedReader{R: r, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: размер файла превышает лимит %d байт", s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	relative := filepath.Join(safeSession, fileName)
	return relative, written, nil
}

// Delete удаляет файл из хранилища.
func (s *LogoStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.rootPath, relativePath)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// ExportStorage хранит сгенерированные PDF-экспорты.
type ExportStorage struct {
	rootPath string
}

// NewExportStorage создаёт хранилище экспортов.
func NewExportStorage(rootPath string) (*ExportStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}
	return &ExportStorage{rootPath: rootPath}, nil
}

// Save записывает готовый PDF и возвращает относительный путь и размер.
func (s *ExportStorage) Save(ctx context.Context, exportID string, data []byte) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	fileName := sanitizeFilename(exportID) + ".pdf"
	targetPath := filepath.Join(s.rootPath, fileName)
	tempPath := targetPath + ".tmp"

	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return "", 0, fmt.Errorf("storage: ошибка записи экспорта: %w", err)
	}
	if err := os.Rename(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: не удалось переименовать экспорт: %w", err)
	}

	return fileName, int64(len(data)), nil
}

// Open открывает ранее сохранённый экспорт для отдачи клиенту.
func (s *ExportStorage) Open(ctx context.Context, relativePath string) (*os.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.rootPath, relativePath))
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "file"
	}
	return name
}
