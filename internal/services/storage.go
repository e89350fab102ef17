package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/models"
)

// ResumeSource loads a batch of resume files to rank.
type ResumeSource interface {
	Load(ctx context.Context) ([]models.ResumeFile, error)
}

type directorySource struct {
	dir    string
	logger *zap.Logger
}

// NewDirectorySource reads the .pdf files directly inside dir, sorted by name.
// Subdirectories are not visited.
func NewDirectorySource(dir string, logger *zap.Logger) ResumeSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &directorySource{
		dir:    dir,
		logger: logger,
	}
}

func (s *directorySource) Load(ctx context.Context) ([]models.ResumeFile, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume directory: %w", err)
	}

	var files []models.ResumeFile
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if entry.IsDir() {
			continue
		}

		file := models.ResumeFile{Name: entry.Name()}
		if !file.IsPDF() {
			s.logger.Debug("skipping non-pdf file", zap.String("file", entry.Name()))
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}
		file.Data = data
		files = append(files, file)
	}

	s.logger.Info("resumes loaded", zap.String("dir", s.dir), zap.Int("files", len(files)))
	return files, nil
}
