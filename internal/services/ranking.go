package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"alfredoptarigan/resume-ranker/internal/models"
)

var (
	ErrEmptyJobDescription = errors.New("job description is required")
	ErrFileTooLarge        = errors.New("file too large")
)

// RankingService turns a job description and a batch of resume files into a
// ranked result table.
type RankingService interface {
	RankResumes(ctx context.Context, jobDescription string, files []models.ResumeFile) (*models.RankingResult, error)
}

type rankingService struct {
	pdfParser   PDFParserService
	ranker      RankerService
	maxFileSize int64
	logger      *zap.Logger
}

// NewRankingService wires the extractor and ranker. A maxFileSize of zero
// disables the per-file size check.
func NewRankingService(pdfParser PDFParserService, ranker RankerService, maxFileSize int64, logger *zap.Logger) RankingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &rankingService{
		pdfParser:   pdfParser,
		ranker:      ranker,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// RankResumes extracts every file in order, ranks the readable ones in a
// single pass and sorts them by score descending. Files that cannot be read
// are reported in Unreadable and never abort the batch.
func (s *rankingService) RankResumes(ctx context.Context, jobDescription string, files []models.ResumeFile) (*models.RankingResult, error) {
	if strings.TrimSpace(jobDescription) == "" {
		return nil, ErrEmptyJobDescription
	}
	if len(files) == 0 {
		return nil, ErrEmptyInput
	}

	result := &models.RankingResult{
		ID:         uuid.New().String(),
		Results:    []models.RankedResume{},
		Unreadable: []models.UnreadableResume{},
	}
	log := s.logger.With(zap.String("ranking_id", result.ID))
	log.Info("ranking resumes", zap.Int("files", len(files)), zap.Stringer("mode", s.pdfParser.Mode()))

	var (
		names    []string
		texts    []string
		failures error
	)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("ranking cancelled: %w", err)
		}

		text, err := s.extract(file)
		if err != nil {
			failures = multierr.Append(failures, fmt.Errorf("%s: %w", file.Name, err))
			result.Unreadable = append(result.Unreadable, models.UnreadableResume{
				Filename: file.Name,
				Reason:   err.Error(),
			})
			continue
		}

		names = append(names, file.Name)
		texts = append(texts, text)
	}

	if failures != nil {
		log.Warn("some resumes could not be read",
			zap.Int("unreadable", len(result.Unreadable)),
			zap.Error(failures),
		)
	}

	if len(texts) == 0 {
		result.Message = models.MessageNoReadableResumes
		result.RankedAt = time.Now()
		log.Warn(models.MessageNoReadableResumes)
		return result, nil
	}

	scores, err := s.ranker.Rank(jobDescription, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to rank resumes: %w", err)
	}

	for i, name := range names {
		result.Results = append(result.Results, models.RankedResume{
			Filename: name,
			Score:    scores[i],
		})
	}

	sort.SliceStable(result.Results, func(i, j int) bool {
		return result.Results[i].Score > result.Results[j].Score
	})
	for i := range result.Results {
		result.Results[i].Rank = i + 1
	}

	result.RankedAt = time.Now()
	log.Info("ranking completed",
		zap.Int("ranked", len(result.Results)),
		zap.Int("unreadable", len(result.Unreadable)),
	)

	return result, nil
}

func (s *rankingService) extract(file models.ResumeFile) (string, error) {
	if !file.IsPDF() {
		return "", fmt.Errorf("%w: not a .pdf file", ErrUnreadablePDF)
	}
	if s.maxFileSize > 0 && file.Size() > s.maxFileSize {
		return "", fmt.Errorf("%w: %d bytes, max %d", ErrFileTooLarge, file.Size(), s.maxFileSize)
	}
	return s.pdfParser.ExtractText(file.Data)
}
