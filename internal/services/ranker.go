package services

import (
	"errors"

	"go.uber.org/zap"
)

var ErrEmptyInput = errors.New("at least one candidate document is required")

// RankerService scores candidate documents against a reference document.
type RankerService interface {
	// Rank returns one score in [0, 1] per candidate, in candidate order.
	Rank(reference string, candidates []string) ([]float64, error)
}

type rankerService struct {
	logger *zap.Logger
}

func NewRankerService(logger *zap.Logger) RankerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &rankerService{logger: logger}
}

func (r *rankerService) Rank(reference string, candidates []string) ([]float64, error) {
	if len(candidates) == 0 {
		return nil, ErrEmptyInput
	}

	documents := make([]string, 0, len(candidates)+1)
	documents = append(documents, reference)
	documents = append(documents, candidates...)

	space := Vectorize(documents)
	r.logger.Debug("term space built",
		zap.Int("documents", len(documents)),
		zap.Int("vocabulary", space.Dim()),
	)

	ref := space.Vectors[0]
	scores := make([]float64, len(candidates))
	for i := range candidates {
		scores[i] = CosineSimilarity(ref, space.Vectors[i+1])
	}

	return scores, nil
}
