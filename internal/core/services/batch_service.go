package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kamal-hamza/tokenlint/internal/core/domain"
	"github.com/kamal-hamza/tokenlint/internal/core/ports"
)

// BatchService drives a validation run: classify the change-set, then check
// each folder in order until the first violation.
type BatchService struct {
	classifier *ClassifyService
	checker    ports.FolderChecker
	reporter   ports.Reporter
	logger     *zap.SugaredLogger
}

func NewBatchService(classifier *ClassifyService, checker ports.FolderChecker, reporter ports.Reporter, logger *zap.SugaredLogger) *BatchService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &BatchService{
		classifier: classifier,
		checker:    checker,
		reporter:   reporter,
		logger:     logger,
	}
}

type BatchRequest struct {
	Paths []string

	// All validates every folder in the registry and ignores Paths
	All bool
}

type BatchResponse struct {
	Checked   []domain.FolderKey
	Violation *domain.Violation
}

// Failed reports whether the run stopped on a violation
func (r *BatchResponse) Failed() bool {
	return r.Violation != nil
}

func (s *BatchService) Execute(ctx context.Context, req BatchRequest) (*BatchResponse, error) {
	paths := req.Paths
	if req.All {
		all, err := s.classifier.Everything(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list registry: %w", err)
		}
		paths = all
	}

	classified, err := s.classifier.Execute(ctx, ClassifyRequest{Paths: paths})
	if err != nil {
		return nil, err
	}

	resp := &BatchResponse{}
	if classified.Violation != nil {
		s.reporter.Failed(classified.Violation)
		resp.Violation = classified.Violation
		return resp, nil
	}

	if len(classified.Keys) == 0 {
		s.reporter.Nothing()
		return resp, nil
	}

	s.logger.Debugw("validating folders", "count", len(classified.Keys), "ignored", classified.Ignored)

	for _, key := range classified.Keys {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		s.reporter.Checking(key)
		result, err := s.checker.Check(ctx, key)
		if err != nil {
			return resp, err
		}
		resp.Checked = append(resp.Checked, key)

		if !result.Passed() {
			s.reporter.Failed(result.Violation)
			resp.Violation = result.Violation
			return resp, nil
		}
		s.reporter.Passed(key)
	}

	return resp, nil
}
