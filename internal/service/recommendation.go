package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/cloudtrim/cloudtrim/internal/metrics"
	"github.com/cloudtrim/cloudtrim/internal/model"
)

var sampleRecommendations = []model.Recommendation{
	{
		ID:             "1",
		Service:        "EC2",
		Title:          "Right-size t3.large to t3.small",
		Savings:        240,
		SavingsPercent: 60,
		Complexity:     model.ComplexityLow,
	},
	{
		ID:             "2",
		Service:        "RDS",
		Title:          "Delete unused staging database",
		Savings:        180,
		SavingsPercent: 100,
		Complexity:     model.ComplexityMedium,
	},
	{
		ID:             "3",
		Service:        "S3",
		Title:          "Enable intelligent tiering",
		Savings:        95,
		SavingsPercent: 35,
		Complexity:     model.ComplexityLow,
	},
}

// RecommendationService lists sample recommendations and accepts remediation requests.
type RecommendationService struct {
	now     Clock
	entropy io.Reader
	metrics metrics.Recorder
	logger  *slog.Logger
}

// NewRecommendationService creates a RecommendationService.
func NewRecommendationService(now Clock, recorder metrics.Recorder, logger *slog.Logger) *RecommendationService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &RecommendationService{
		now:     orNow(now),
		entropy: ulid.DefaultEntropy(),
		metrics: recorder,
		logger:  logger.With("service", "recommendation"),
	}
}

// List returns a fresh copy of the sample recommendations.
func (s *RecommendationService) List() []model.Recommendation {
	out := make([]model.Recommendation, len(sampleRecommendations))
	copy(out, sampleRecommendations)
	return out
}

// Remediate records that a remediation was requested for id and returns a job id.
// The id is not checked against the sample list and no action is taken.
func (s *RecommendationService) Remediate(ctx context.Context, id string) (string, error) {
	jobID, err := ulid.New(ulid.Timestamp(s.now()), s.entropy)
	if err != nil {
		return "", err
	}

	s.metrics.IncRemediationRequested()
	s.logger.InfoContext(ctx, "remediation queued",
		slog.String("recommendation_id", id),
		slog.String("job_id", jobID.String()),
	)
	return jobID.String(), nil
}
