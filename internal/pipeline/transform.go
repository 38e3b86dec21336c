package pipeline

import (
	"context"
	"log/slog"

	"github.com/ShianMike/TwistedTornadoProbabilityCalculator-sub001/internal/domain"
	"github.com/ShianMike/TwistedTornadoProbabilityCalculator-sub001/internal/observability"
)

// AssessmentTransformer implements Transformer by running the assessment
// engine against each decoded observation.
type AssessmentTransformer struct {
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewTransformer creates an AssessmentTransformer.
func NewTransformer(logger *slog.Logger, metrics *observability.Metrics) *AssessmentTransformer {
	return &AssessmentTransformer{logger: logger, metrics: metrics}
}

func (t *AssessmentTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	sample, err := domain.ParseObservation(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	assessment := domain.Assess(sample)

	t.metrics.RiskTierAssessments.WithLabelValues(string(assessment.Risk.Tier)).Inc()
	t.metrics.EstimatedPeakWind.Observe(float64(assessment.Wind.EstMax))
	t.logger.Debug("observation assessed",
		"risk_tier", assessment.Risk.Tier,
		"ef_label", assessment.Wind.EFLabel,
		"est_max", assessment.Wind.EstMax,
	)

	return domain.EncodeAssessment(raw, assessment)
}
