package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/futsal-club/internal/platform/logging"
	"github.com/riskibarqy/futsal-club/internal/platform/metrics"
)

const (
	StepScoreRecompute       = "score_recompute"
	StepStatRebuild          = "stat_rebuild"
	StepSnapshotInvalidation = "snapshot_invalidation"
	StepSkillRecompute       = "skill_recompute"
)

type StepStatus string

const (
	StepStatusOK     StepStatus = "ok"
	StepStatusFailed StepStatus = "failed"
)

// StepResult is the outcome of one secondary effect.
type StepResult struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// SecondaryEffects reports the derived-data work that followed a primary
// mutation. A failed step never undoes the primary mutation.
type SecondaryEffects struct {
	Steps []StepResult `json:"steps"`
}

func (e SecondaryEffects) OK() bool {
	for _, step := range e.Steps {
		if step.Status != StepStatusOK {
			return false
		}
	}
	return true
}

func (e SecondaryEffects) Failed() []StepResult {
	var out []StepResult
	for _, step := range e.Steps {
		if step.Status != StepStatusOK {
			out = append(out, step)
		}
	}
	return out
}

func (e SecondaryEffects) Step(name string) (StepResult, bool) {
	for _, step := range e.Steps {
		if step.Name == name {
			return step, true
		}
	}
	return StepResult{}, false
}

// Step is one named secondary effect.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Pipeline runs secondary effects in the order given. Every step runs even
// when an earlier one failed; failures are logged at warn.
type Pipeline struct {
	logger  *logging.Logger
	metrics *metrics.Recorder
}

func NewPipeline(logger *logging.Logger, recorder *metrics.Recorder) Pipeline {
	if logger == nil {
		logger = logging.Default()
	}
	return Pipeline{logger: logger, metrics: recorder}
}

func (p Pipeline) Run(ctx context.Context, steps ...Step) SecondaryEffects {
	ctx, span := startUsecaseSpan(ctx, "usecase.Pipeline.Run")
	defer span.End()

	logger := p.logger
	if logger == nil {
		logger = logging.Default()
	}

	out := SecondaryEffects{Steps: make([]StepResult, 0, len(steps))}
	for _, step := range steps {
		start := time.Now()
		err := step.Run(ctx)
		p.metrics.ObservePipelineStep(step.Name, err)

		result := StepResult{Name: step.Name, Status: StepStatusOK}
		if err != nil {
			result.Status = StepStatusFailed
			result.Error = err.Error()
			logger.WarnContext(ctx, "secondary effect failed",
				"step", step.Name,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err,
			)
		}
		out.Steps = append(out.Steps, result)
	}
	return out
}
