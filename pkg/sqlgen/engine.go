package sqlgen

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/askdata-labs/askdata-engine/pkg/adapters/datasource"
	"github.com/askdata-labs/askdata-engine/pkg/apperrors"
	"github.com/askdata-labs/askdata-engine/pkg/llm"
	"github.com/askdata-labs/askdata-engine/pkg/models"
	"github.com/askdata-labs/askdata-engine/pkg/retry"
	"github.com/askdata-labs/askdata-engine/pkg/schemactx"
)

// Request is one natural-language-to-SQL invocation. The schema is supplied
// by the caller; introspection is not this engine's job.
type Request struct {
	Question       string
	Schema         []models.TableSchema
	SelectedTables []string
	ReadOnly       bool
	MaxRows        int
}

// Engine drives the generation pipeline: schema context, model invocation,
// candidate extraction, validation, optional execution, explanation.
type Engine struct {
	chat        llm.ChatClient
	executor    datasource.SQLExecutor
	validator   *Validator
	retryCfg    *retry.Config
	temperature float64
	maxRows     int
	logger      *zap.Logger
}

// New creates an Engine. executor may be nil when no query target is
// configured; execution requests then fail with ErrNotConnected.
func New(chat llm.ChatClient, executor datasource.SQLExecutor, temperature float64, maxRows int, logger *zap.Logger) *Engine {
	return &Engine{
		chat:        chat,
		executor:    executor,
		validator:   NewValidator(logger),
		retryCfg:    retry.DefaultConfig(),
		temperature: temperature,
		maxRows:     maxRows,
		logger:      logger.Named("sqlgen"),
	}
}

// Generate runs the full pipeline for one request. Validation rejection and
// execution failure both return the partially populated result alongside the
// error so callers can surface the candidate SQL for debugging.
func (e *Engine) Generate(ctx context.Context, req Request) (*models.GeneratedQuery, error) {
	maxRows := req.MaxRows
	if maxRows <= 0 || maxRows > e.maxRows {
		maxRows = e.maxRows
	}

	schemaContext := schemactx.Generate(req.Schema, req.SelectedTables)

	raw, err := retry.DoWithResult(ctx, e.retryCfg, func() (string, error) {
		return e.chat.GenerateResponse(ctx, generationPrompt(req.Question, schemaContext, req.ReadOnly, maxRows), "", e.temperature)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: generate sql: %v", apperrors.ErrGenerationFailed, err)
	}

	sqlText := ExtractSQL(raw)
	valid, reason := e.validator.Validate(sqlText, req.ReadOnly)

	result := &models.GeneratedQuery{
		Question: req.Question,
		Candidate: models.SQLCandidate{
			RawModelOutput:  raw,
			NormalizedSQL:   sqlText,
			IsValid:         valid,
			RejectionReason: reason,
		},
		ReadOnly: req.ReadOnly,
		Tables:   req.SelectedTables,
	}

	if !valid {
		e.logger.Warn("candidate rejected", zap.String("reason", reason))
		return result, fmt.Errorf("%w: %s", apperrors.ErrValidationRejected, reason)
	}

	if !req.ReadOnly {
		if e.executor == nil {
			return result, apperrors.ErrNotConnected
		}

		start := time.Now()
		rows, err := e.executor.Execute(ctx, sqlText)
		if err != nil {
			return result, fmt.Errorf("%w: %v", apperrors.ErrExecutionFailed, err)
		}
		result.Results = rows
		result.DurationMs = time.Since(start).Milliseconds()
	}

	explanation, err := retry.DoWithResult(ctx, e.retryCfg, func() (string, error) {
		return e.chat.GenerateResponse(ctx, explanationPrompt(req.Question, sqlText, schemaContext), "", e.temperature)
	})
	if err != nil {
		return result, fmt.Errorf("%w: explain sql: %v", apperrors.ErrGenerationFailed, err)
	}
	result.Explanation = explanation

	e.logger.Info("query generated",
		zap.Bool("readOnly", req.ReadOnly),
		zap.Int("tables", len(req.SelectedTables)),
		zap.Int64("durationMs", result.DurationMs))

	return result, nil
}
