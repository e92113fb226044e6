package compile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/fieldmodel/internal/domain"
	"github.com/kailas-cloud/fieldmodel/internal/domain/model"
	logpkg "github.com/kailas-cloud/fieldmodel/internal/logger"
	"github.com/kailas-cloud/fieldmodel/internal/metrics"
)

// Service wraps Compile with input limits, logging and metrics.
type Service struct {
	registry  *Registry
	maxFields int
	logger    *zap.Logger
}

// NewService creates a compile service. maxFields <= 0 disables the spec list limit.
func NewService(registry *Registry, maxFields int, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{registry: registry, maxFields: maxFields, logger: logger}
}

// Registry returns the registry the service compiles against.
func (s *Service) Registry() *Registry { return s.registry }

// Compile validates the list size and compiles it.
func (s *Service) Compile(ctx context.Context, specs []any) (*model.Model, error) {
	log := logpkg.FromContextOr(ctx, s.logger)

	if s.maxFields > 0 && len(specs) > s.maxFields {
		err := fmt.Errorf("%w: %d field specifications exceed the limit of %d",
			domain.ErrInvalidParameter, len(specs), s.maxFields)
		s.reject(log, err)
		return nil, err
	}

	start := time.Now()
	m, err := Compile(s.registry, specs)
	duration := time.Since(start)
	metrics.CompileDuration.Observe(duration.Seconds())

	if err != nil {
		s.reject(log, err)
		return nil, err
	}

	metrics.CompilationsTotal.WithLabelValues("ok").Inc()
	metrics.CompiledFields.Observe(float64(m.TotalFields()))

	log.Debug("Field model compiled",
		zap.Int("specs", len(specs)),
		zap.Int("total_fields", m.TotalFields()),
		zap.Int("primary_fields", m.PrimaryFieldCount()),
		zap.Int("missing_indicators", len(m.MissingFieldIndices())),
		zap.Duration("duration", duration),
	)
	return m, nil
}

func (s *Service) reject(log *zap.Logger, err error) {
	kind := ErrorKind(err)
	metrics.CompilationsTotal.WithLabelValues("error").Inc()
	metrics.CompileErrorsTotal.WithLabelValues(kind).Inc()
	log.Warn("Field specification rejected", zap.String("kind", kind), zap.Error(err))
}

// ErrorKind classifies a compile error into a stable label.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrMalformedSpec):
		return "malformed_specification"
	case errors.Is(err, domain.ErrMissingType):
		return "missing_type"
	case errors.Is(err, domain.ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, domain.ErrUnknownOperand):
		return "unknown_interaction_operand"
	case errors.Is(err, domain.ErrInvalidParameter):
		return "invalid_parameter"
	default:
		return "internal"
	}
}
