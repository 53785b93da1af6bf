package repository

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/donation-tracker/internal/donation/domain"
)

var tracer = otel.Tracer("donation-repository")

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, "repository."+name, trace.WithAttributes(attrs...))
}

// recordErr marks the span failed and passes err through
func recordErr(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprintf("database error: %v", err))
	}
	return err
}

// translate maps gorm sentinel errors onto domain errors
func translate(err error, entity string, id uint) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFoundError{Entity: entity, ID: id}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ConflictError{Entity: entity, Reason: "already exists"}
	}
	return fmt.Errorf("%s store: %w", entity, err)
}

func idAttr(key string, id uint) attribute.KeyValue {
	return attribute.Int64(key, int64(id))
}
