package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/restaurant/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type queryStartKey struct{}

// RegisterDBTracing installs otelgorm on db and annotates each query span
// with the table, the affected row count and a slow-query marker.
func RegisterDBTracing(db *gorm.DB, cfg *config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(db.Name())}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	thresh := cfg.DBSlowQueryThresh
	if thresh <= 0 {
		thresh = 200 * time.Millisecond
	}
	if err := registerSpanCallbacks(db, thresh); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
		zap.Duration("slow_query_threshold", thresh),
	)
	return nil
}

// registerSpanCallbacks runs the annotation before otelgorm ends the span
func registerSpanCallbacks(db *gorm.DB, thresh time.Duration) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { annotateSpan(tx, thresh) }

	cb := db.Callback()
	regs := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("rms_timing:before_create", before) },
		func() error { return cb.Query().Before("gorm:query").Register("rms_timing:before_query", before) },
		func() error { return cb.Update().Before("gorm:update").Register("rms_timing:before_update", before) },
		func() error { return cb.Delete().Before("gorm:delete").Register("rms_timing:before_delete", before) },
		func() error { return cb.Row().Before("gorm:row").Register("rms_timing:before_row", before) },
		func() error { return cb.Raw().Before("gorm:raw").Register("rms_timing:before_raw", before) },
		func() error {
			return cb.Create().After("gorm:create").Before("otel:after:create").Register("rms_timing:after_create", after)
		},
		func() error {
			return cb.Query().After("gorm:query").Before("otel:after:query").Register("rms_timing:after_query", after)
		},
		func() error {
			return cb.Update().After("gorm:update").Before("otel:after:update").Register("rms_timing:after_update", after)
		},
		func() error {
			return cb.Delete().After("gorm:delete").Before("otel:after:delete").Register("rms_timing:after_delete", after)
		},
		func() error {
			return cb.Row().After("gorm:row").Before("otel:after:row").Register("rms_timing:after_row", after)
		},
		func() error {
			return cb.Raw().After("gorm:raw").Before("otel:after:raw").Register("rms_timing:after_raw", after)
		},
	}
	for _, register := range regs {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

func annotateSpan(tx *gorm.DB, thresh time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	span.SetAttributes(attribute.Int64("db.rows_affected", tx.Statement.RowsAffected))
	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, tx.Error.Error())
		span.RecordError(tx.Error)
	}
	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > thresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
