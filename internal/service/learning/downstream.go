package learning

import (
	"context"
	"log/slog"
	"time"

	"smartlearn/internal/domain"
	"smartlearn/internal/httputil"
	"smartlearn/internal/metrics"
)

// downstream runs calls to external services: one deadline per call,
// one metric sample per call, failures wrapped as DownstreamError.
// Calls are never retried.
type downstream struct {
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *slog.Logger
}

func (d downstream) call(ctx context.Context, op domain.DownstreamOp, service string, fn func(context.Context) error) error {
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	d.metrics.ObserveDownstream(string(op), service, err, elapsed)

	if err != nil {
		d.logger.Error("downstream call failed",
			"op", op,
			"service", service,
			"duration_ms", elapsed.Milliseconds(),
			"request_id", httputil.RequestID(ctx),
			"user_id", httputil.UserID(ctx),
			"error", err,
		)
		return domain.NewDownstreamError(op, err)
	}
	return nil
}
