package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/go4it-sports/starpath/internal/common"
	"github.com/go4it-sports/starpath/pkg/router"
	"github.com/go4it-sports/starpath/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

// Prometheus counts requests by method and status. The duration is only
// observed when WithStartTime ran.
func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		method := xcontext.HTTPRequest(ctx).Method
		code := strconv.Itoa(statusCode(ctx))

		common.PromCounters[common.HTTPRequestTotal].WithLabelValues(method, code).Inc()

		if start := xcontext.StartTime(ctx); !start.IsZero() {
			common.PromHistograms[common.HTTPRequestDurationSeconds].
				WithLabelValues(method, code).Observe(time.Since(start).Seconds())
		}
	}
}
