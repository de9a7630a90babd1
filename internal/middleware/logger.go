package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/go4it-sports/starpath/pkg/errorx"
	"github.com/go4it-sports/starpath/pkg/router"
	"github.com/go4it-sports/starpath/pkg/xcontext"
)

// statusCode returns 0 for a successful request, the errorx code of a failed
// one, or -1 when the error is not an errorx.Error.
func statusCode(ctx context.Context) int {
	err := xcontext.Error(ctx)
	if err == nil {
		return 0
	}

	var errx errorx.Error
	if errors.As(err, &errx) {
		return int(errx.Code)
	}

	return -1
}

// Logger writes one line per request: method, route, caller, status and
// duration. Unexpected errors are logged at error level.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		route := req.Pattern
		if route == "" {
			route = req.URL.Path
		}

		caller := xcontext.RequestUserID(ctx)
		if caller == "" {
			caller = "-"
		}

		elapsed := time.Duration(0)
		if start := xcontext.StartTime(ctx); !start.IsZero() {
			elapsed = time.Since(start)
		}

		code := statusCode(ctx)
		switch {
		case code == 0:
			xcontext.Logger(ctx).Infof("%s | %s | %d | %s", route, caller, code, elapsed)
		case code < 0:
			xcontext.Logger(ctx).Errorf("%s | %s | %d | %s | %v", route, caller, code, elapsed, xcontext.Error(ctx))
		default:
			xcontext.Logger(ctx).Warnf("%s | %s | %d | %s", route, caller, code, elapsed)
		}
	}
}
