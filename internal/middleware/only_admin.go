package middleware

import (
	"context"

	"github.com/go4it-sports/starpath/internal/common"
	"github.com/go4it-sports/starpath/pkg/errorx"
	"github.com/go4it-sports/starpath/pkg/router"
	"github.com/go4it-sports/starpath/pkg/xcontext"
)

// OnlyAdmin rejects callers missing from the configured admin ids. It must run
// after the AuthVerifier.
func OnlyAdmin() router.MiddlewareFunc {
	verifier := common.NewAdminVerifier()
	return func(ctx context.Context) (context.Context, error) {
		if err := verifier.Verify(ctx); err != nil {
			xcontext.Logger(ctx).Warnf("Reject %s from %q: %v",
				xcontext.HTTPRequest(ctx).URL.Path, xcontext.RequestUserID(ctx), err)
			return nil, errorx.New(errorx.PermissionDenied, "Permission denied")
		}

		return nil, nil
	}
}
