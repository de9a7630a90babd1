package common

import (
	"context"
	"errors"

	"github.com/go4it-sports/starpath/pkg/xcontext"
	"golang.org/x/exp/slices"
)

var ErrNotAdmin = errors.New("user is not an admin")

// AdminVerifier checks the request user against the configured admin ids.
type AdminVerifier struct{}

func NewAdminVerifier() *AdminVerifier {
	return &AdminVerifier{}
}

func (verifier *AdminVerifier) Verify(ctx context.Context) error {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return ErrNotAdmin
	}

	if !slices.Contains(xcontext.Configs(ctx).Auth.AdminIDs, userID) {
		return ErrNotAdmin
	}

	return nil
}
