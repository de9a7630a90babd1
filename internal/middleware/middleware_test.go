package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go4it-sports/starpath/internal/model"
	"github.com/go4it-sports/starpath/pkg/authenticator"
	"github.com/go4it-sports/starpath/pkg/errorx"
	"github.com/go4it-sports/starpath/pkg/testutil"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newTokenEngine() authenticator.TokenEngine[model.AccessToken] {
	cfg := testutil.MockConfigs()
	return authenticator.NewTokenEngine[model.AccessToken](cfg.Auth.TokenSecret, cfg.Auth.AccessToken)
}

func requestContext(req *http.Request) context.Context {
	ctx := xcontext.WithConfigs(context.Background(), testutil.MockConfigs())
	return xcontext.WithHTTPRequest(ctx, req)
}

func TestAuthVerifier(t *testing.T) {
	engine := newTokenEngine()
	token, err := engine.Generate("user1", model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	otherEngine := authenticator.NewTokenEngine[model.AccessToken]("other", testutil.MockConfigs().Auth.AccessToken)
	forged, err := otherEngine.Generate("user1", model.AccessToken{ID: "user1"})
	require.NoError(t, err)

	testCases := []struct {
		name      string
		optional  bool
		prepare   func(req *http.Request)
		wantUser  string
		wantError errorx.Code
	}{
		{
			name:     "bearer token",
			prepare:  func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+token) },
			wantUser: "user1",
		},
		{
			name: "cookie",
			prepare: func(req *http.Request) {
				req.AddCookie(&http.Cookie{Name: testutil.MockConfigs().Auth.AccessToken.Name, Value: token})
			},
			wantUser: "user1",
		},
		{
			name:      "no token",
			prepare:   func(req *http.Request) {},
			wantError: errorx.Unauthenticated,
		},
		{
			name:     "no token but optional",
			optional: true,
			prepare:  func(req *http.Request) {},
		},
		{
			name:      "forged token",
			optional:  true,
			prepare:   func(req *http.Request) { req.Header.Set("Authorization", "Bearer "+forged) },
			wantError: errorx.Unauthenticated,
		},
		{
			name:      "unknown scheme",
			prepare:   func(req *http.Request) { req.Header.Set("Authorization", "Basic "+token) },
			wantError: errorx.Unauthenticated,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			verifier := NewAuthVerifier(engine)
			if tt.optional {
				verifier = verifier.Optional()
			}

			req := httptest.NewRequest(http.MethodGet, "/player/progress", nil)
			tt.prepare(req)

			ctx, err := verifier.Middleware()(requestContext(req))
			if tt.wantError != 0 {
				require.True(t, errorx.Is(err, tt.wantError))
				return
			}

			require.NoError(t, err)
			if tt.wantUser == "" {
				require.Nil(t, ctx)
				return
			}

			require.Equal(t, tt.wantUser, xcontext.RequestUserID(ctx))
		})
	}
}

func TestOnlyAdmin(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/admin/player/archive", nil)
	ctx := requestContext(req)

	_, err := OnlyAdmin()(xcontext.WithRequestUserID(ctx, testutil.AdminID))
	require.NoError(t, err)

	_, err = OnlyAdmin()(xcontext.WithRequestUserID(ctx, "user1"))
	require.True(t, errorx.Is(err, errorx.PermissionDenied))

	_, err = OnlyAdmin()(ctx)
	require.True(t, errorx.Is(err, errorx.PermissionDenied))
}

func TestClosers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/leaderboard", nil)
	ctx := requestContext(req)

	ctx, err := WithStartTime()(ctx)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now(), xcontext.StartTime(ctx), time.Second)

	require.NotPanics(t, func() {
		Prometheus()(ctx)
		Logger()(ctx)
		Prometheus()(xcontext.WithError(ctx, errorx.New(errorx.NotFound, "Not found")))
		Logger()(xcontext.WithError(ctx, errorx.Unknown))
	})
}

func TestStatusCode(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, 0, statusCode(ctx))
	require.Equal(t, int(errorx.RankCapped), statusCode(xcontext.WithError(ctx, errorx.New(errorx.RankCapped, "capped"))))
	require.Equal(t, -1, statusCode(xcontext.WithError(ctx, context.Canceled)))
}
