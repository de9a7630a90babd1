package router

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go4it-sports/starpath/config"
	"github.com/go4it-sports/starpath/pkg/errorx"
	"github.com/go4it-sports/starpath/pkg/logger"
	"github.com/go4it-sports/starpath/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
	"gorm.io/gorm"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It may return a new context, or nil
// to keep the current one. Returning an error stops the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the handler, even if the request failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux *http.ServeMux

	db      *gorm.DB
	configs config.Configs
	logger  logger.Logger

	befores []MiddlewareFunc
	closers []CloserFunc
}

func New(db *gorm.DB, cfg config.Configs, logger logger.Logger) *Router {
	return &Router{
		mux:     http.NewServeMux(),
		db:      db,
		configs: cfg,
		logger:  logger,
		closers: []CloserFunc{handleResponse()},
	}
}

// Branch returns a router sharing the same routes and the middlewares added
// so far. Middlewares added to the branch don't affect the parent.
func (r *Router) Branch() *Router {
	clone := *r
	clone.befores = append([]MiddlewareFunc{}, r.befores...)
	clone.closers = append([]CloserFunc{}, r.closers...)
	return &clone
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

// AddCloser registers a closer. Closers run in reverse order of registration,
// the response writer always runs last.
func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Handle(http.MethodGet+" "+pattern, wrap(r, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Handle(http.MethodPost+" "+pattern, wrap(r, handler))
}

func wrap[Request, Response any](router *Router, handler HandlerFunc[Request, Response]) http.Handler {
	befores := router.befores
	closers := router.closers

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = xcontext.WithConfigs(ctx, router.configs)
		ctx = xcontext.WithLogger(ctx, router.logger)
		ctx = xcontext.WithDB(ctx, router.db)
		ctx = xcontext.WithHTTPRequest(ctx, r)
		ctx = xcontext.WithResponseWriter(ctx, w)

		defer func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i](ctx)
			}
		}()

		for _, before := range befores {
			newCtx, err := before(ctx)
			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		req := new(Request)
		if err := parseRequest(r, req); err != nil {
			xcontext.Logger(ctx).Debugf("Cannot parse request: %v", err)
			ctx = xcontext.WithError(ctx, errorx.New(errorx.BadRequest, "Invalid request"))
			return
		}

		resp, err := handler(ctx, req)
		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			return
		}

		ctx = xcontext.WithResponse(ctx, resp)
	})
}

// parseRequest fills req with the JSON body of a POST request, then with the
// query and path parameters. Parameters are matched against json tags.
func parseRequest(r *http.Request, req any) error {
	if r.Method == http.MethodPost && r.Body != nil {
		err := json.NewDecoder(r.Body).Decode(req)
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
	}

	params := map[string]any{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[len(values)-1]
		}
	}

	for _, name := range pathParams(r.Pattern) {
		params[name] = r.PathValue(name)
	}

	if len(params) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           req,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(params)
}

func pathParams(pattern string) []string {
	names := []string{}
	for _, segment := range strings.Split(pattern, "/") {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			names = append(names, strings.TrimSuffix(strings.Trim(segment, "{}"), "..."))
		}
	}

	return names
}
