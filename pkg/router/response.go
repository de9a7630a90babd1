package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go4it-sports/starpath/pkg/errorx"
	"github.com/go4it-sports/starpath/pkg/xcontext"
)

// response is the envelope of every reply. Code is 0 on success, otherwise an
// errorx code.
type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

var httpStatuses = map[errorx.Code]int{
	errorx.BadRequest:             http.StatusBadRequest,
	errorx.InvalidEventType:       http.StatusBadRequest,
	errorx.Unauthenticated:        http.StatusUnauthorized,
	errorx.PermissionDenied:       http.StatusForbidden,
	errorx.NotFound:               http.StatusNotFound,
	errorx.AlreadyExists:          http.StatusConflict,
	errorx.ConcurrentModification: http.StatusConflict,
	errorx.InsufficientPoints:     http.StatusUnprocessableEntity,
	errorx.RankCapped:             http.StatusUnprocessableEntity,
	errorx.TooManyRequests:        http.StatusTooManyRequests,
	errorx.NotImplemented:         http.StatusNotImplemented,
	errorx.Unavailable:            http.StatusServiceUnavailable,
}

// errorResponse hides errors which are not errorx.Error behind errorx.Unknown.
func errorResponse(err error) (int, response) {
	errx := errorx.Unknown
	errors.As(err, &errx)

	status, ok := httpStatuses[errx.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	return status, response{Code: int64(errx.Code), Error: errx.Message}
}

func handleResponse() CloserFunc {
	return func(ctx context.Context) {
		w := xcontext.ResponseWriter(ctx)

		status, resp := http.StatusOK, response{Data: xcontext.Response(ctx)}
		if err := xcontext.Error(ctx); err != nil {
			status, resp = errorResponse(err)
		}

		if err := WriteJSON(w, status, resp); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
		}
	}
}

func WriteJSON(w http.ResponseWriter, status int, resp any) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(b)
	return err
}
