package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/leasehold/internal/auth"
	"github.com/mmynk/leasehold/internal/metrics"
	"github.com/mmynk/leasehold/internal/models"
)

type ping struct{}

// capture returns a UnaryFunc that records the context it was called with.
func capture(seen *context.Context, err error) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		*seen = ctx
		if err != nil {
			return nil, err
		}
		return connect.NewResponse(&ping{}), nil
	}
}

func requestWithAuth(header string) *connect.Request[ping] {
	req := connect.NewRequest(&ping{})
	if header != "" {
		req.Header().Set("Authorization", header)
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	token, _, err := jwtManager.Generate(&models.User{ID: "user-1", Email: "manager@example.com"})
	require.NoError(t, err)

	interceptor := RequireAuth(jwtManager)

	t.Run("valid token sets identity", func(t *testing.T) {
		var seen context.Context
		_, err := interceptor(capture(&seen, nil))(context.Background(), requestWithAuth("Bearer "+token))
		require.NoError(t, err)
		assert.Equal(t, "user-1", GetUserID(seen))
		assert.Equal(t, "manager@example.com", GetEmail(seen))
	})

	for name, header := range map[string]string{
		"missing header": "",
		"wrong scheme":   "Basic " + token,
		"bad token":      "Bearer nope",
	} {
		t.Run(name, func(t *testing.T) {
			var seen context.Context
			_, err := interceptor(capture(&seen, nil))(context.Background(), requestWithAuth(header))
			assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
			assert.Nil(t, seen, "handler must not run")
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Hour)
	token, _, err := jwtManager.Generate(&models.User{ID: "user-1", Email: "manager@example.com"})
	require.NoError(t, err)

	interceptor := OptionalAuth(jwtManager)

	var seen context.Context
	_, err = interceptor(capture(&seen, nil))(context.Background(), requestWithAuth("Bearer "+token))
	require.NoError(t, err)
	assert.Equal(t, "user-1", GetUserID(seen))

	_, err = interceptor(capture(&seen, nil))(context.Background(), requestWithAuth("Bearer expired"))
	require.NoError(t, err)
	assert.Empty(t, GetUserID(seen))
}

func TestLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	interceptor := LoggingInterceptor(logger)
	ctx := WithUser(context.Background(), "user-1", "")

	var seen context.Context
	_, err := interceptor(capture(&seen, nil))(ctx, requestWithAuth(""))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "RPC ok")
	assert.Contains(t, buf.String(), "user_id=user-1")

	buf.Reset()
	_, err = interceptor(capture(&seen, connect.NewError(connect.CodeNotFound, errors.New("missing"))))(ctx, requestWithAuth(""))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=WARN")

	buf.Reset()
	_, err = interceptor(capture(&seen, errors.New("boom")))(ctx, requestWithAuth(""))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestMetricsInterceptor(t *testing.T) {
	m := metrics.New()
	interceptor := MetricsInterceptor(m)

	var seen context.Context
	_, _ = interceptor(capture(&seen, nil))(context.Background(), requestWithAuth(""))
	_, _ = interceptor(capture(&seen, connect.NewError(connect.CodeInvalidArgument, errors.New("bad"))))(context.Background(), requestWithAuth(""))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RPCRequests.WithLabelValues("", "invalid_argument")))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := CORS(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
