package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petspotter/internal/app"
	"petspotter/internal/model"
)

type fakeAuthenticator struct {
	users map[string]*model.User
	err   error
	seen  []string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*model.User, error) {
	f.seen = append(f.seen, token)
	if f.err != nil {
		return nil, f.err
	}
	if user, ok := f.users[token]; ok {
		return user, nil
	}
	return nil, app.ErrUnauthenticated
}

func newGatedRouter(auth TokenAuthenticator, reached *bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAccessToken(auth), func(c *gin.Context) {
		*reached = true
		user, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, user.Username)
	})
	return r
}

func TestRequireAccessToken(t *testing.T) {
	alice := &model.User{ID: "u1", Username: "alice"}

	tests := []struct {
		name        string
		header      string
		authErr     error
		wantStatus  int
		wantReached bool
	}{
		{name: "raw token", header: "tok-1", wantStatus: http.StatusOK, wantReached: true},
		{name: "bearer prefix", header: "Bearer tok-1", wantStatus: http.StatusOK, wantReached: true},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", header: "nope", wantStatus: http.StatusUnauthorized},
		{
			name:       "store unreachable",
			header:     "tok-1",
			authErr:    errors.Join(app.ErrStoreUnavailable, errors.New("dial tcp: refused")),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &fakeAuthenticator{users: map[string]*model.User{"tok-1": alice}, err: tt.authErr}
			reached := false
			r := newGatedRouter(auth, &reached)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set(AuthorizationHeader, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantReached, reached)
			if tt.wantReached {
				assert.Equal(t, "alice", w.Body.String())
			}
		})
	}
}

func TestExtractToken(t *testing.T) {
	assert.Equal(t, "abc", extractToken("abc"))
	assert.Equal(t, "abc", extractToken("  Bearer abc "))
	assert.Equal(t, "abc", extractToken("bearer abc"))
	assert.Equal(t, "Bearer", extractToken("Bearer"))
	assert.Equal(t, "", extractToken(""))
}

type flag bool

func (f flag) Ready() bool { return bool(f) }

func TestRequireReady(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, ready := range []bool{true, false} {
		r := gin.New()
		r.GET("/x", RequireReady(flag(ready)), func(c *gin.Context) { c.Status(http.StatusNoContent) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		if ready {
			assert.Equal(t, http.StatusNoContent, w.Code)
			continue
		}
		require.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"error":"Service not available"}`, w.Body.String())
	}
}
