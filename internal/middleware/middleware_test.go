package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/community-connect/backend/internal/repositories"
	"github.com/anonto42/community-connect/backend/internal/services"
	"github.com/anonto42/community-connect/backend/internal/testutil"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, subject string, expiresIn time.Duration) string {
	t.Helper()
	claims := SessionClaims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func runWithHeader(mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, string, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var userID string
	err := mw(func(c echo.Context) error {
		userID, _ = c.Get(UserIDKey).(string)
		return c.NoContent(http.StatusOK)
	})(c)
	return rec, userID, err
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected echo.HTTPError, got %v", err)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestJWTAuthMiddleware(t *testing.T) {
	mw := JWTAuthMiddleware(testSecret)

	valid := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "user-1", time.Hour)
	rec, userID, err := runWithHeader(mw, "Bearer "+valid)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", userID)

	tests := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Basic " + valid,
		"no token":        "Bearer",
		"wrong secret":    "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), "user-1", time.Hour),
		"expired":         "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "user-1", -time.Minute),
		"missing subject": "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "", time.Hour),
		"none algorithm":  "Bearer " + signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, "user-1", time.Hour),
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			_, userID, err := runWithHeader(mw, header)
			assertUnauthorized(t, err)
			assert.Empty(t, userID)
		})
	}
}

type fakeVerifier struct {
	uid string
}

func (v fakeVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if idToken != "good" {
		return nil, errors.New("bad token")
	}
	return &auth.Token{UID: v.uid}, nil
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	mw := FirebaseAuthMiddleware(fakeVerifier{uid: "firebase-uid"})

	_, userID, err := runWithHeader(mw, "Bearer good")
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid", userID)

	_, _, err = runWithHeader(mw, "Bearer bad")
	assertUnauthorized(t, err)

	_, _, err = runWithHeader(mw, "")
	assertUnauthorized(t, err)
}

func TestLoadSession(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateProfile(t, db, "Alice", testutil.Verified)
	mw := LoadSession(repositories.NewPostgresProfileRepository(db))

	run := func(userID string) (services.Session, error) {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if userID != "" {
			c.Set(UserIDKey, userID)
		}
		var session services.Session
		err := mw(func(c echo.Context) error {
			session = c.Get(SessionKey).(services.Session)
			return nil
		})(c)
		return session, err
	}

	session, err := run(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, session.UserID)
	require.NotNil(t, session.Profile)
	assert.True(t, session.Verified())

	session, err = run("11111111-1111-1111-1111-111111111111")
	require.NoError(t, err)
	assert.Nil(t, session.Profile)
	assert.False(t, session.Verified())

	_, err = run("")
	assertUnauthorized(t, err)
}

func TestLoadSessionWithFirebaseUID(t *testing.T) {
	db := testutil.NewDB(t)
	const uid = "kX3bQ9vTz1MmP7aLr2HsYw5NcE8d"
	testutil.CreateProfile(t, db, "Farah", testutil.WithID(uid), testutil.Verified)

	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good")
	c := e.NewContext(req, rec)

	chain := FirebaseAuthMiddleware(fakeVerifier{uid: uid})(
		LoadSession(repositories.NewPostgresProfileRepository(db))(func(c echo.Context) error {
			session := c.Get(SessionKey).(services.Session)
			assert.Equal(t, uid, session.UserID)
			require.NotNil(t, session.Profile)
			assert.Equal(t, "Farah", session.Profile.DisplayName)
			return c.NoContent(http.StatusOK)
		}),
	)
	require.NoError(t, chain(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
