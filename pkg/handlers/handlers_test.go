package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/chris/twogether-backend/pkg/api"
	"github.com/chris/twogether-backend/pkg/auth"
	"github.com/chris/twogether-backend/pkg/events"
	"github.com/chris/twogether-backend/pkg/storage/sqlstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *client) do(method, path string, body any, out any) int {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rr := httptest.NewRecorder()
	c.router.ServeHTTP(rr, req)
	if out != nil {
		require.NoError(c.t, json.Unmarshal(rr.Body.Bytes(), out), rr.Body.String())
	}
	return rr.Code
}

// newTestRouter serves a fresh SQLite database. Each call to the clock advances it by a second
// so ledger entries written in one test have distinct timestamps.
func newTestRouter(t *testing.T, start time.Time) http.Handler {
	t.Helper()
	dsn := sqlstore.SQLiteDSN(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, sqlstore.Migrate(sqlstore.SQLite, dsn))
	store, err := sqlstore.Open(context.Background(), sqlstore.SQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	authenticator := auth.NewAuthenticator(store)
	authenticator.Cost = bcrypt.MinCost

	return NewRouter(Dependencies{
		Store:          store,
		DB:             store,
		Authenticator:  authenticator,
		Tokens:         auth.NewTokenIssuer("test-secret", time.Hour),
		Publisher:      &events.NoOpPublisher{},
		CORSOrigin:     "*",
		MetricsEnabled: true,
		Now: func() time.Time {
			start = start.Add(time.Second)
			return start
		},
	})
}

func register(t *testing.T, router http.Handler, email, name string) *client {
	t.Helper()
	c := &client{t: t, router: router}
	var resp api.AuthResponse
	status := c.do(http.MethodPost, "/api/auth/register", api.RegisterRequest{Email: email, DisplayName: name, Password: "correct horse"}, &resp)
	require.Equal(t, http.StatusCreated, status)
	c.token = resp.Token
	return c
}

func TestCoupleJourney(t *testing.T) {
	now := time.Date(2024, 2, 14, 19, 0, 0, 0, time.UTC)
	router := newTestRouter(t, now)

	alice := register(t, router, "alice@example.com", "Alice")
	bob := register(t, router, "bob@example.com", "Bob")

	// Pair.
	var code api.PairingCode
	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, "/api/couples/pairing-code", nil, &code))
	assert.Len(t, code.Code, 8)

	var errBody api.ErrorBody
	assert.Equal(t, http.StatusConflict, alice.do(http.MethodPost, "/api/couples", api.CreateCoupleRequest{PairingCode: &code.Code}, &errBody))
	assert.Equal(t, api.CodeSelfPairing, errBody.Error.Code)

	var couple api.Couple
	require.Equal(t, http.StatusOK, bob.do(http.MethodPost, "/api/couples", api.CreateCoupleRequest{PairingCode: &code.Code}, &couple))
	assert.True(t, couple.Paired)
	assert.Equal(t, "Alice", couple.MemberA.DisplayName)
	require.NotNil(t, couple.MemberB)
	assert.Equal(t, "Bob", couple.MemberB.DisplayName)

	// Record the first moment.
	notes := "Valentine's dinner"
	var result api.MomentResult
	require.Equal(t, http.StatusCreated, alice.do(http.MethodPost, "/api/moments", api.NewMoment{Notes: &notes}, &result))
	assert.Equal(t, int64(100), result.CoinsEarned)
	require.Len(t, result.Achievements, 1)
	assert.Equal(t, "beginner_couple", result.Achievements[0].BadgeKind)

	// Both members see the same balance.
	var balance api.Balance
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/coins/balance", nil, &balance))
	assert.Equal(t, api.Balance{Balance: 1100, TotalEarned: 1100}, balance)

	// Spending more than the balance is rejected.
	assert.Equal(t, http.StatusBadRequest, bob.do(http.MethodPost, "/api/coins/transaction", api.NewLedgerEntry{Kind: "spend", Amount: 2000}, &errBody))
	assert.Equal(t, api.CodeInsufficientBalance, errBody.Error.Code)

	var spent api.LedgerEntryResult
	require.Equal(t, http.StatusCreated, bob.do(http.MethodPost, "/api/coins/transaction", api.NewLedgerEntry{Kind: "spend", Amount: 600}, &spent))
	assert.Equal(t, int64(500), spent.Balance.Balance)

	var entries []api.LedgerEntry
	require.Equal(t, http.StatusOK, alice.do(http.MethodGet, "/api/coins/transactions?limit=2", nil, &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "spend", entries[0].Kind)

	// Stats and achievements.
	var summary api.Stats
	require.Equal(t, http.StatusOK, alice.do(http.MethodGet, "/api/stats", nil, &summary))
	assert.Equal(t, 1, summary.TotalMoments)
	assert.Equal(t, 1, summary.CurrentStreak)

	var badges []api.Achievement
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/achievements", nil, &badges))
	require.NotEmpty(t, badges)
	assert.True(t, badges[0].Unlocked)

	var list []api.Moment
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/moments", nil, &list))
	require.Len(t, list, 1)
	var one api.Moment
	require.Equal(t, http.StatusOK, bob.do(http.MethodGet, "/api/moments/"+list[0].Id, nil, &one))
	require.NotNil(t, one.Notes)
	assert.Equal(t, notes, *one.Notes)
}

func TestAuthBoundaries(t *testing.T) {
	router := newTestRouter(t, time.Now())

	anonymous := &client{t: t, router: router}
	assert.Equal(t, http.StatusUnauthorized, anonymous.do(http.MethodGet, "/api/coins/balance", nil, nil))

	var health api.Health
	require.Equal(t, http.StatusOK, anonymous.do(http.MethodGet, "/health", nil, &health))
	assert.Equal(t, "connected", health.Database)

	carol := register(t, router, "carol@example.com", "Carol")
	var errBody api.ErrorBody
	assert.Equal(t, http.StatusNotFound, carol.do(http.MethodGet, "/api/coins/balance", nil, &errBody))
	assert.Equal(t, api.CodeCoupleNotFound, errBody.Error.Code)

	var resp api.AuthResponse
	login := &client{t: t, router: router}
	assert.Equal(t, http.StatusOK, login.do(http.MethodPost, "/api/auth/login", api.LoginRequest{Email: "CAROL@example.com", Password: "correct horse"}, &resp))
	assert.Equal(t, http.StatusUnauthorized, login.do(http.MethodPost, "/api/auth/login", api.LoginRequest{Email: "carol@example.com", Password: "wrong horse"}, &errBody))
	assert.Equal(t, api.CodeInvalidCredentials, errBody.Error.Code)
}

type downDB struct{}

func (downDB) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthDegraded(t *testing.T) {
	router := NewRouter(Dependencies{DB: downDB{}, Tokens: auth.NewTokenIssuer("s", time.Hour)})
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
