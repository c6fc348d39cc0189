package couples

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chris/twogether-backend/pkg/api"
	"github.com/chris/twogether-backend/pkg/auth"
	"github.com/chris/twogether-backend/pkg/events"
	event_mocks "github.com/chris/twogether-backend/pkg/events/mocks"
	"github.com/chris/twogether-backend/pkg/middleware"
	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
	storage_mocks "github.com/chris/twogether-backend/pkg/storage/mocks"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newHandler(store *storage_mocks.Storage, publisher events.Publisher) *CouplesHandler {
	h := NewCouplesHandler(store, publisher)
	h.Now = func() time.Time { return now }
	return h
}

func request(t *testing.T, method, accountID string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/couples", &buf)
	claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: accountID}}
	return req.WithContext(middleware.WithClaims(req.Context(), claims))
}

func TestRequestPairingCode(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newHandler(mockStorage, &events.NoOpPublisher{})
		code := &models.PairingCode{Code: "ABCD2345", ExpiresAt: now.Add(models.PairingCodeTTL)}
		mockStorage.On("RequestPairingCode", mock.Anything, "alice", now).Return(code, nil)

		rr := httptest.NewRecorder()
		handler.RequestPairingCode(rr, request(t, http.MethodPost, "alice", nil))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.PairingCode
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.Equal(t, "ABCD2345", got.Code)
		assert.True(t, now.Add(24*time.Hour).Equal(got.ExpiresAt))
	})

	t.Run("Already Active", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newHandler(mockStorage, &events.NoOpPublisher{})
		mockStorage.On("RequestPairingCode", mock.Anything, "alice", now).Return(nil, storage.ErrCodeAlreadyActive)

		rr := httptest.NewRecorder()
		handler.RequestPairingCode(rr, request(t, http.MethodPost, "alice", nil))

		assert.Equal(t, http.StatusConflict, rr.Code)
		var body api.ErrorBody
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, api.CodeCodeAlreadyActive, body.Error.Code)
	})
}

func TestCreateCouple(t *testing.T) {
	bob := "bob"
	paired := &models.Couple{ID: "c1", MemberA: "alice", MemberB: &bob, CreatedAt: now}

	t.Run("Redeem Publishes Event", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockPublisher := new(event_mocks.Publisher)
		handler := newHandler(mockStorage, mockPublisher)

		mockStorage.On("RedeemPairingCode", mock.Anything, "bob", "abcd2345", now).Return(paired, nil)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(&models.Account{ID: "alice", DisplayName: "Alice"}, nil)
		mockStorage.On("GetAccount", mock.Anything, "bob").Return(&models.Account{ID: "bob", DisplayName: "Bob"}, nil)
		mockPublisher.On("Publish", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
			return e.Type == events.CouplePaired && e.CoupleID == "c1"
		})).Return(nil)

		code := "abcd2345"
		rr := httptest.NewRecorder()
		handler.CreateCouple(rr, request(t, http.MethodPost, "bob", api.CreateCoupleRequest{PairingCode: &code}))

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Couple
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.True(t, got.Paired)
		assert.Equal(t, "Alice", got.MemberA.DisplayName)
		require.NotNil(t, got.MemberB)
		assert.Equal(t, "Bob", got.MemberB.DisplayName)
		assert.Nil(t, got.PairingCode)
		mockStorage.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("Publish Failure Does Not Fail Request", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		mockPublisher := new(event_mocks.Publisher)
		handler := newHandler(mockStorage, mockPublisher)

		mockStorage.On("RedeemPairingCode", mock.Anything, "bob", "ABCD2345", now).Return(paired, nil)
		mockStorage.On("GetAccount", mock.Anything, mock.Anything).Return(&models.Account{DisplayName: "x"}, nil)
		mockPublisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("queue down"))

		code := "ABCD2345"
		rr := httptest.NewRecorder()
		handler.CreateCouple(rr, request(t, http.MethodPost, "bob", api.CreateCoupleRequest{PairingCode: &code}))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Redeem Errors", func(t *testing.T) {
		cases := map[error]int{
			storage.ErrCodeNotFound:  http.StatusNotFound,
			storage.ErrSelfPairing:   http.StatusConflict,
			storage.ErrAlreadyPaired: http.StatusConflict,
		}
		for storeErr, status := range cases {
			mockStorage := new(storage_mocks.Storage)
			handler := newHandler(mockStorage, &events.NoOpPublisher{})
			mockStorage.On("RedeemPairingCode", mock.Anything, "bob", "ZZZZZZZZ", now).Return(nil, storeErr)

			code := "ZZZZZZZZ"
			rr := httptest.NewRecorder()
			handler.CreateCouple(rr, request(t, http.MethodPost, "bob", api.CreateCoupleRequest{PairingCode: &code}))
			assert.Equal(t, status, rr.Code, storeErr.Error())
		}
	})

	t.Run("Create Unpaired", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newHandler(mockStorage, &events.NoOpPublisher{})

		name := "Us"
		created := &models.Couple{ID: "c2", MemberA: "alice", Name: &name, CreatedAt: now}
		mockStorage.On("CreateCouple", mock.Anything, "alice", &name, (*time.Time)(nil), now).Return(created, nil)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(&models.Account{ID: "alice", DisplayName: "Alice"}, nil)
		mockStorage.On("GetLivePairingCode", mock.Anything, "c2", now).Return(nil, nil)

		rr := httptest.NewRecorder()
		handler.CreateCouple(rr, request(t, http.MethodPost, "alice", api.CreateCoupleRequest{Name: &name}))

		assert.Equal(t, http.StatusCreated, rr.Code)
		var got api.Couple
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		assert.False(t, got.Paired)
		assert.Nil(t, got.MemberB)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Already In Couple", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newHandler(mockStorage, &events.NoOpPublisher{})
		mockStorage.On("CreateCouple", mock.Anything, "alice", (*string)(nil), (*time.Time)(nil), now).Return(nil, storage.ErrAlreadyInCouple)

		rr := httptest.NewRecorder()
		handler.CreateCouple(rr, request(t, http.MethodPost, "alice", api.CreateCoupleRequest{}))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestGetCouple(t *testing.T) {
	t.Run("Unpaired With Live Code", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newHandler(mockStorage, &events.NoOpPublisher{})

		couple := &models.Couple{ID: "c1", MemberA: "alice", CreatedAt: now}
		mockStorage.On("GetCoupleForAccount", mock.Anything, "alice").Return(couple, nil)
		mockStorage.On("GetAccount", mock.Anything, "alice").Return(&models.Account{ID: "alice", DisplayName: "Alice"}, nil)
		mockStorage.On("GetLivePairingCode", mock.Anything, "c1", now).
			Return(&models.PairingCode{Code: "ABCD2345", ExpiresAt: now.Add(time.Hour)}, nil)

		rr := httptest.NewRecorder()
		handler.GetCouple(rr, request(t, http.MethodGet, "alice", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		var got api.Couple
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.NotNil(t, got.PairingCode)
		assert.Equal(t, "ABCD2345", got.PairingCode.Code)
	})

	t.Run("No Couple", func(t *testing.T) {
		mockStorage := new(storage_mocks.Storage)
		handler := newHandler(mockStorage, &events.NoOpPublisher{})
		mockStorage.On("GetCoupleForAccount", mock.Anything, "alice").Return(nil, storage.ErrCoupleNotFound)

		rr := httptest.NewRecorder()
		handler.GetCouple(rr, request(t, http.MethodGet, "alice", nil))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
