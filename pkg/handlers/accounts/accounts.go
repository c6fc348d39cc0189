package accounts

import (
	"context"
	"net/http"

	"github.com/chris/twogether-backend/pkg/api"
	"github.com/chris/twogether-backend/pkg/auth"
	"github.com/chris/twogether-backend/pkg/handlers/respond"
	"github.com/chris/twogether-backend/pkg/mapping"
	"github.com/chris/twogether-backend/pkg/middleware"
	"github.com/chris/twogether-backend/pkg/models"
	"github.com/chris/twogether-backend/pkg/storage"
)

// Credentials registers and authenticates accounts.
type Credentials interface {
	Register(ctx context.Context, email, displayName, password string) (*models.Account, error)
	Authenticate(ctx context.Context, email, password string) (*models.Account, error)
}

// Issuer signs session tokens.
type Issuer interface {
	Issue(accountID, displayName string) (auth.Token, error)
}

// AccountsHandler holds the dependencies for account handlers.
type AccountsHandler struct {
	Store       storage.AccountStore
	Credentials Credentials
	Tokens      Issuer
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(store storage.AccountStore, credentials Credentials, tokens Issuer) *AccountsHandler {
	return &AccountsHandler{Store: store, Credentials: credentials, Tokens: tokens}
}

// Register creates an account and returns a session token.
func (h *AccountsHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	account, err := h.Credentials.Register(r.Context(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.writeSession(w, r, http.StatusCreated, account)
}

// Login exchanges credentials for a session token.
func (h *AccountsHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	account, err := h.Credentials.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	h.writeSession(w, r, http.StatusOK, account)
}

// Me returns the authenticated account.
func (h *AccountsHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, err := h.Store.GetAccount(r.Context(), middleware.AccountID(r.Context()))
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, mapping.ToApiAccount(account))
}

func (h *AccountsHandler) writeSession(w http.ResponseWriter, r *http.Request, status int, account *models.Account) {
	token, err := h.Tokens.Issue(account.ID, account.DisplayName)
	if err != nil {
		respond.Error(w, r, err)
		return
	}
	respond.JSON(w, status, api.AuthResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		Account:   mapping.ToApiAccount(account),
	})
}
