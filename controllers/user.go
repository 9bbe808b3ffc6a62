package controllers

import (
	"net/http"

	"go-storefront/middleware"
	"go-storefront/session"

	"go.uber.org/zap"
)

// DefaultLanding is where a successful login goes without a "from" hint
const DefaultLanding = "/dashboard"

// UserController handles sign-in and the current user
type UserController struct {
	Auth    *session.Authenticator
	Session *session.Store
	Logger  *zap.Logger
}

// NewUserController creates a new UserController
func NewUserController(auth *session.Authenticator, sess *session.Store, logger *zap.Logger) *UserController {
	return &UserController{Auth: auth, Session: sess, Logger: loggerOrNop(logger)}
}

// Login handles user authentication and sends the browser back to the route
// it was turned away from
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	target := middleware.SafeRedirect(r.URL.Query().Get("from"), DefaultLanding)

	// Already signed in: nothing to do but go back
	if uc.Session.IsAuthenticated() {
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &creds); err != nil {
		writeError(w, uc.Logger, err)
		return
	}

	if _, err := uc.Auth.Authenticate(r.Context(), creds.Email, creds.Password); err != nil {
		writeError(w, uc.Logger, err)
		return
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

// Logout ends the session; the cart is kept
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := uc.Session.Logout(r.Context()); err != nil {
		writeError(w, uc.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetMe returns the signed-in user
func (uc *UserController) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := uc.Session.CurrentUser()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Not logged in"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}
