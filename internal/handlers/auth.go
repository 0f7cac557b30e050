package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/packline/packtrace/internal/auth"
	"github.com/packline/packtrace/internal/utils"
)

// LoginRequest represents a login request. Terminals send the SHA-256
// of the PIN, never the PIN itself.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	PinHash  string `json:"pinHash" validate:"required,len=64,hexadecimal"`
}

// login handles operator login
func (r *Router) login(w http.ResponseWriter, req *http.Request) {
	var loginReq LoginRequest
	if err := json.NewDecoder(req.Body).Decode(&loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(loginReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	authUser, err := r.authSvc.Authenticate(loginReq.Username, loginReq.PinHash)
	if err != nil {
		if err == auth.ErrInvalidCredentials {
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
		} else {
			respondServiceError(w, err)
		}
		return
	}

	accessToken, refreshToken, err := utils.GenerateTokens(&authUser.User, r.cfg.JWTSecret)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to generate tokens")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"tokens": map[string]string{
			"accessToken":  accessToken,
			"refreshToken": refreshToken,
		},
		"user":        authUser.User,
		"roles":       authUser.Roles,
		"permissions": authUser.Permissions,
	})
}
