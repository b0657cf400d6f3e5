package http

import (
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-card-share/internal/app"
	"github.com/MKhiriev/go-card-share/internal/logger"
	"github.com/MKhiriev/go-card-share/internal/utils"
	"github.com/MKhiriev/go-card-share/internal/validators"
	"github.com/MKhiriev/go-card-share/models"
)

// platformHeader carries an explicit client platform override; when it names
// a known platform it wins over user-agent sniffing.
const platformHeader = "X-Client-Platform"

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var input validators.RegistrationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, token, err := h.services.AuthService.Register(ctx, input)
	if err != nil {
		h.writeError(w, r, err, app.MsgRegistrationFailed)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{User: registeredUser, Token: token.SignedString}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	loggedInUser, token, err := h.services.AuthService.Login(ctx, creds, clientMeta(r))
	if err != nil {
		h.writeError(w, r, err, app.MsgLoginFailed)
		return
	}

	log.Debug().Int64("id", loggedInUser.UserID).Msg("user successfully logged in")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	utils.WriteJSON(w, models.AuthResponse{User: loggedInUser, Token: token.SignedString}, http.StatusOK)
}

// logout acknowledges the request; sessions are stateless JWTs, so the
// client simply discards its token.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: "logged out"}, http.StatusOK)
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	foundUser, err := h.services.AuthService.FindUser(ctx, userID)
	if err != nil {
		h.writeError(w, r, err, app.MsgProfileLookupFailed)
		return
	}

	utils.WriteJSON(w, foundUser, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedUser, err := h.services.AuthService.UpdateProfile(ctx, userID, update)
	if err != nil {
		h.writeError(w, r, err, app.MsgProfileUpdateFailed)
		return
	}

	utils.WriteJSON(w, updatedUser, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var change models.PasswordChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.AuthService.ChangePassword(ctx, userID, change); err != nil {
		h.writeError(w, r, err, app.MsgPasswordChangeFailed)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: "password updated"}, http.StatusOK)
}

func (h *Handler) loginHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	attempts, err := h.services.AuthService.ListLoginAttempts(ctx, userID)
	if err != nil {
		h.writeError(w, r, err, app.MsgLoginHistoryFailed)
		return
	}

	utils.WriteJSON(w, attempts, http.StatusOK)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := utils.GetUserIDFromContext(ctx)
	role, okRole := utils.GetUserRoleFromContext(ctx)
	if !ok || !okRole {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	if err := h.services.AuthService.RequireRole(models.User{UserID: userID, Role: role}, models.RoleAdmin); err != nil {
		h.writeError(w, r, err, app.MsgUserListingDenied)
		return
	}

	users, err := h.services.AuthService.ListUsers(ctx)
	if err != nil {
		h.writeError(w, r, err, app.MsgUserListingFailed)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

// writeError logs the error and writes a JSON message with the status
// resolved through the sentinel mapping.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.FromRequest(r).Err(err).Msg(msg)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		// internal details never reach the client
		utils.WriteJSON(w, models.MessageResponse{Message: http.StatusText(status)}, status)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: err.Error()}, status)
}

// clientMeta captures the audit attributes of a login request: the detected
// platform, the originating IP, and the raw user agent.
func clientMeta(r *http.Request) models.ClientMeta {
	userAgent := r.UserAgent()

	return models.ClientMeta{
		Platform:  models.DetectPlatform(r.Header.Get(platformHeader), userAgent),
		IPAddress: clientIP(r),
		UserAgent: userAgent,
	}
}

// clientIP resolves the originating address, preferring proxy headers over
// the raw connection peer.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// the first entry is the original client
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
