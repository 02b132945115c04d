package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/campusbot/UniBotAPI/internal/api"
	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
)

// Register godoc
// @Summary      Register a new user
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      api.RegisterRequest  true  "New user data"
// @Success      201      {object}  api.RegisterResponse
// @Failure      400      {object}  api.ErrorResponse "Duplicate email or bad role"
// @Router       /register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "name, email and password are required")
		return
	}
	if req.Role != commonModels.RoleStudent && req.Role != commonModels.RoleAdmin {
		WriteErrorResponse(w, http.StatusBadRequest, "Role must be either 'student' or 'admin'")
		return
	}

	existing, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("Registration lookup failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Registration failed")
		return
	}
	if existing != nil {
		WriteErrorResponse(w, http.StatusBadRequest, "User with this email already exists")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("Password hashing failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := &commonModels.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     req.Role,
		IsActive: true,
	}
	id, err := h.users.CreateUser(r.Context(), user)
	if err != nil {
		h.logger.Error("User insert failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	writeJsonResponse(w, http.StatusCreated, api.RegisterResponse{
		Message: "User registered successfully",
		UserID:  id,
		Email:   user.Email,
		Role:    user.Role,
	})
}

// Login godoc
// @Summary      Log in and receive a JWT
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      api.LoginRequest  true  "Credentials"
// @Success      200      {object}  api.LoginResponse
// @Failure      401      {object}  api.ErrorResponse "Wrong credentials or inactive account"
// @Router       /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.users.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("Login lookup failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		WriteErrorResponse(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !user.IsActive {
		WriteErrorResponse(w, http.StatusUnauthorized, "Account is inactive")
		return
	}

	token, expiresAt, err := h.tokens.Generate(user)
	if err != nil {
		h.logger.Error("Token generation failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := h.users.TouchLastLogin(r.Context(), user.ID.Hex()); err != nil {
		// Login still succeeds; last_login is best effort.
		h.logger.Warn("Could not update last_login", "error", err)
	}

	writeJsonResponse(w, http.StatusOK, api.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        user.Role,
		Email:       user.Email,
		Name:        user.Name,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
	})
}

// ValidateToken godoc
// @Summary      Validate the bearer token
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  api.TokenValidationResponse
// @Router       /validate-token [post]
func (h *Handler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		WriteErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	writeJsonResponse(w, http.StatusOK, api.TokenValidationResponse{
		Valid: true,
		Role:  claims.Role,
		Email: claims.Email(),
		Name:  claims.Name,
	})
}

// Logout is stateless: the client drops the token. Kept for API parity.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.MessageResponse{Message: "Successfully logged out"})
}

func (h *Handler) ProtectedTest(w http.ResponseWriter, r *http.Request) {
	claims, _ := auth.ClaimsFromContext(r.Context())
	writeJsonResponse(w, http.StatusOK, api.MessageResponse{
		Message: "Hello " + claims.Name + ", you are authenticated",
	})
}

// ListUsers godoc
// @Summary      List all users (admin)
// @Tags         Users
// @Produce      json
// @Success      200  {array}  commonModels.User
// @Router       /users [get]
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("User list failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving users")
		return
	}
	writeJsonResponse(w, http.StatusOK, users)
}

// UserCount godoc
// @Summary      User counts by role and activity (admin)
// @Tags         Users
// @Produce      json
// @Success      200  {object}  commonModels.UserCounts
// @Router       /users/count [get]
func (h *Handler) UserCount(w http.ResponseWriter, r *http.Request) {
	counts, err := h.users.CountUsers(r.Context())
	if err != nil {
		h.logger.Error("User count failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Error retrieving user counts")
		return
	}
	writeJsonResponse(w, http.StatusOK, counts)
}
