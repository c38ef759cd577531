package transport

import (
	"net/http"

	"github.com/AbhiAndure02/pocketwala/internal/domain"
	"github.com/AbhiAndure02/pocketwala/internal/middleware"
	"github.com/AbhiAndure02/pocketwala/internal/repository"
	"github.com/AbhiAndure02/pocketwala/internal/service"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Name     string          `json:"name" validate:"required"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=8"`
	Phone    string          `json:"phone"`
	Address  *AddressRequest `json:"address"`
}

// LoginRequest represents the login payload; login is an email or phone
// identifier.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// GoogleRequest represents the Google sign-in assertion payload
type GoogleRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// UpdateProfileRequest represents a partial profile update; absent fields
// stay unchanged.
type UpdateProfileRequest struct {
	Name     *string         `json:"name"`
	Email    *string         `json:"email" validate:"omitempty,email"`
	Phone    *string         `json:"phone"`
	Address  *AddressRequest `json:"address"`
	Password *string         `json:"password" validate:"omitempty,min=8"`
}

// UserProfile represents sanitized user data; the password hash never
// leaves the domain type.
type UserProfile struct {
	ID      string         `json:"_id"`
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Address domain.Address `json:"address"`
	IsAdmin bool           `json:"isAdmin"`
}

// AuthResponse is the shape returned by register, login, google sign-in and
// profile updates: a sanitized user plus a bearer token.
type AuthResponse struct {
	User  UserProfile `json:"user"`
	Token string      `json:"token"`
}

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers all user routes. The credential endpoints sit
// behind the rate limiter.
func (h *UserHandler) RegisterRoutes(r chi.Router, auth, admin, limit func(http.Handler) http.Handler) {
	r.Route("/api/users", func(r chi.Router) {
		// Public routes
		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/google", h.Google)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/logout", h.Logout)
			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.UpdateProfile)
		})

		// Admin routes
		r.Group(func(r chi.Router) {
			r.Use(auth, admin)
			r.Get("/", h.ListUsers)
			r.Get("/{id}", h.GetUserByID)
		})
	})
}

// Register handles user registration
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Registration validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}
	if req.Address != nil {
		input.Address = domain.Address{
			Address:    req.Address.Address,
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		}
	}

	user, token, err := h.userService.Register(r.Context(), input)
	if err != nil {
		if err == repository.ErrUserAlreadyExists {
			middleware.RespondWithError(w, http.StatusBadRequest, "User already exists")
			return
		}
		h.logger.Error("Registration failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to register user")
		return
	}

	h.logger.Info("User registered", zap.String("user_id", user.ID.Hex()))
	middleware.RespondWithJSON(w, http.StatusCreated, AuthResponse{
		User:  toProfile(user),
		Token: token,
	})
}

// Login handles credential authentication by email or phone
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.userService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			middleware.RespondWithError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("User logged in", zap.String("user_id", user.ID.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, AuthResponse{
		User:  toProfile(user),
		Token: token,
	})
}

// Google handles the Google sign-in assertion
func (h *UserHandler) Google(w http.ResponseWriter, r *http.Request) {
	var req GoogleRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := h.userService.GoogleSignIn(r.Context(), req.Name, req.Email)
	if err != nil {
		h.logger.Error("Google sign-in failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "google sign-in failed")
		return
	}

	h.logger.Info("User signed in with Google", zap.String("user_id", user.ID.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, AuthResponse{
		User:  toProfile(user),
		Token: token,
	})
}

// Logout acknowledges a sign-out. Tokens are stateless bearer tokens, so the
// client discards its copy; nothing is revoked server-side.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.logger.Info("User logged out")
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// GetProfile handles fetching the caller's profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserObjectID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("Profile fetch failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get profile")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, toProfile(user))
}

// UpdateProfile handles a partial profile update for the caller
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserObjectID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Profile update validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := service.ProfileUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}
	if req.Address != nil {
		update.Address = &domain.Address{
			Address:    req.Address.Address,
			City:       req.Address.City,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		}
	}

	user, token, err := h.userService.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		switch err {
		case repository.ErrUserNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "user not found")
		case repository.ErrUserAlreadyExists:
			middleware.RespondWithError(w, http.StatusBadRequest, "User already exists")
		default:
			h.logger.Error("Profile update failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update profile")
		}
		return
	}

	h.logger.Info("Profile updated", zap.String("user_id", user.ID.Hex()))
	middleware.RespondWithJSON(w, http.StatusOK, AuthResponse{
		User:  toProfile(user),
		Token: token,
	})
}

// ListUsers handles listing all users (admin)
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("User listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	profiles := make([]UserProfile, 0, len(users))
	for _, user := range users {
		profiles = append(profiles, toProfile(user))
	}
	middleware.RespondWithJSON(w, http.StatusOK, profiles)
}

// GetUserByID handles fetching one user by ID (admin)
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	user, err := h.userService.GetUserByID(r.Context(), id)
	if err != nil {
		if err == repository.ErrUserNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "user not found")
			return
		}
		h.logger.Error("User fetch failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get user")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, toProfile(user))
}

func toProfile(user *domain.User) UserProfile {
	return UserProfile{
		ID:      user.ID.Hex(),
		Name:    user.Name,
		Email:   user.Email,
		Phone:   user.Phone,
		Address: user.Address,
		IsAdmin: user.IsAdmin,
	}
}
