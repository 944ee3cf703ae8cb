package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"farmmarket/models"
	"farmmarket/storage"
	"farmmarket/utils"
)

// UserController handles registration and login.
type UserController struct {
	Users        storage.UserStore
	Tokens       *utils.TokenIssuer
	EmailService *utils.EmailService // nil when email is not configured
	validate     *validator.Validate
}

// NewUserController creates a new UserController.
func NewUserController(users storage.UserStore, tokens *utils.TokenIssuer, emailService *utils.EmailService) *UserController {
	return &UserController{
		Users:        users,
		Tokens:       tokens,
		EmailService: emailService,
		validate:     validator.New(),
	}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=farmer buyer"`
}

// Register handles user registration.
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := uc.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "All fields are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	exists, err := uc.Users.EmailExists(ctx, req.Email)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if exists {
		writeError(w, http.StatusConflict, "User already exists")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Type:     req.Type,
	}
	user, err = uc.Users.Insert(ctx, user)
	if err != nil {
		writeAppError(w, err)
		return
	}

	if uc.EmailService != nil {
		if err := uc.EmailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
			logrus.WithError(err).WithField("email", user.Email).Warn("failed to send welcome email")
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles user authentication.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := uc.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		writeAppError(w, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid password")
		return
	}

	token, err := uc.Tokens.Generate(user.Email, user.Type)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user": map[string]any{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"type":  user.Type,
			"token": token,
		},
	})
}
