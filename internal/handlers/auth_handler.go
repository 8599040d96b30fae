package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/config"
	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/httpresp"
	"github.com/agendahub/agenda-api/internal/models"
)

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	log    *zap.Logger
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, log: log}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.Fail(c, "Todos os campos são obrigatórios")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.Account{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httpresp.Fail(c, "Email já cadastrado")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", httperr.GenericFailure)
		return
	}

	account := models.Account{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
	}

	if err := h.db.Create(&account).Error; err != nil {
		h.log.Error("create account failed", zap.Error(err))
		httperr.Internal(c, "failed_to_create_account", httperr.GenericFailure)
		return
	}

	token, err := h.generateToken(&account)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", httperr.GenericFailure)
		return
	}

	c.JSON(201, gin.H{
		"success": true,
		"message": "Cadastro realizado com sucesso!",
		"account": gin.H{
			"id":    account.ID,
			"name":  account.Name,
			"email": account.Email,
		},
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpresp.Fail(c, "Todos os campos são obrigatórios")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var account models.Account
	if err := h.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpresp.Fail(c, "Email ou senha incorretos")
			return
		}
		h.log.Error("login lookup failed", zap.Error(err))
		httperr.Internal(c, "internal_error", httperr.GenericFailure)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		httpresp.Fail(c, "Email ou senha incorretos")
		return
	}

	token, err := h.generateToken(&account)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", httperr.GenericFailure)
		return
	}

	c.JSON(200, gin.H{
		"success": true,
		"message": "Login realizado com sucesso!",
		"account": gin.H{
			"id":    account.ID,
			"name":  account.Name,
			"email": account.Email,
		},
		"token": token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(account *models.Account) (string, error) {
	claims := jwt.MapClaims{
		"sub": account.ID,
		"exp": time.Now().Add(24 * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
