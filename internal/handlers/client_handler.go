package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/httpresp"
	"github.com/agendahub/agenda-api/internal/middleware"
	"github.com/agendahub/agenda-api/internal/models"
)

type ClientHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewClientHandler(db *gorm.DB, log *zap.Logger) *ClientHandler {
	return &ClientHandler{db: db, log: log}
}

// --------- Requests ---------

type ClientRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("account_id = ?", accountID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("name ASC").
		Find(&clients).Error; err != nil {

		h.log.Error("list clients failed", zap.Error(err))
		httperr.Internal(c, "failed_to_list_clients", httperr.GenericFailure)
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		httpresp.Fail(c, "Nome é obrigatório")
		return
	}

	client := models.Client{
		AccountID: accountID,
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
	}

	if err := h.db.Create(&client).Error; err != nil {
		h.log.Error("create client failed", zap.Error(err))
		httperr.Internal(c, "failed_to_create_client", httperr.GenericFailure)
		return
	}

	httpresp.Success(c, "Cliente adicionado com sucesso!")
}

// ======================================================
// UPDATE
// ======================================================

func (h *ClientHandler) Update(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado")
			return
		}
		h.log.Error("get client failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_client", httperr.GenericFailure)
		return
	}

	var req ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		httpresp.Fail(c, "Nome é obrigatório")
		return
	}

	client.Name = req.Name
	client.Phone = req.Phone
	client.Email = req.Email

	if err := h.db.Save(&client).Error; err != nil {
		h.log.Error("update client failed", zap.Error(err))
		httperr.Internal(c, "failed_to_update_client", httperr.GenericFailure)
		return
	}

	httpresp.Success(c, "Cliente atualizado com sucesso!")
}

// ======================================================
// DELETE
// ======================================================

// Exclusão sem proteção de cascata: agendamentos que referenciam o
// cliente permanecem e a listagem tolera a referência pendurada.
func (h *ClientHandler) Delete(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&client).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado")
			return
		}
		h.log.Error("get client failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_client", httperr.GenericFailure)
		return
	}

	if err := h.db.Delete(&client).Error; err != nil {
		h.log.Error("delete client failed", zap.Error(err))
		httperr.Internal(c, "failed_to_delete_client", httperr.GenericFailure)
		return
	}

	httpresp.Success(c, "Cliente excluído com sucesso!")
}
