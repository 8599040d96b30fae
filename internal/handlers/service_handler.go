package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/httperr"
	"github.com/agendahub/agenda-api/internal/httpresp"
	"github.com/agendahub/agenda-api/internal/imagestore"
	"github.com/agendahub/agenda-api/internal/middleware"
	"github.com/agendahub/agenda-api/internal/models"
)

type ServiceHandler struct {
	db     *gorm.DB
	images imagestore.Store
	log    *zap.Logger
}

// images pode ser nil: a referência de imagem é gravada como chegou.
func NewServiceHandler(db *gorm.DB, images imagestore.Store, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{db: db, images: images, log: log}
}

// --------- Requests ---------

type ServiceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// --------- Helpers ---------

func (h *ServiceHandler) storeImage(c *gin.Context, accountID uint, ref string) (string, bool) {
	if ref == "" || h.images == nil {
		return ref, true
	}

	stored, err := h.images.Save(c.Request.Context(), accountID, ref)
	if err != nil {
		h.log.Warn("service image upload failed", zap.Error(err))
		httpresp.Fail(c, "Imagem inválida")
		return "", false
	}

	return stored, true
}

// ======================================================
// LIST
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var services []models.Service
	if err := h.db.
		Where("account_id = ?", accountID).
		Order("name ASC").
		Find(&services).Error; err != nil {

		h.log.Error("list services failed", zap.Error(err))
		httperr.Internal(c, "failed_to_list_services", httperr.GenericFailure)
		return
	}

	httpresp.List(c, services)
}

// ======================================================
// GET
// ======================================================

func (h *ServiceHandler) Get(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado")
			return
		}
		h.log.Error("get service failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_service", httperr.GenericFailure)
		return
	}

	httpresp.OK(c, service)
}

// ======================================================
// CREATE
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		httpresp.Fail(c, "Nome é obrigatório")
		return
	}

	image, ok := h.storeImage(c, accountID, req.Image)
	if !ok {
		return
	}

	service := models.Service{
		AccountID:   accountID,
		Name:        req.Name,
		Description: req.Description,
		Image:       image,
	}

	if err := h.db.Create(&service).Error; err != nil {
		h.log.Error("create service failed", zap.Error(err))
		httperr.Internal(c, "failed_to_create_service", httperr.GenericFailure)
		return
	}

	httpresp.Success(c, "Serviço adicionado com sucesso!")
}

// ======================================================
// UPDATE
// ======================================================

func (h *ServiceHandler) Update(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado")
			return
		}
		h.log.Error("get service failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_service", httperr.GenericFailure)
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		httpresp.Fail(c, "Nome é obrigatório")
		return
	}

	image, ok := h.storeImage(c, accountID, req.Image)
	if !ok {
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Image = image

	if err := h.db.Save(&service).Error; err != nil {
		h.log.Error("update service failed", zap.Error(err))
		httperr.Internal(c, "failed_to_update_service", httperr.GenericFailure)
		return
	}

	httpresp.Success(c, "Serviço atualizado com sucesso!")
}

// ======================================================
// DELETE
// ======================================================

// Mesma política permissiva do cliente: agendamentos existentes ficam
// com a referência pendurada.
func (h *ServiceHandler) Delete(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado")
			return
		}
		h.log.Error("get service failed", zap.Error(err))
		httperr.Internal(c, "failed_to_get_service", httperr.GenericFailure)
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		h.log.Error("delete service failed", zap.Error(err))
		httperr.Internal(c, "failed_to_delete_service", httperr.GenericFailure)
		return
	}

	httpresp.Success(c, "Serviço excluído com sucesso!")
}
