// internal/handlers/license.go
package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/softrack/avcatalog-backend/internal/models"
	"github.com/softrack/avcatalog-backend/internal/services"
	"github.com/softrack/avcatalog-backend/internal/utils"
)

type LicenseHandler struct {
	licenses *services.LicenseService
	audit    services.AuditRecorder
}

func NewLicenseHandler(licenses *services.LicenseService, audit services.AuditRecorder) *LicenseHandler {
	return &LicenseHandler{licenses: licenses, audit: audit}
}

// List handles GET /license
func (h *LicenseHandler) List(c *gin.Context) {
	licenses, err := h.licenses.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "get", "Retrieved all licenses")
	utils.SuccessResponse(c, licenses)
}

// Get handles GET /license/:id. License reads are audited: keys are
// sensitive and every retrieval is attributed to the caller.
func (h *LicenseHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	view, err := h.licenses.Get(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "get",
		fmt.Sprintf("Retrieved license %d", id))
	utils.SuccessResponse(c, view)
}

// ListByApplication handles GET /license/application/:id
func (h *LicenseHandler) ListByApplication(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	licenses, err := h.licenses.ListByApplication(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "get",
		fmt.Sprintf("Retrieved the licenses of application %d", id))
	utils.SuccessResponse(c, licenses)
}

// Create handles POST /license
func (h *LicenseHandler) Create(c *gin.Context) {
	var req services.CreateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "No input data detected!", nil)
		return
	}

	lic, err := h.licenses.Create(&req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "post",
		fmt.Sprintf("Added a license to application %d", lic.ApplicationID))
	utils.CreatedResponse(c, lic)
}

// Update handles PUT /license/:id
func (h *LicenseHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		Key string `json:"key"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "No input data detected!", nil)
		return
	}

	lic, err := h.licenses.UpdateKey(id, req.Key)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "put",
		fmt.Sprintf("Updated the key of license %d", id))
	utils.SuccessResponse(c, lic)
}

// Sell handles PUT /license/sell/:id
func (h *LicenseHandler) Sell(c *gin.Context) {
	h.setStatus(c, models.LicenseStatusSold, "Sold license %d")
}

// Credit handles PUT /license/credit/:id
func (h *LicenseHandler) Credit(c *gin.Context) {
	h.setStatus(c, models.LicenseStatusOnCredit, "Put license %d on credit")
}

// Avail handles PUT /license/avail/:id
func (h *LicenseHandler) Avail(c *gin.Context) {
	h.setStatus(c, models.LicenseStatusAvailable, "Made license %d available")
}

func (h *LicenseHandler) setStatus(c *gin.Context, to models.LicenseStatus, auditFormat string) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	lic, err := h.licenses.SetStatus(id, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "put", fmt.Sprintf(auditFormat, id))
	utils.SuccessResponse(c, lic)
}

// Delete handles DELETE /license/:id
func (h *LicenseHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.licenses.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "delete",
		fmt.Sprintf("Deleted license %d", id))
	utils.SuccessResponse(c, gin.H{"message": "The license has been deleted."})
}
