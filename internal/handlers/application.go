// internal/handlers/application.go
package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/softrack/avcatalog-backend/internal/services"
	"github.com/softrack/avcatalog-backend/internal/utils"
)

type ApplicationHandler struct {
	apps  *services.ApplicationService
	audit services.AuditRecorder
}

func NewApplicationHandler(apps *services.ApplicationService, audit services.AuditRecorder) *ApplicationHandler {
	return &ApplicationHandler{apps: apps, audit: audit}
}

// List handles GET /application. Admin callers get each application's
// raw license list; everyone else gets license counts.
func (h *ApplicationHandler) List(c *gin.Context) {
	if utils.IsAdminFromContext(c) {
		views, err := h.apps.ListWithLicenses()
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		utils.SuccessResponse(c, views)
		return
	}

	views, err := h.apps.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, views)
}

// Get handles GET /application/:id. Unlike List, the single read
// returns the count projection for every caller, admin included.
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	view, err := h.apps.Get(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, view)
}

// ListBySoftware handles GET /application/software/:id
func (h *ApplicationHandler) ListBySoftware(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	apps, err := h.apps.ListBySoftware(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, apps)
}

// Create handles POST /application
func (h *ApplicationHandler) Create(c *gin.Context) {
	logo, err := formUpload(c, "logo")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	softwareID, err := strconv.ParseUint(c.PostForm("software_id"), 10, 32)
	if err != nil {
		utils.BadRequestResponse(c, "Software id must be a whole number.", nil)
		return
	}
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		utils.BadRequestResponse(c, "Price must be a number.", nil)
		return
	}

	app, err := h.apps.Create(&services.CreateApplicationRequest{
		SoftwareID:   uint(softwareID),
		Description:  c.PostForm("description"),
		Price:        price,
		DownloadLink: c.PostForm("download_link"),
		Logo:         logo,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "post",
		fmt.Sprintf("Added application %s to software %d", app.Description, app.SoftwareID))
	utils.CreatedResponse(c, app)
}

// Update handles PUT /application/:id
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req services.UpdateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "No input data detected!", nil)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	app, err := h.apps.Update(id, &req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "put",
		fmt.Sprintf("Updated application %d", id))
	utils.SuccessResponse(c, app)
}

// UpdateLogo handles PUT /application/logo/:id
func (h *ApplicationHandler) UpdateLogo(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	logo, err := formUpload(c, "logo")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	app, err := h.apps.UpdateLogo(id, logo)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "put",
		fmt.Sprintf("Updated the logo of application %d", id))
	utils.SuccessResponse(c, app)
}

// Delete handles DELETE /application/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.apps.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "delete",
		fmt.Sprintf("Deleted application %d", id))
	utils.SuccessResponse(c, gin.H{"message": "The application has been deleted."})
}
