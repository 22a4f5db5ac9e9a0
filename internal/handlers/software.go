// internal/handlers/software.go
package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/softrack/avcatalog-backend/internal/apperr"
	"github.com/softrack/avcatalog-backend/internal/services"
	"github.com/softrack/avcatalog-backend/internal/utils"
)

type SoftwareHandler struct {
	software *services.SoftwareService
	audit    services.AuditRecorder
}

func NewSoftwareHandler(software *services.SoftwareService, audit services.AuditRecorder) *SoftwareHandler {
	return &SoftwareHandler{software: software, audit: audit}
}

// parseID reads the :id path parameter as an unsigned integer.
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.NotFound("This record does not exist!")
	}
	return uint(id), nil
}

// formUpload lifts an optional multipart file field into an Upload. A
// missing field yields a zero Upload, which the services reject with
// their own message.
func formUpload(c *gin.Context, field string) (services.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return services.Upload{}, nil
	}
	return readUpload(header)
}

func readUpload(header *multipart.FileHeader) (services.Upload, error) {
	f, err := header.Open()
	if err != nil {
		return services.Upload{}, apperr.Unexpected("Could not read the uploaded file.", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.Upload{}, apperr.Unexpected("Could not read the uploaded file.", err)
	}

	return services.Upload{Filename: header.Filename, Data: data}, nil
}

// List handles GET /software
func (h *SoftwareHandler) List(c *gin.Context) {
	views, err := h.software.List()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, views)
}

// Get handles GET /software/:id
func (h *SoftwareHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	view, err := h.software.Get(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.SuccessResponse(c, view)
}

// Create handles POST /software
func (h *SoftwareHandler) Create(c *gin.Context) {
	logo, err := formUpload(c, "logo")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	sw, err := h.software.Create(&services.CreateSoftwareRequest{
		Name: c.PostForm("name"),
		Logo: logo,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "post",
		fmt.Sprintf("Added software %s", sw.Name))
	utils.CreatedResponse(c, sw)
}

// Update handles PUT /software/:id
func (h *SoftwareHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "No input data detected!", nil)
		return
	}

	sw, err := h.software.UpdateName(id, req.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "put",
		fmt.Sprintf("Updated software %d to %s", id, sw.Name))
	utils.SuccessResponse(c, sw)
}

// UpdateLogo handles PUT /software/logo/:id
func (h *SoftwareHandler) UpdateLogo(c *gin.Context) {
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

	sw, err := h.software.UpdateLogo(id, logo)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "put",
		fmt.Sprintf("Updated the logo of software %d", id))
	utils.SuccessResponse(c, sw)
}

// Delete handles DELETE /software/:id
func (h *SoftwareHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := h.software.Delete(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	h.audit.Record(c.GetHeader("Authorization"), "delete",
		fmt.Sprintf("Deleted software %d", id))
	utils.SuccessResponse(c, gin.H{"message": "The software has been deleted."})
}
