package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/tutorlink/tutorlink/internal/app/models/dto"
	"github.com/tutorlink/tutorlink/internal/middleware"
	"github.com/tutorlink/tutorlink/internal/pkg/filestorage"
)

// UploadController handles file uploads
type UploadController struct {
	fileStorage filestorage.FileStorage
	logger      zerolog.Logger
}

// NewUploadController creates a new UploadController
func NewUploadController(fileStorage filestorage.FileStorage, logger zerolog.Logger) *UploadController {
	return &UploadController{
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// Upload stores a file and returns its URL
// @Summary Upload a file
// @Description Accepts jpg, jpeg, png, pdf and docx files
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse} "File stored"
// @Failure 400 {object} dto.ErrorResponse "Missing file or unsupported type"
// @Router /upload [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A file is required")))
		return
	}

	info, err := c.fileStorage.SaveFile(fileHeader)
	if err != nil {
		c.logger.Warn().Err(err).Str("filename", fileHeader.Filename).Msg("File upload rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("path", info.Path).Int64("size", info.FileSize).Msg("File uploaded")

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: dto.UploadResponse{
		URL:      info.Path,
		FileName: info.Filename,
		FileSize: info.FileSize,
		MimeType: info.MimeType,
	}})
}
