package controller

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/uploads/dto"
	"sindiplus_backend/internals/features/uploads/model"
	"sindiplus_backend/internals/features/uploads/service"
	helper "sindiplus_backend/internals/helpers"
	"sindiplus_backend/internals/helpers/cache"
)

type ImportController struct {
	DB     *gorm.DB
	Import *service.ImportService
}

func NewImportController(db *gorm.DB, cacheSvc *cache.Service) *ImportController {
	return &ImportController{
		DB:     db,
		Import: service.NewImportService(db, cacheSvc),
	}
}

// Run imports the upload's rows into the canonical table. The body may carry
// pre-processed rows; otherwise the staged raw rows are re-read.
func (ic *ImportController) Run(c *fiber.Ctx) error {
	upload, err := ic.loadScoped(c)
	if err != nil {
		return err
	}

	var req dto.ImportRequest
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
		}
	}

	res, err := ic.Import.ImportUpload(c.UserContext(), upload, req.Rows)
	if err != nil {
		if errors.Is(err, service.ErrNotImportable) {
			return helper.Error(c, fiber.StatusConflict, "Upload is not ready to be imported")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Import failed")
	}

	return helper.Success(c, "Import finished", dto.ImportResponse{
		UploadID:      upload.ID,
		Status:        upload.Status,
		TotalRows:     res.TotalRows,
		ProcessedRows: res.Processed,
		ErrorCount:    res.Errors,
		ErrorSamples:  res.Samples,
	})
}

func (ic *ImportController) loadScoped(c *fiber.Ctx) (*model.UploadModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid upload id")
	}

	var upload model.UploadModel
	if err := ic.DB.First(&upload, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Upload not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to load upload")
	}
	if upload.CompanyID != helper.GetCompanyID(c) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Access denied")
	}
	return &upload, nil
}
