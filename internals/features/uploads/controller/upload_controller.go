package controller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sindiplus_backend/internals/configs"
	"sindiplus_backend/internals/constants"
	"sindiplus_backend/internals/features/uploads/dto"
	"sindiplus_backend/internals/features/uploads/model"
	"sindiplus_backend/internals/features/uploads/service"
	helper "sindiplus_backend/internals/helpers"
	"sindiplus_backend/internals/helpers/cache"
)

type UploadController struct {
	DB     *gorm.DB
	Ingest *service.IngestService
}

func NewUploadController(db *gorm.DB, cacheSvc *cache.Service) *UploadController {
	return &UploadController{
		DB:     db,
		Ingest: service.NewIngestService(db, cacheSvc),
	}
}

// Create accepts the multipart spreadsheet, registers the upload and answers
// 202 immediately; the pipeline runs in the background.
func (uc *UploadController) Create(c *fiber.Ctx) error {
	companyID := helper.GetCompanyID(c)
	userID := helper.GetUserID(c)
	if companyID == uuid.Nil || userID == uuid.Nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Missing tenant context")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Missing file field")
	}

	if fh.Size > configs.MaxUploadBytes() {
		return helper.Error(c, fiber.StatusBadRequest,
			fmt.Sprintf("File too large (max %d bytes)", configs.MaxUploadBytes()))
	}

	mimeType := strings.TrimSpace(strings.Split(fh.Header.Get("Content-Type"), ";")[0])
	if _, ok := constants.AllowedUploadMimeTypes[mimeType]; !ok {
		return helper.Error(c, fiber.StatusBadRequest, "File type not allowed (xlsx, xls or csv)")
	}
	if constants.DetectSheetKind(fh.Filename) == constants.SheetKindUnknown {
		return helper.Error(c, fiber.StatusBadRequest, "Unrecognized file extension (xlsx, xls or csv)")
	}

	f, err := fh.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to open uploaded file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to read uploaded file")
	}

	upload := model.UploadModel{
		FileName:  fh.Filename,
		FileSize:  fh.Size,
		MimeType:  mimeType,
		Status:    constants.UploadStatusPending,
		CompanyID: companyID,
		UserID:    userID,
	}
	if err := uc.DB.Create(&upload).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to register upload")
	}

	go func(u model.UploadModel, buf []byte) {
		if err := uc.Ingest.ProcessUpload(context.Background(), &u, buf); err != nil {
			log.Printf("[ERROR] background ingestion %s: %v", u.ID, err)
		}
	}(upload, data)

	return helper.SuccessWithCode(c, fiber.StatusAccepted, "Upload accepted", fiber.Map{
		"upload_id": upload.ID,
		"status":    upload.Status,
	})
}

func (uc *UploadController) List(c *fiber.Ctx) error {
	q := uc.DB.Model(&model.UploadModel{}).Where("company_id = ?", helper.GetCompanyID(c))

	paging := helper.ResolvePaging(c, 25, 200)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count uploads")
	}

	var uploads []model.UploadModel
	if err := q.Order("created_at desc").Offset(paging.Offset).Limit(paging.Limit).Find(&uploads).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list uploads")
	}

	out := make([]dto.UploadResponse, 0, len(uploads))
	for i := range uploads {
		out = append(out, dto.ToUploadResponse(&uploads[i]))
	}
	return helper.Success(c, "OK", fiber.Map{
		"uploads":    out,
		"pagination": helper.BuildPagination(paging, total, len(out)),
	})
}

func (uc *UploadController) GetByID(c *fiber.Ctx) error {
	upload, err := uc.loadScoped(c)
	if err != nil {
		return err
	}
	return helper.Success(c, "OK", dto.ToUploadResponse(upload))
}

// loadScoped fetches the upload and enforces tenant ownership. The returned
// error is a fiber error ready to bubble up to the error handler.
func (uc *UploadController) loadScoped(c *fiber.Ctx) (*model.UploadModel, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid upload id")
	}

	var upload model.UploadModel
	if err := uc.DB.First(&upload, "id = ?", id).Error; err != nil {
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
