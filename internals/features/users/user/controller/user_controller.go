package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/users/user/dto"
	"sindiplus_backend/internals/features/users/user/model"
	helper "sindiplus_backend/internals/helpers"
	"sindiplus_backend/internals/helpers/oss"
)

type UserController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	OSS      *oss.Service // nil when object storage is not configured
}

func NewUserController(db *gorm.DB, ossSvc *oss.Service) *UserController {
	return &UserController{DB: db, Validate: validator.New(), OSS: ossSvc}
}

func (uc *UserController) Me(c *fiber.Ctx) error {
	userID := helper.GetUserID(c)
	if userID == uuid.Nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}
	return helper.Success(c, "OK", dto.ToUserResponse(&user, uc.photoURL(&user)))
}

func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	// non-owner admins can only create users inside their own company
	if !helper.IsOwnerTenant(c) && req.CompanyID != helper.GetCompanyID(c) {
		return helper.Error(c, fiber.StatusForbidden, "Cannot create users for another company")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := model.UserModel{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Role:      req.Role,
		CompanyID: req.CompanyID,
		IsActive:  true,
	}
	user.SetDefaultValues()
	if err := uc.DB.Create(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "User created", dto.ToUserResponse(&user, ""))
}

func (uc *UserController) List(c *fiber.Ctx) error {
	q := uc.DB.Model(&model.UserModel{})
	if !helper.IsOwnerTenant(c) {
		q = q.Where("company_id = ?", helper.GetCompanyID(c))
	}

	paging := helper.ResolvePaging(c, 25, 200)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []model.UserModel
	if err := q.Order("name asc").Offset(paging.Offset).Limit(paging.Limit).Find(&users).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list users")
	}

	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.ToUserResponse(&users[i], uc.photoURL(&users[i])))
	}
	return helper.Success(c, "OK", fiber.Map{
		"users":      out,
		"pagination": helper.BuildPagination(paging, total, len(out)),
	})
}

func (uc *UserController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "User not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load user")
	}
	if !helper.IsOwnerTenant(c) && user.CompanyID != helper.GetCompanyID(c) {
		return helper.Error(c, fiber.StatusForbidden, "Access denied")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := uc.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Nothing to update")
	}
	if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return helper.Success(c, "User updated", nil)
}

// UploadPhoto stores the caller's profile photo in object storage. A storage
// failure is soft: the endpoint reports it, but never corrupts user data.
func (uc *UserController) UploadPhoto(c *fiber.Ctx) error {
	userID := helper.GetUserID(c)
	if userID == uuid.Nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid user ID in context")
	}
	if uc.OSS == nil {
		return helper.Error(c, fiber.StatusServiceUnavailable, "Object storage is not configured")
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Missing photo file")
	}

	var user model.UserModel
	if err := uc.DB.First(&user, "id = ?", userID).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	key, err := uc.OSS.UploadPhotoAsWebP(c.UserContext(), fh, "users/"+user.CompanyID.String())
	if err != nil {
		log.Printf("[ERROR] photo upload: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to store photo")
	}

	oldKey := ""
	if user.PhotoKey != nil {
		oldKey = *user.PhotoKey
	}
	if err := uc.DB.Model(&user).Update("photo_key", key).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to save photo reference")
	}
	if oldKey != "" {
		// best effort cleanup of the previous photo
		if err := uc.OSS.DeleteObject(c.UserContext(), oldKey); err != nil {
			log.Printf("[WARN] old photo delete: %v", err)
		}
	}

	user.PhotoKey = &key
	return helper.Success(c, "Photo updated", fiber.Map{"photo_url": uc.photoURL(&user)})
}

func (uc *UserController) photoURL(u *model.UserModel) string {
	if uc.OSS == nil || u.PhotoKey == nil || *u.PhotoKey == "" {
		return ""
	}
	url, err := uc.OSS.SignedURL(*u.PhotoKey)
	if err != nil {
		log.Printf("[WARN] sign photo url: %v", err)
		return ""
	}
	return url
}
