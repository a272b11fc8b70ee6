package service

import (
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sindiplus_backend/internals/configs"
	companyModel "sindiplus_backend/internals/features/companies/company/model"
	userModel "sindiplus_backend/internals/features/users/user/model"
	helper "sindiplus_backend/internals/helpers"
)

var validate = validator.New()

type registerRequest struct {
	Name      string `json:"name" validate:"required,min=3,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	CompanyID string `json:"company_id" validate:"required,uuid4"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// Register creates a user inside an existing company.
func Register(db *gorm.DB, c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var company companyModel.CompanyModel
	if err := db.First(&company, "id = ?", req.CompanyID).Error; err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Unknown company")
	}
	if !company.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Company is inactive")
	}

	var count int64
	db.Model(&userModel.UserModel{}).Where("email = ?", strings.ToLower(req.Email)).Count(&count)
	if count > 0 {
		return helper.Error(c, fiber.StatusConflict, "Email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		Name:      req.Name,
		Email:     strings.ToLower(req.Email),
		Password:  string(hashed),
		CompanyID: company.ID,
		IsActive:  true,
	}
	user.SetDefaultValues()
	if err := db.Create(&user).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registered", fiber.Map{
		"id":    user.ID,
		"email": user.Email,
	})
}

// Login authenticates by email + password and issues a token pair.
func Login(db *gorm.DB, c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := db.First(&user, "email = ?", strings.ToLower(req.Email)).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Account disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	return issueAndRespond(db, c, &user)
}

// LoginGoogle verifies a Google ID token and signs in the matching user.
// Accounts are not auto-provisioned: the email must already exist.
func LoginGoogle(db *gorm.DB, c *fiber.Ctx) error {
	var req googleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil || claimSet.Email == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid Google token")
	}

	var user userModel.UserModel
	if err := db.First(&user, "email = ?", strings.ToLower(claimSet.Email)).Error; err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "No account for this Google email")
	}
	if !user.IsActive {
		return helper.Error(c, fiber.StatusForbidden, "Account disabled")
	}
	if user.GoogleID == nil || *user.GoogleID == "" {
		if err := db.Model(&user).Update("google_id", claimSet.Sub).Error; err != nil {
			log.Printf("[WARN] link google id: %v", err)
		}
	}

	return issueAndRespond(db, c, &user)
}

// RefreshToken rotates the refresh token from the cookie (or body fallback).
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	raw := helper.GetRefreshTokenFromCookie(c)
	if raw == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		raw = strings.TrimSpace(body.RefreshToken)
	}
	if raw == "" {
		return helper.Error(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	pair, err := RotateRefreshToken(db, raw)
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	setAuthCookies(c, pair)
	return helper.Success(c, "Token refreshed", pair)
}

// Logout blacklists the current access token and invalidates the refresh
// token.
func Logout(db *gorm.DB, c *fiber.Ctx) error {
	access := helper.GetRawAccessToken(c)
	refresh := helper.GetRefreshTokenFromCookie(c)
	if err := RevokeTokens(db, access, refresh); err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to revoke tokens")
	}
	clearAuthCookies(c)
	return helper.Success(c, "Logged out", nil)
}

func issueAndRespond(db *gorm.DB, c *fiber.Ctx, user *userModel.UserModel) error {
	var company companyModel.CompanyModel
	if err := db.First(&company, "id = ?", user.CompanyID).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Company not found")
	}

	pair, err := IssueTokens(db, user, &company)
	if err != nil {
		log.Printf("[ERROR] issue tokens: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to issue tokens")
	}
	setAuthCookies(c, pair)

	return helper.Success(c, "Logged in", fiber.Map{
		"tokens": pair,
		"user": fiber.Map{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"role":       user.Role,
			"company_id": user.CompanyID,
		},
	})
}

func setAuthCookies(c *fiber.Ctx, pair *TokenPair) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    pair.AccessToken,
		Expires:  time.Now().Add(AccessTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    pair.RefreshToken,
		Expires:  time.Now().Add(RefreshTTL),
		HTTPOnly: true,
		Secure:   true,
		SameSite: "Lax",
		Path:     "/api/auth",
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: "access_token", Value: "", Expires: expired, HTTPOnly: true})
	c.Cookie(&fiber.Cookie{Name: "refresh_token", Value: "", Expires: expired, HTTPOnly: true, Path: "/api/auth"})
}
