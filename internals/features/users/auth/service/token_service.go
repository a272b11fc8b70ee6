package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sindiplus_backend/internals/configs"
	authModel "sindiplus_backend/internals/features/users/auth/model"
	companyModel "sindiplus_backend/internals/features/companies/company/model"
	userModel "sindiplus_backend/internals/features/users/user/model"
)

const (
	AccessTTL  = 24 * time.Hour
	RefreshTTL = 7 * 24 * time.Hour
)

func nowUTC() time.Time { return time.Now().UTC() }

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		return "", errors.New("JWT_SECRET is not set")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		return "", errors.New("JWT_REFRESH_SECRET is not set")
	}
	return secret, nil
}

// TokenPair carries a freshly issued access + refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IssueTokens builds the access claims (identity + tenant scope) and a
// refresh token, storing the refresh hash for rotation.
func IssueTokens(db *gorm.DB, user *userModel.UserModel, company *companyModel.CompanyModel) (*TokenPair, error) {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return nil, err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return nil, err
	}
	now := nowUTC()

	accessClaims := jwt.MapClaims{
		"sub":            user.ID.String(),
		"company_id":     user.CompanyID.String(),
		"company_tax_id": company.TaxID,
		"role":           user.Role,
		"iat":            now.Unix(),
		"exp":            now.Add(AccessTTL).Unix(),
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).SignedString([]byte(jwtSecret))
	if err != nil {
		return nil, err
	}

	refreshClaims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(RefreshTTL).Unix(),
		"jti": uuid.NewString(),
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString([]byte(refreshSecret))
	if err != nil {
		return nil, err
	}

	rec := authModel.RefreshTokenModel{
		UserID:    user.ID,
		Token:     computeRefreshHash(refresh, refreshSecret),
		ExpiresAt: now.Add(RefreshTTL),
	}
	if err := db.Create(&rec).Error; err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// RotateRefreshToken validates a refresh token, deletes its stored hash and
// issues a new pair.
func RotateRefreshToken(db *gorm.DB, rawRefresh string) (*TokenPair, error) {
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return nil, err
	}

	tok, err := jwt.Parse(rawRefresh, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.New("refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("refresh token invalid")
	}

	hash := computeRefreshHash(rawRefresh, refreshSecret)
	var rec authModel.RefreshTokenModel
	if err := db.Where("token = ? AND user_id = ?", hash, userID).First(&rec).Error; err != nil {
		return nil, errors.New("refresh token unknown")
	}

	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, errors.New("user not found")
	}
	if !user.IsActive {
		return nil, errors.New("account disabled")
	}
	var company companyModel.CompanyModel
	if err := db.First(&company, "id = ?", user.CompanyID).Error; err != nil {
		return nil, errors.New("company not found")
	}

	// rotate: the old hash is gone before the new pair exists
	if err := db.Delete(&rec).Error; err != nil {
		return nil, err
	}
	return IssueTokens(db, &user, &company)
}

// RevokeTokens blacklists the access token and drops the refresh hash.
func RevokeTokens(db *gorm.DB, accessToken, rawRefresh string) error {
	if accessToken != "" {
		bl := authModel.TokenBlacklistModel{
			Token:     accessToken,
			ExpiresAt: nowUTC().Add(AccessTTL),
		}
		if err := db.Create(&bl).Error; err != nil {
			return err
		}
	}
	if rawRefresh != "" {
		if secret, err := getRefreshSecret(); err == nil {
			hash := computeRefreshHash(rawRefresh, secret)
			db.Where("token = ?", hash).Delete(&authModel.RefreshTokenModel{})
		}
	}
	return nil
}

func computeRefreshHash(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
