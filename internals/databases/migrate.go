package database

import (
	"gorm.io/gorm"

	companyModel "sindiplus_backend/internals/features/companies/company/model"
	uploadModel "sindiplus_backend/internals/features/uploads/model"
	authModel "sindiplus_backend/internals/features/users/auth/model"
	userModel "sindiplus_backend/internals/features/users/user/model"
)

// MigrateAll runs gorm AutoMigrate over every table in dependency order.
func MigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&companyModel.CompanyModel{},
		&userModel.UserModel{},
		&authModel.TokenBlacklistModel{},
		&authModel.RefreshTokenModel{},
		&uploadModel.UploadModel{},
		&uploadModel.UploadRowModel{},
		&uploadModel.EmployeeRecordModel{},
	)
}
