package service

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"sindiplus_backend/internals/features/uploads/model"
)

// ErrDuplicateRecord marks a unique-constraint violation on insert; the
// batcher counts it as a row error and moves on.
var ErrDuplicateRecord = errors.New("duplicate record")

// Writer persists staged and normalized rows. Each insert is independent:
// a partial failure leaves a partially populated table for that upload,
// which is accepted, not rolled back.
type Writer struct {
	DB *gorm.DB
}

func NewWriter(db *gorm.DB) *Writer {
	return &Writer{DB: db}
}

func (w *Writer) InsertEmployeeRecord(rec *model.EmployeeRecordModel) error {
	if err := w.DB.Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRecord
		}
		return err
	}
	return nil
}

func (w *Writer) InsertStagedRow(row *model.UploadRowModel) error {
	if err := w.DB.Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateRecord
		}
		return err
	}
	return nil
}

// isUniqueViolation recognizes Postgres SQLSTATE 23505 and, as a fallback,
// the sqlite constraint message used by the test databases.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
