package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/logger"
	"brewbooks/internal/models"
	"brewbooks/internal/storage"
	"brewbooks/internal/uuid"
)

// findOwned loads the row of T with the given id owned by userID. A row
// that is missing, foreign or addressed by a malformed id yields notFound.
func findOwned[T any](db *gorm.DB, userID, id string, notFound *apperrors.AppError) (*T, error) {
	if !uuid.IsValid(id) {
		return nil, notFound
	}
	var row T
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &row, nil
}

// ownsRow reports whether a row of T with id belongs to userID.
func ownsRow[T any](db *gorm.DB, userID, id string) (bool, error) {
	if !uuid.IsValid(id) {
		return false, nil
	}
	var count int64
	if err := db.Model(new(T)).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// countWhere counts rows of T matching query.
func countWhere[T any](db *gorm.DB, query string, args ...any) (int64, error) {
	var count int64
	if err := db.Model(new(T)).Where(query, args...).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}

// deleteTransactionRows removes the transactions with ids and their
// attachment rows, returning the attachment paths to clean up once the
// surrounding unit of work commits.
func deleteTransactionRows(tx *gorm.DB, ids []string) ([]string, error) {
	var paths []string
	if err := tx.Model(&models.Attachment{}).
		Where("transaction_id IN ?", ids).
		Pluck("path", &paths).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := tx.Where("transaction_id IN ?", ids).Delete(&models.Attachment{}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := tx.Where("id IN ?", ids).Delete(&models.Transaction{}).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return paths, nil
}

// removeFiles deletes stored files after their rows are gone. Failures are
// logged, not returned.
func removeFiles(store storage.FileStore, paths []string) {
	if store == nil {
		return
	}
	for _, p := range paths {
		if err := store.Delete(p); err != nil {
			logger.Get().Warnw("failed to remove attachment file", "path", p, "error", err)
		}
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern for LIKE ... ESCAPE '\'.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}
