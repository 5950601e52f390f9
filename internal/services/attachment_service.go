package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"gorm.io/gorm"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/models"
	"brewbooks/internal/storage"
	"brewbooks/internal/uuid"
)

// allowedMimeTypes lists the receipt formats accepted as attachments.
var allowedMimeTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// attachmentService stores receipt files for transactions.
type attachmentService struct {
	db       *gorm.DB
	store    storage.FileStore
	maxBytes int64
}

// NewAttachmentService creates a new AttachmentServicer. Files larger than
// maxBytes are rejected.
func NewAttachmentService(db *gorm.DB, store storage.FileStore, maxBytes int64) AttachmentServicer {
	return &attachmentService{db: db, store: store, maxBytes: maxBytes}
}

// AddAttachment stores r for an owned transaction after checking its size
// and sniffed content type.
func (s *attachmentService) AddAttachment(userID, transactionID, originalName string, r io.Reader) (*models.Attachment, error) {
	transaction, err := findOwned[models.Transaction](s.db, userID, transactionID, apperrors.ErrTransactionNotFound)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(data) == 0 {
		return nil, apperrors.Field("file", "The file field is required.")
	}
	if int64(len(data)) > s.maxBytes {
		return nil, apperrors.Field("file", fmt.Sprintf("The file field must not be greater than %d kilobytes.", s.maxBytes/1024))
	}

	mtype := mimetype.Detect(data)
	mimeName := strings.SplitN(mtype.String(), ";", 2)[0]
	if !allowedMimeTypes[mimeName] {
		return nil, apperrors.Field("file", "The file field must be a file of type: jpg, jpeg, png, pdf.")
	}

	id := uuid.New()
	filename := id + mtype.Extension()
	attachment := &models.Attachment{
		Base:          models.Base{ID: id},
		TransactionID: transaction.ID,
		Filename:      filename,
		OriginalName:  cleanOriginalName(originalName, filename),
		Path:          filepath.ToSlash(filepath.Join(transaction.ID, filename)),
		Size:          int64(len(data)),
		MimeType:      mimeName,
	}

	if _, err := s.store.Save(attachment.Path, bytes.NewReader(data)); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Create(attachment).Error; err != nil {
		removeFiles(s.store, []string{attachment.Path})
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return attachment, nil
}

// ListAttachments returns the attachments of an owned transaction.
func (s *attachmentService) ListAttachments(userID, transactionID string) ([]models.Attachment, error) {
	if _, err := findOwned[models.Transaction](s.db, userID, transactionID, apperrors.ErrTransactionNotFound); err != nil {
		return nil, err
	}

	attachments := []models.Attachment{}
	if err := s.db.Where("transaction_id = ?", transactionID).
		Order("created_at ASC").Find(&attachments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return attachments, nil
}

// OpenAttachment returns the metadata and content of an owned attachment.
// The caller closes the reader.
func (s *attachmentService) OpenAttachment(userID, attachmentID string) (*models.Attachment, io.ReadCloser, error) {
	attachment, err := s.findOwnedAttachment(s.db, userID, attachmentID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.store.Open(attachment.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotExist) {
			return nil, nil, apperrors.ErrAttachmentNotFound
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return attachment, rc, nil
}

// DeleteAttachment removes an owned attachment row and then its file.
func (s *attachmentService) DeleteAttachment(userID, attachmentID string) error {
	attachment, err := s.findOwnedAttachment(s.db, userID, attachmentID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(attachment).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	removeFiles(s.store, []string{attachment.Path})
	return nil
}

// findOwnedAttachment resolves an attachment through its transaction's owner.
func (s *attachmentService) findOwnedAttachment(db *gorm.DB, userID, attachmentID string) (*models.Attachment, error) {
	if !uuid.IsValid(attachmentID) {
		return nil, apperrors.ErrAttachmentNotFound
	}

	var attachment models.Attachment
	err := db.Joins("JOIN transactions ON transactions.id = attachments.transaction_id").
		Where("attachments.id = ? AND transactions.user_id = ?", attachmentID, userID).
		First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAttachmentNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &attachment, nil
}

func cleanOriginalName(name, fallback string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == "" {
		return fallback
	}
	if len(name) > 255 {
		name = name[:255]
	}
	return name
}
