package handlers

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/services"
)

// AttachmentHandler handles receipt uploads and downloads.
type AttachmentHandler struct {
	attachmentService services.AttachmentServicer
}

// NewAttachmentHandler creates a new AttachmentHandler.
func NewAttachmentHandler(attachmentService services.AttachmentServicer) *AttachmentHandler {
	return &AttachmentHandler{attachmentService: attachmentService}
}

// UploadAttachment stores a receipt for a transaction
// @Summary     Upload an attachment
// @Tags        attachments
// @Accept      multipart/form-data
// @Produce     json
// @Security    BearerAuth
// @Param       id   path     string true "Transaction ID"
// @Param       file formData file   true "JPEG, PNG or PDF receipt"
// @Success     201 {object} Response{data=models.Attachment} "Attachment stored"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     422 {object} ErrorResponse "Invalid file"
// @Router      /transactions/{id}/attachments [post]
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondWithError(c, apperrors.Field("file", "The file field is required."))
		return
	}
	file, err := header.Open()
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.AddAttachment(userID, c.Param("id"), header.Filename, file)
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Attachment uploaded successfully", attachment)
}

// ListAttachments returns the attachments of a transaction
// @Summary     List attachments
// @Tags        attachments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} Response{data=[]models.Attachment} "Attachments"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id}/attachments [get]
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	attachments, err := h.attachmentService.ListAttachments(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Attachments retrieved successfully", attachments)
}

// DownloadAttachment streams the stored file
// @Summary     Download an attachment
// @Tags        attachments
// @Produce     octet-stream
// @Security    BearerAuth
// @Param       id path string true "Attachment ID"
// @Success     200 {file} file "Attachment content"
// @Failure     404 {object} ErrorResponse "Attachment not found"
// @Router      /attachments/{id} [get]
func (h *AttachmentHandler) DownloadAttachment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	attachment, rc, err := h.attachmentService.OpenAttachment(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer rc.Close()

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": attachment.OriginalName})
	c.DataFromReader(http.StatusOK, attachment.Size, attachment.MimeType, rc, map[string]string{
		"Content-Disposition": disposition,
	})
}

// DeleteAttachment removes an attachment and its file
// @Summary     Delete an attachment
// @Tags        attachments
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Attachment ID"
// @Success     200 {object} Response "Attachment deleted"
// @Failure     404 {object} ErrorResponse "Attachment not found"
// @Router      /attachments/{id} [delete]
func (h *AttachmentHandler) DeleteAttachment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.attachmentService.DeleteAttachment(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, "Attachment deleted successfully", nil)
}
