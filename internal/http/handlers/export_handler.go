package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/propozzals/proposal-backend/internal/http/handlers/common"
	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/pkg/apperror"
	"github.com/propozzals/proposal-backend/internal/service"
	"github.com/propozzals/proposal-backend/internal/storage"
)

// ExportHandler управляет генерацией и скачиванием PDF-экспортов.
type ExportHandler struct {
	exports *service.ExportService
	tokens  *service.TokenManager
	files   *storage.ExportStorage
}

// NewExportHandler создаёт новый хэндлер.
func NewExportHandler(exports *service.ExportService, tokens *service.TokenManager, files *storage.ExportStorage) *ExportHandler {
	return &ExportHandler{exports: exports, tokens: tokens, files: files}
}

type generateRequest struct {
	SessionID  string             `json:"sessionId" binding:"required"`
	TemplateID string             `json:"templateId"`
	Data       models.RawDocument `json:"data"`
}

// Generate обрабатывает POST /api/pdf/generate. Бесплатный экспорт всегда
// с водяным знаком; чистый PDF создаётся только после оплаты.
func (h *ExportHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := common.BindAndValidate(c, &req); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	rec, err := h.exports.Generate(c.Request.Context(), req.SessionID, req.Data, req.TemplateID, true)
	if err != nil {
		_ = c.Error(err)
		return
	}

	token, expiresAt, err := h.tokens.IssueDownloadToken(rec.ID)
	if err != nil {
		_ = c.Error(apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить токен скачивания"))
		return
	}

	common.RespondJSON(c, http.StatusCreated, gin.H{
		"export":       rec,
		"download_url": fmt.Sprintf("/api/exports/%s/download?token=%s", rec.ID, token),
		"expires_at":   expiresAt,
	})
}

// Download обрабатывает GET /api/exports/:id/download?token=...
// Токен привязан к конкретному экспорту и ограничен по времени.
func (h *ExportHandler) Download(c *gin.Context) {
	exportID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondBadRequest(c, "некорректный идентификатор экспорта")
		return
	}

	token := c.Query("token")
	if token == "" {
		common.RespondError(c, http.StatusUnauthorized, "токен скачивания обязателен")
		return
	}

	tokenExportID, err := h.tokens.ParseDownloadToken(token)
	if err != nil || tokenExportID != exportID {
		common.RespondError(c, http.StatusUnauthorized, "невалидный токен скачивания")
		return
	}

	rec, err := h.exports.GetByID(c.Request.Context(), exportID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if rec.Status != models.ExportStatusDone {
		common.RespondError(c, http.StatusConflict, "экспорт ещё не готов")
		return
	}

	f, err := h.files.Open(c.Request.Context(), rec.FilePath)
	if err != nil {
		_ = c.Error(apperror.Wrap(err, apperror.ErrCodeInternal, "файл экспорта недоступен"))
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="proposal-%s.pdf"`, rec.ID))
	c.DataFromReader(http.StatusOK, rec.SizeBytes, "application/pdf", f, nil)
}

// List обрабатывает GET /api/sessions/:sessionId/exports.
func (h *ExportHandler) List(c *gin.Context) {
	sessionID, err := common.SessionID(c)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	limit := common.ParseIntQuery(c, "limit", 20)
	records, err := h.exports.ListBySession(c.Request.Context(), sessionID, limit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, gin.H{"exports": records})
}
