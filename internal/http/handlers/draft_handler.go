package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/propozzals/proposal-backend/internal/http/handlers/common"
	"github.com/propozzals/proposal-backend/internal/models"
	"github.com/propozzals/proposal-backend/internal/pkg/apperror"
	"github.com/propozzals/proposal-backend/internal/service"
)

// DraftHandler управляет черновиками документа.
type DraftHandler struct {
	drafts *service.DraftService
}

// NewDraftHandler создаёт новый хэндлер.
func NewDraftHandler(drafts *service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

// Get обрабатывает GET /api/drafts/:sessionId.
func (h *DraftHandler) Get(c *gin.Context) {
	sessionID, err := common.SessionID(c)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	envelope, err := h.drafts.Load(c.Request.Context(), sessionID)
	if err != nil {
		if apperror.IsNotFound(err) {
			common.RespondNotFound(c, "черновик не найден")
			return
		}
		_ = c.Error(err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{
		"draft":  envelope,
		"status": h.drafts.Status(sessionID),
	})
}

// Put обрабатывает PUT /api/drafts/:sessionId. Запись откладывается
// дебаунсом, поэтому ответ всегда 202 с текущим статусом.
func (h *DraftHandler) Put(c *gin.Context) {
	sessionID, err := common.SessionID(c)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	var doc models.RawDocument
	if err := common.BindAndValidate(c, &doc); err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	status := h.drafts.Schedule(sessionID, doc)
	common.RespondJSON(c, http.StatusAccepted, gin.H{"status": status})
}

// Delete обрабатывает DELETE /api/drafts/:sessionId.
func (h *DraftHandler) Delete(c *gin.Context) {
	sessionID, err := common.SessionID(c)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.drafts.Delete(c.Request.Context(), sessionID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetBanner обрабатывает GET /api/drafts/:sessionId/banner.
func (h *DraftHandler) GetBanner(c *gin.Context) {
	sessionID, err := common.SessionID(c)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	dismissed, err := h.drafts.IsBannerDismissed(c.Request.Context(), sessionID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	common.RespondJSON(c, http.StatusOK, gin.H{"dismissed": dismissed})
}

// DismissBanner обрабатывает POST /api/drafts/:sessionId/banner/dismiss.
func (h *DraftHandler) DismissBanner(c *gin.Context) {
	sessionID, err := common.SessionID(c)
	if err != nil {
		common.RespondBadRequest(c, err.Error())
		return
	}

	if err := h.drafts.DismissBanner(c.Request.Context(), sessionID); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
