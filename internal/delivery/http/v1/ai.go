package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saikiran-1508/chronicle/internal/services"
)

func (h *handlerImpl) HandleAIRecommend(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	recommendation, err := h.ai.RecommendForTask(c, userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("ai recommendation failed")
		abort(c, newAPIError(http.StatusInternalServerError, "AI service error: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendation": recommendation})
}

type chatRequest struct {
	Message string                 `json:"message" binding:"required"`
	History []services.ChatMessage `json:"history,omitempty"`
}

func (h *handlerImpl) HandleChat(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	var req chatRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(services.ErrMessageRequired.Error()))
		return
	}

	reply, err := h.ai.Chat(c, services.ChatParams{
		UserID:  userID,
		Message: req.Message,
		History: req.History,
	})
	if err != nil {
		if errors.Is(err, services.ErrMessageRequired) {
			abort(c, newBadRequestError(services.ErrMessageRequired.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("ai chat failed")
		abort(c, newAPIError(http.StatusInternalServerError, "AI service error: "+err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
