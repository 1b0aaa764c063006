package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saikiran-1508/chronicle/internal/models"
	"github.com/saikiran-1508/chronicle/internal/services"
)

type noteResponse struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func newNoteResponse(note *models.Note) noteResponse {
	return noteResponse{
		ID:        note.ID,
		TaskID:    note.TaskID,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}
}

func (h *handlerImpl) HandleGetNotes(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	notes, err := h.notes.GetNotesByTaskID(c, userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to fetch notes")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	response := make([]noteResponse, 0, len(notes))
	for _, note := range notes {
		response = append(response, newNoteResponse(note))
	}

	c.JSON(http.StatusOK, response)
}

type addNoteRequest struct {
	Content      string `json:"content" binding:"required"`
	MarkComplete bool   `json:"markComplete,omitempty"`
}

func (h *handlerImpl) HandleAddNote(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	var req addNoteRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(services.ErrNoteContentRequired.Error()))
		return
	}

	note, completedTask, err := h.notes.AddNote(c, services.AddNoteParams{
		TaskID:       c.Param("id"),
		UserID:       userID,
		Content:      req.Content,
		MarkComplete: req.MarkComplete,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to add note")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrNoteContentRequired):
			abort(c, newBadRequestError(services.ErrNoteContentRequired.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	// A completing note cancels the task's pending reminder.
	if completedTask != nil {
		h.reminders.SyncTask(completedTask)
	}

	c.JSON(http.StatusCreated, newNoteResponse(note))
}
