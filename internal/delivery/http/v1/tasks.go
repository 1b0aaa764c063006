package v1

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/saikiran-1508/chronicle/internal/models"
	"github.com/saikiran-1508/chronicle/internal/services"
)

type taskResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
	Overdue         bool      `json:"overdue"`
	StartTime       *string   `json:"startTime"`
	FinishBy        *string   `json:"finishBy"`
	DueDate         *string   `json:"dueDate"`
	ReminderEnabled bool      `json:"reminderEnabled"`
	NotesCount      int       `json:"notesCount"`
	LatestNote      *string   `json:"latestNote"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// newTaskResponse derives the display status at render time; the status a
// client sees may differ from the stored one (overdue, auto in-progress) and
// must never be cached.
func newTaskResponse(task *models.Task, now time.Time) taskResponse {
	status, overdue := task.DisplayAt(now)
	return taskResponse{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		Status:          status,
		Overdue:         overdue,
		StartTime:       task.StartTime,
		FinishBy:        task.FinishBy,
		DueDate:         task.DueDate,
		ReminderEnabled: task.ReminderEnabled,
		NotesCount:      task.NotesCount,
		LatestNote:      task.LatestNote,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
}

type createTaskRequest struct {
	Title           string  `json:"title" binding:"required,max=100"`
	Description     *string `json:"description,omitempty"`
	Status          string  `json:"status,omitempty"`
	StartTime       *string `json:"startTime,omitempty"`
	FinishBy        *string `json:"finishBy,omitempty"`
	StartDate       string  `json:"startDate,omitempty"`
	StartClock      string  `json:"startClock,omitempty"`
	FinishDate      string  `json:"finishDate,omitempty"`
	FinishClock     string  `json:"finishClock,omitempty"`
	ReminderEnabled bool    `json:"reminderEnabled,omitempty"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	params := services.SubmitTaskParams{
		UserID:          userID,
		Title:           req.Title,
		Status:          req.Status,
		StartTime:       req.StartTime,
		FinishBy:        req.FinishBy,
		StartDate:       req.StartDate,
		StartClock:      req.StartClock,
		FinishDate:      req.FinishDate,
		FinishClock:     req.FinishClock,
		ReminderEnabled: req.ReminderEnabled,
	}
	if req.Description != nil {
		params.Description = *req.Description
	}

	task, err := h.submit.Submit(c, params)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to submit task")
		switch {
		case errors.Is(err, services.ErrTitleRequired):
			abort(c, newBadRequestError(services.ErrTitleRequired.Error()))
		case errors.Is(err, services.ErrTitleTooLong):
			abort(c, newBadRequestError(services.ErrTitleTooLong.Error()))
		case errors.Is(err, services.ErrInvalidTaskStatus):
			abort(c, newBadRequestError(services.ErrInvalidTaskStatus.Error()))
		case errors.Is(err, services.ErrInvalidTimestamp):
			abort(c, newBadRequestError(services.ErrInvalidTimestamp.Error()))
		case errors.Is(err, services.ErrSubmissionInFlight):
			abort(c, newTooManyRequestsError(services.ErrSubmissionInFlight.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	c.JSON(http.StatusCreated, newTaskResponse(task, time.Now()))
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.GetTasksByUserID(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to fetch tasks")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	statusFilter := c.Query("status")

	now := time.Now()
	response := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp := newTaskResponse(task, now)
		// The filter applies to the derived status, so an overdue task
		// drops out of its stored-status bucket and "overdue" itself is
		// a valid filter value.
		validFilter := models.ValidStatus(statusFilter) || statusFilter == models.StatusOverdue
		if statusFilter != "" && validFilter && resp.Status != statusFilter {
			continue
		}
		response = append(response, resp)
	}

	c.JSON(http.StatusOK, response)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTaskByID(c, userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to fetch task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, newTaskResponse(task, time.Now()))
}

type updateTaskRequest struct {
	Title           *string `json:"title,omitempty" binding:"omitempty,max=100"`
	Description     *string `json:"description,omitempty"`
	Status          *string `json:"status,omitempty"`
	StartTime       *string `json:"startTime,omitempty"`
	FinishBy        *string `json:"finishBy,omitempty"`
	DueDate         *string `json:"dueDate,omitempty"`
	ReminderEnabled *bool   `json:"reminderEnabled,omitempty"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	task, err := h.tasks.UpdateTask(c, services.UpdateTaskParams{
		ID:              c.Param("id"),
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		StartTime:       req.StartTime,
		FinishBy:        req.FinishBy,
		DueDate:         req.DueDate,
		ReminderEnabled: req.ReminderEnabled,
	})
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to update task")
		switch {
		case errors.Is(err, services.ErrTaskNotFound):
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
		case errors.Is(err, services.ErrTitleRequired):
			abort(c, newBadRequestError("title cannot be empty"))
		case errors.Is(err, services.ErrTitleTooLong):
			abort(c, newBadRequestError(services.ErrTitleTooLong.Error()))
		case errors.Is(err, services.ErrInvalidTaskStatus):
			abort(c, newBadRequestError(services.ErrInvalidTaskStatus.Error()))
		case errors.Is(err, services.ErrInvalidTimestamp):
			abort(c, newBadRequestError(services.ErrInvalidTimestamp.Error()))
		default:
			abort(c, newStatusTextError(http.StatusInternalServerError))
		}
		return
	}

	// Any edit may have moved the start time or flipped the reminder
	// flag; the engine decides whether to replace or cancel.
	h.reminders.SyncTask(task)

	c.JSON(http.StatusOK, newTaskResponse(task, time.Now()))
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	err := h.tasks.DeleteTask(c, userID, taskID)
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			abort(c, newNotFoundError(services.ErrTaskNotFound.Error()))
			return
		}

		h.logger.Error().
			Err(err).
			Msg("failed to delete task")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	h.reminders.Cancel(taskID)

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}
