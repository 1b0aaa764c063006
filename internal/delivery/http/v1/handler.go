package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/saikiran-1508/chronicle/internal/models"
	"github.com/saikiran-1508/chronicle/internal/prefs"
	"github.com/saikiran-1508/chronicle/internal/services"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleGetNotes(c *gin.Context)
	HandleAddNote(c *gin.Context)

	HandleAIRecommend(c *gin.Context)
	HandleChat(c *gin.Context)

	HandleGetProfile(c *gin.Context)
	HandleUpdateProfile(c *gin.Context)
}

// ReminderManager is the reminder engine as the handlers see it: every task
// mutation funnels through SyncTask or Cancel, never direct scheduling.
type ReminderManager interface {
	SyncTask(task *models.Task)
	Cancel(taskID string)
}

type handlerImpl struct {
	logger    zerolog.Logger
	auth      services.AuthService
	sessions  services.SessionService
	tasks     services.TaskService
	notes     services.NoteService
	profiles  services.ProfileService
	ai        services.AIService
	submit    services.SubmissionService
	reminders ReminderManager
	sounds    *prefs.Store
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	sessionService services.SessionService,
	taskService services.TaskService,
	noteService services.NoteService,
	profileService services.ProfileService,
	aiService services.AIService,
	submissionService services.SubmissionService,
	reminders ReminderManager,
	sounds *prefs.Store,
) Handler {
	return &handlerImpl{
		logger:    logger,
		auth:      authService,
		sessions:  sessionService,
		tasks:     taskService,
		notes:     noteService,
		profiles:  profileService,
		ai:        aiService,
		submit:    submissionService,
		reminders: reminders,
		sounds:    sounds,
	}
}
