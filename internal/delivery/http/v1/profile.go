package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saikiran-1508/chronicle/internal/services"
)

type profileStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
}

type profileResponse struct {
	Name           string        `json:"name"`
	Avatar         string        `json:"avatar"`
	ReminderSound  string        `json:"reminderSound"`
	CustomSoundURI *string       `json:"customSoundUri,omitempty"`
	Stats          *profileStats `json:"stats,omitempty"`
}

func (h *handlerImpl) HandleGetProfile(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetProfile(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to fetch profile")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	stats, err := h.tasks.CountTasksByStatus(c, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to fetch task stats")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.JSON(http.StatusOK, profileResponse{
		Name:           profile.Name,
		Avatar:         profile.Avatar,
		ReminderSound:  h.sounds.SelectedSound(c, userID),
		CustomSoundURI: h.sounds.CustomSoundURI(c, userID),
		Stats: &profileStats{
			Total:      stats.Total,
			Pending:    stats.Pending,
			InProgress: stats.InProgress,
			Completed:  stats.Completed,
		},
	})
}

type updateProfileRequest struct {
	Name           *string `json:"name,omitempty"`
	Avatar         *string `json:"avatar,omitempty"`
	ReminderSound  *string `json:"reminderSound,omitempty"`
	CustomSoundURI *string `json:"customSoundUri,omitempty"`
}

func (h *handlerImpl) HandleUpdateProfile(c *gin.Context) {
	userID, ok := h.mustUserID(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBadRequestError(errInvalidRequestBody.Error()))
		return
	}

	profile, err := h.profiles.UpdateProfile(c, services.UpdateProfileParams{
		UserID: userID,
		Name:   req.Name,
		Avatar: req.Avatar,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to update profile")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	// Sound preferences are best-effort: a failing preference store never
	// fails the profile update.
	if req.ReminderSound != nil {
		h.sounds.SetSelectedSound(c, userID, *req.ReminderSound)
	}
	if req.CustomSoundURI != nil {
		h.sounds.SetCustomSoundURI(c, userID, req.CustomSoundURI)
	}

	c.JSON(http.StatusOK, profileResponse{
		Name:           profile.Name,
		Avatar:         profile.Avatar,
		ReminderSound:  h.sounds.SelectedSound(c, userID),
		CustomSoundURI: h.sounds.CustomSoundURI(c, userID),
	})
}
