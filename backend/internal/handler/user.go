package handler

import (
	"net/http"

	"github.com/kopdar-dev/kopdar/shared/api"
	"github.com/kopdar-dev/kopdar/shared/domain"
	"github.com/kopdar-dev/kopdar/shared/utils"
)

// SyncProfile provisions the caller's user row. Token claims are the
// defaults, the body overrides them field by field.
func (h *Handler) SyncProfile(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	identity := domain.Identity{Id: user.Id, DisplayName: user.DisplayName, AvatarUrl: user.AvatarUrl}
	if r.ContentLength != 0 {
		body, err := decodeBody[api.SyncProfileRequest](w, r)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}
		if body.DisplayName != "" {
			identity.DisplayName = body.DisplayName
		}
		if body.AvatarUrl != "" {
			identity.AvatarUrl = body.AvatarUrl
		}
	}

	profile, err := h.user.SyncProfile(r.Context(), identity)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, profile)
}

func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	userId, err := pathParam(r, "user")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	stats, err := h.user.Stats(r.Context(), userId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, stats)
}
