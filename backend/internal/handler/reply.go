package handler

import (
	"net/http"

	"github.com/kopdar-dev/kopdar/shared/api"
	"github.com/kopdar-dev/kopdar/shared/domain"
	"github.com/kopdar-dev/kopdar/shared/utils"
)

func (h *Handler) CreateReply(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	threadId, err := pathParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	body, err := decodeBody[api.CreateReplyRequest](w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	reply, err := h.reply.Create(r.Context(), domain.ReplyCreationData{
		Content:  body.Content,
		ThreadId: threadId,
		UserId:   user.Id,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, reply)
}
