package handler

import (
	"net/http"

	"github.com/kopdar-dev/kopdar/shared/api"
	"github.com/kopdar-dev/kopdar/shared/domain"
	"github.com/kopdar-dev/kopdar/shared/utils"
)

func (h *Handler) GetThreads(w http.ResponseWriter, r *http.Request) {
	categoryId, err := pathParam(r, "category")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	threads, err := h.thread.List(r.Context(), categoryId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.ThreadsResponse{Threads: threads})
}

func (h *Handler) CreateThread(w http.ResponseWriter, r *http.Request) {
	user, err := requireUser(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	categoryId, err := pathParam(r, "category")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	body, err := decodeBody[api.CreateThreadRequest](w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	thread, err := h.thread.Create(r.Context(), domain.ThreadCreationData{
		Title:      body.Title,
		Content:    body.Content,
		CategoryId: categoryId,
		UserId:     user.Id,
	})
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, thread)
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadId, err := pathParam(r, "thread")
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	detail, err := h.thread.Get(r.Context(), threadId)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, detail)
}
