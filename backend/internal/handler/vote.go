package handler

import (
	"net/http"

	"github.com/kopdar-dev/kopdar/shared/api"
	"github.com/kopdar-dev/kopdar/shared/domain"
	"github.com/kopdar-dev/kopdar/shared/utils"
)

func (h *Handler) CastThreadVote(w http.ResponseWriter, r *http.Request) {
	h.castVote(w, r, "thread", domain.ThreadTarget)
}

func (h *Handler) GetThreadVote(w http.ResponseWriter, r *http.Request) {
	h.getVote(w, r, "thread", domain.ThreadTarget)
}

func (h *Handler) CastReplyVote(w http.ResponseWriter, r *http.Request) {
	h.castVote(w, r, "reply", domain.ReplyTarget)
}

func (h *Handler) GetReplyVote(w http.ResponseWriter, r *http.Request) {
	h.getVote(w, r, "reply", domain.ReplyTarget)
}

func (h *Handler) castVote(w http.ResponseWriter, r *http.Request, param string, target func(string) domain.Target) {
	user, err := requireUser(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	id, err := pathParam(r, param)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	body, err := decodeBody[api.CastVoteRequest](w, r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	outcome, err := h.vote.Cast(r.Context(), user.Id, body.Kind, target(id))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.VoteResponse{Vote: outcome.Vote, AuthorExp: outcome.AuthorExp})
}

func (h *Handler) getVote(w http.ResponseWriter, r *http.Request, param string, target func(string) domain.Target) {
	user, err := requireUser(r)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	id, err := pathParam(r, param)
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}

	kind, err := h.vote.Get(r.Context(), user.Id, target(id))
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.VoteResponse{Vote: kind})
}
