package handler

import (
	"net/http"

	"github.com/kopdar-dev/kopdar/shared/api"
	"github.com/kopdar-dev/kopdar/shared/utils"
)

func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.category.List(r.Context())
	if err != nil {
		utils.WriteErrorAndStatusCode(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, api.CategoriesResponse{Categories: categories})
}
