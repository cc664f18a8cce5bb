package server

import (
	"net/http"

	"github.com/guangfu250923/relief-backend/repository"
)

type createSupplyItemBody struct {
	SupplyID      string  `json:"supply_id"`
	EditPin       string  `json:"edit_pin"`
	TotalNumber   *int    `json:"total_number"`
	ReceivedCount *int    `json:"received_count"`
	Tag           string  `json:"tag"`
	Name          *string `json:"name"`
	Unit          *string `json:"unit"`
}

func (ws *WebServer) handleCreateSupplyItem(w http.ResponseWriter, r *http.Request) {
	var body createSupplyItemBody
	if err := decodeJSON(r, &body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	in := repository.SupplyItemCreate{
		SupplyID: body.SupplyID,
		Tag:      body.Tag,
		Name:     body.Name,
		Unit:     body.Unit,
	}
	if body.TotalNumber != nil {
		in.TotalNumber = *body.TotalNumber
	}
	if body.ReceivedCount != nil {
		in.ReceivedCount = *body.ReceivedCount
	}

	item, repoErr := ws.repository.CreateSupplyItem(body.EditPin, in)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (ws *WebServer) handleGetSupplyItem(w http.ResponseWriter, r *http.Request) {
	item, repoErr := ws.repository.GetSupplyItem(r.PathValue("id"))
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (ws *WebServer) handleListSupplyItems(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 50, 500)
	q := r.URL.Query()

	items, total, repoErr := ws.repository.ListSupplyItems(q.Get("supply_id"), q.Get("tag"), limit, offset)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, collection{
		Member:     items,
		TotalItems: total,
		Limit:      limit,
		Offset:     offset,
	})
}

type patchSupplyItemBody struct {
	EditPin       string  `json:"edit_pin"`
	TotalNumber   *int    `json:"total_number"`
	ReceivedCount *int    `json:"received_count"`
	Tag           *string `json:"tag"`
	Name          *string `json:"name"`
	Unit          *string `json:"unit"`
}

func (ws *WebServer) handlePatchSupplyItem(w http.ResponseWriter, r *http.Request) {
	var body patchSupplyItemBody
	if err := decodeJSON(r, &body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	item, repoErr := ws.repository.PatchSupplyItem(r.PathValue("id"), body.EditPin, repository.SupplyItemPatch{
		TotalNumber:   body.TotalNumber,
		ReceivedCount: body.ReceivedCount,
		Tag:           body.Tag,
		Name:          body.Name,
		Unit:          body.Unit,
	})
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, item)
}
