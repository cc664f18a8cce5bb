package server

import (
	"net/http"

	"github.com/guangfu250923/relief-backend/repository"
)

type createShelterBody struct {
	Name             string  `json:"name"`
	Location         string  `json:"location"`
	Phone            string  `json:"phone"`
	Link             *string `json:"link"`
	Status           string  `json:"status"`
	Capacity         *int    `json:"capacity"`
	CurrentOccupancy *int    `json:"current_occupancy"`
	AvailableSpaces  *int    `json:"available_spaces"`
	ContactPerson    *string `json:"contact_person"`
	Notes            *string `json:"notes"`
	OpeningHours     *string `json:"opening_hours"`
}

func (ws *WebServer) handleCreateShelter(w http.ResponseWriter, r *http.Request) {
	var body createShelterBody
	if err := decodeJSON(r, &body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	shelter, repoErr := ws.repository.CreateShelter(repository.ShelterCreate{
		Name:             body.Name,
		Location:         body.Location,
		Phone:            body.Phone,
		Link:             body.Link,
		Status:           body.Status,
		Capacity:         body.Capacity,
		CurrentOccupancy: body.CurrentOccupancy,
		AvailableSpaces:  body.AvailableSpaces,
		ContactPerson:    body.ContactPerson,
		Notes:            body.Notes,
		OpeningHours:     body.OpeningHours,
	})
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusCreated, shelter)
}

func (ws *WebServer) handleGetShelter(w http.ResponseWriter, r *http.Request) {
	shelter, repoErr := ws.repository.GetShelter(r.PathValue("id"))
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, shelter)
}

func (ws *WebServer) handleListShelters(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 50, 500)

	shelters, total, repoErr := ws.repository.ListShelters(r.URL.Query().Get("status"), limit, offset)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, collection{
		Member:     shelters,
		TotalItems: total,
		Limit:      limit,
		Offset:     offset,
	})
}

type patchShelterBody struct {
	Name             *string `json:"name"`
	Location         *string `json:"location"`
	Phone            *string `json:"phone"`
	Link             *string `json:"link"`
	Status           *string `json:"status"`
	Capacity         *int    `json:"capacity"`
	CurrentOccupancy *int    `json:"current_occupancy"`
	AvailableSpaces  *int    `json:"available_spaces"`
	ContactPerson    *string `json:"contact_person"`
	Notes            *string `json:"notes"`
	OpeningHours     *string `json:"opening_hours"`
}

func (ws *WebServer) handlePatchShelter(w http.ResponseWriter, r *http.Request) {
	var body patchShelterBody
	if err := decodeJSON(r, &body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	shelter, repoErr := ws.repository.PatchShelter(r.PathValue("id"), repository.ShelterPatch{
		Name:             body.Name,
		Location:         body.Location,
		Phone:            body.Phone,
		Link:             body.Link,
		Status:           body.Status,
		Capacity:         body.Capacity,
		CurrentOccupancy: body.CurrentOccupancy,
		AvailableSpaces:  body.AvailableSpaces,
		ContactPerson:    body.ContactPerson,
		Notes:            body.Notes,
		OpeningHours:     body.OpeningHours,
	})
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, shelter)
}
