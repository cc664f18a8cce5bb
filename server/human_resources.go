package server

import (
	"net/http"

	"github.com/guangfu250923/relief-backend/repository"
	"github.com/guangfu250923/relief-backend/repository/models"
)

type createHumanResourceBody struct {
	Org           string  `json:"org"`
	Address       string  `json:"address"`
	Phone         *string `json:"phone"`
	RoleName      string  `json:"role_name"`
	RoleType      string  `json:"role_type"`
	HeadcountNeed *int    `json:"headcount_need"`
	HeadcountGot  *int    `json:"headcount_got"`
	Notes         *string `json:"notes"`
}

type humanResourceWithPin struct {
	*models.HumanResource
	EditPin string `json:"edit_pin"`
}

func (ws *WebServer) handleCreateHumanResource(w http.ResponseWriter, r *http.Request) {
	var body createHumanResourceBody
	if err := decodeJSON(r, &body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	in := repository.HumanResourceCreate{
		Org:      body.Org,
		Address:  body.Address,
		Phone:    body.Phone,
		RoleName: body.RoleName,
		RoleType: body.RoleType,
		Notes:    body.Notes,
	}
	if body.HeadcountNeed != nil {
		in.HeadcountNeed = *body.HeadcountNeed
	}
	if body.HeadcountGot != nil {
		in.HeadcountGot = *body.HeadcountGot
	}

	hr, repoErr := ws.repository.CreateHumanResource(in)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}

	pin := ""
	if hr.EditPin != nil {
		pin = *hr.EditPin
	}
	writeJSON(w, http.StatusCreated, humanResourceWithPin{HumanResource: hr, EditPin: pin})
}

func (ws *WebServer) handleGetHumanResource(w http.ResponseWriter, r *http.Request) {
	hr, repoErr := ws.repository.GetHumanResource(r.PathValue("id"))
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, hr)
}

func (ws *WebServer) handleListHumanResources(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 50, 500)
	q := r.URL.Query()

	hrs, total, repoErr := ws.repository.ListHumanResources(repository.HumanResourceFilter{
		Status:     q.Get("status"),
		RoleStatus: q.Get("role_status"),
		RoleType:   q.Get("role_type"),
	}, limit, offset)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, collection{
		Member:     hrs,
		TotalItems: total,
		Limit:      limit,
		Offset:     offset,
	})
}

type patchHumanResourceBody struct {
	EditPin       string  `json:"edit_pin"`
	Org           *string `json:"org"`
	Address       *string `json:"address"`
	Phone         *string `json:"phone"`
	Status        *string `json:"status"`
	RoleName      *string `json:"role_name"`
	RoleType      *string `json:"role_type"`
	RoleStatus    *string `json:"role_status"`
	HeadcountNeed *int    `json:"headcount_need"`
	HeadcountGot  *int    `json:"headcount_got"`
	Notes         *string `json:"notes"`
}

func (ws *WebServer) handlePatchHumanResource(w http.ResponseWriter, r *http.Request) {
	var body patchHumanResourceBody
	if err := decodeJSON(r, &body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	hr, repoErr := ws.repository.PatchHumanResource(r.PathValue("id"), body.EditPin, repository.HumanResourcePatch{
		Org:           body.Org,
		Address:       body.Address,
		Phone:         body.Phone,
		Status:        body.Status,
		RoleName:      body.RoleName,
		RoleType:      body.RoleType,
		RoleStatus:    body.RoleStatus,
		HeadcountNeed: body.HeadcountNeed,
		HeadcountGot:  body.HeadcountGot,
		Notes:         body.Notes,
	})
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, hr)
}
