package server

import (
	"net/http"

	"github.com/guangfu250923/relief-backend/repository"
	"github.com/guangfu250923/relief-backend/repository/models"
)

type supplyItemBody struct {
	TotalNumber   *int    `json:"total_number"`
	ReceivedCount *int    `json:"received_count"`
	Tag           string  `json:"tag"`
	Name          *string `json:"name"`
	Unit          *string `json:"unit"`
}

type createSupplyBody struct {
	Name     *string          `json:"name"`
	Address  *string          `json:"address"`
	Phone    *string          `json:"phone"`
	Notes    *string          `json:"notes"`
	Supplies []supplyItemBody `json:"supplies"`
}

// supplyWithPin is the creation response: the only read that ever exposes
// the edit PIN.
type supplyWithPin struct {
	*models.Supply
	EditPin string `json:"edit_pin"`
}

func (ws *WebServer) handleCreateSupply(w http.ResponseWriter, r *http.Request) {
	var body createSupplyBody
	if err := decodeJSON(r, &body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	items := make([]repository.SupplyItemSpec, 0, len(body.Supplies))
	for _, it := range body.Supplies {
		spec := repository.SupplyItemSpec{
			Tag:  it.Tag,
			Name: it.Name,
			Unit: it.Unit,
		}
		if it.TotalNumber != nil {
			spec.TotalNumber = *it.TotalNumber
		}
		if it.ReceivedCount != nil {
			spec.ReceivedCount = *it.ReceivedCount
		}
		items = append(items, spec)
	}

	supply, repoErr := ws.repository.CreateSupplyWithItems(repository.SupplyHeader{
		Name:    body.Name,
		Address: body.Address,
		Phone:   body.Phone,
		Notes:   body.Notes,
	}, items)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}

	ws.logger.Info("supply created", "supply_id", supply.ID, "items", len(supply.Items))

	pin := ""
	if supply.EditPin != nil {
		pin = *supply.EditPin
	}
	writeJSON(w, http.StatusCreated, supplyWithPin{Supply: supply, EditPin: pin})
}

func (ws *WebServer) handleGetSupply(w http.ResponseWriter, r *http.Request) {
	supply, repoErr := ws.repository.GetSupply(r.PathValue("id"))
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, supply)
}

func (ws *WebServer) handleListSupplies(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r, 50, 500)
	showFulfilled := r.URL.Query().Get("show_fulfilled") == "true"

	supplies, total, repoErr := ws.repository.ListSupplies(limit, offset, showFulfilled)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, collection{
		Member:     supplies,
		TotalItems: total,
		Limit:      limit,
		Offset:     offset,
	})
}

type patchSupplyBody struct {
	EditPin string  `json:"edit_pin"`
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
}

func (ws *WebServer) handlePatchSupply(w http.ResponseWriter, r *http.Request) {
	var body patchSupplyBody
	if err := decodeJSON(r, &body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	supply, repoErr := ws.repository.PatchSupply(r.PathValue("id"), body.EditPin, repository.SupplyPatch{
		Name:    body.Name,
		Address: body.Address,
		Phone:   body.Phone,
		Notes:   body.Notes,
	})
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}
	writeJSON(w, http.StatusOK, supply)
}

type distributionEntryBody struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

type distributeSupplyBody struct {
	EditPin string                  `json:"edit_pin"`
	Items   []distributionEntryBody `json:"items"`
}

func (ws *WebServer) handleDistributeSupply(w http.ResponseWriter, r *http.Request) {
	supplyID := r.PathValue("id")

	var body distributeSupplyBody
	if err := decodeJSON(r, &body); err != nil {
		JSONError(w, "Invalid body format: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	batch := make([]repository.DistributionEntry, 0, len(body.Items))
	for _, it := range body.Items {
		batch = append(batch, repository.DistributionEntry{ItemID: it.ID, Count: it.Count})
	}

	updated, repoErr := ws.repository.DistributeSupplyItems(supplyID, body.EditPin, batch)
	if repoErr != nil {
		ws.writeRepoError(w, repoErr)
		return
	}

	ws.logger.Info("distribution applied", "supply_id", supplyID, "items", len(updated))
	writeJSON(w, http.StatusOK, map[string]any{"member": updated})
}
