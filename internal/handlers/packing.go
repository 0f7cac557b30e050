package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/packline/packtrace/internal/models"
)

// AssignItemsRequest carries the item ids to put into a box
type AssignItemsRequest struct {
	ItemIDs []int64 `json:"itemIds" validate:"required,min=1"`
}

// AssignBoxesRequest carries the box ids to place on a pallet
type AssignBoxesRequest struct {
	BoxIDs []int64 `json:"boxIds" validate:"required,min=1"`
}

func (r *Router) listItems(w http.ResponseWriter, req *http.Request) {
	status := models.ItemStatus(queryInt(req, "status", int(models.ItemAvailable)))
	lineID := queryInt(req, "line", 0)
	limit := queryInt(req, "limit", 100)

	items, err := r.engine.ItemsByStatus(status, int64(lineID), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

func (r *Router) getItem(w http.ResponseWriter, req *http.Request) {
	item, err := r.engine.GetItem(pathInt64(req, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (r *Router) listBoxes(w http.ResponseWriter, req *http.Request) {
	status := models.BoxStatus(queryInt(req, "status", int(models.BoxEmpty)))
	lineID := queryInt(req, "line", 0)
	limit := queryInt(req, "limit", 100)

	boxes, err := r.engine.BoxesByStatus(status, int64(lineID), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, boxes)
}

// listUnassignedBoxes returns sealed boxes not yet placed on any pallet
func (r *Router) listUnassignedBoxes(w http.ResponseWriter, req *http.Request) {
	lineID := queryInt(req, "line", 0)
	limit := queryInt(req, "limit", 100)

	boxes, err := r.engine.SealedBoxesNotOnPallet(int64(lineID), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	total, err := r.engine.SealedBoxNotOnPalletCount(int64(lineID))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"boxes": boxes,
		"total": total,
	})
}

func (r *Router) getBox(w http.ResponseWriter, req *http.Request) {
	id := pathInt64(req, "id")
	box, err := r.engine.GetBox(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	count, err := r.engine.BoxItemCount(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"box":       box,
		"itemCount": count,
	})
}

func (r *Router) listBoxItems(w http.ResponseWriter, req *http.Request) {
	items, err := r.engine.ItemsInBox(pathInt64(req, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// assignItems puts a batch of items into a box. Items are assigned one
// by one; the response reports how many made it.
func (r *Router) assignItems(w http.ResponseWriter, req *http.Request) {
	var assignReq AssignItemsRequest
	if err := json.NewDecoder(req.Body).Decode(&assignReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(assignReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	boxID := pathInt64(req, "id")
	assigned := r.engine.AssignItemsToBox(assignReq.ItemIDs, boxID)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"boxId":     boxID,
		"requested": len(assignReq.ItemIDs),
		"assigned":  assigned,
	})
}

func (r *Router) sealBox(w http.ResponseWriter, req *http.Request) {
	id := pathInt64(req, "id")
	if err := r.engine.SealBox(id); err != nil {
		respondServiceError(w, err)
		return
	}

	box, err := r.engine.GetBox(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, box)
}

func (r *Router) listPallets(w http.ResponseWriter, req *http.Request) {
	status := models.PalletStatus(queryInt(req, "status", int(models.PalletNew)))
	lineID := queryInt(req, "line", 0)
	limit := queryInt(req, "limit", 100)

	pallets, err := r.engine.PalletsByStatus(status, int64(lineID), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pallets)
}

func (r *Router) getPallet(w http.ResponseWriter, req *http.Request) {
	id := pathInt64(req, "id")
	pallet, err := r.engine.GetPallet(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	count, err := r.engine.PalletBoxCount(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"pallet":   pallet,
		"boxCount": count,
	})
}

func (r *Router) listPalletBoxes(w http.ResponseWriter, req *http.Request) {
	boxes, err := r.engine.BoxesOnPallet(pathInt64(req, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, boxes)
}

// assignBoxes places sealed boxes on a pallet one by one
func (r *Router) assignBoxes(w http.ResponseWriter, req *http.Request) {
	var assignReq AssignBoxesRequest
	if err := json.NewDecoder(req.Body).Decode(&assignReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(assignReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	palletID := pathInt64(req, "id")
	assigned := 0
	for _, boxID := range assignReq.BoxIDs {
		if err := r.engine.AssignBoxToPallet(boxID, palletID); err == nil {
			assigned++
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"palletId":  palletID,
		"requested": len(assignReq.BoxIDs),
		"assigned":  assigned,
	})
}

func (r *Router) completePallet(w http.ResponseWriter, req *http.Request) {
	id := pathInt64(req, "id")
	if err := r.engine.CompletePallet(id); err != nil {
		respondServiceError(w, err)
		return
	}

	pallet, err := r.engine.GetPallet(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pallet)
}
