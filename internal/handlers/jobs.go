package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/packline/packtrace/internal/jobs"
	"github.com/packline/packtrace/internal/packaging"
)

// ImportRequest carries a newline-separated barcode list
type ImportRequest struct {
	Content        string `json:"content" validate:"required"`
	ProductionLine int64  `json:"productionLine" validate:"required"`
}

// ExportRequest selects the entities to export
type ExportRequest struct {
	IDs   []int64 `json:"ids" validate:"required,min=1"`
	LpTin string  `json:"lpTin"`
}

// startImport launches a bulk import as a background job and returns
// the job id for polling
func (r *Router) startImport(w http.ResponseWriter, req *http.Request) {
	var importReq ImportRequest
	if err := json.NewDecoder(req.Body).Decode(&importReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(importReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	kind := packaging.ImportKind(mux.Vars(req)["kind"])
	jobID := r.jobsMgr.Start("import:"+string(kind), func(progress jobs.ProgressFunc) (interface{}, error) {
		return r.importer.Run(kind, importReq.Content, importReq.ProductionLine, packaging.ProgressFunc(progress))
	})

	respondJSON(w, http.StatusAccepted, map[string]string{"jobId": jobID})
}

// startBoxExport launches a box export as a background job
func (r *Router) startBoxExport(w http.ResponseWriter, req *http.Request) {
	exportReq, ok := r.decodeExportRequest(w, req)
	if !ok {
		return
	}

	jobID := r.jobsMgr.Start("export:boxes", func(jobs.ProgressFunc) (interface{}, error) {
		return r.exporter.ExportBoxes(exportReq.IDs, exportReq.LpTin)
	})
	respondJSON(w, http.StatusAccepted, map[string]string{"jobId": jobID})
}

// startPalletExport launches a pallet export as a background job
func (r *Router) startPalletExport(w http.ResponseWriter, req *http.Request) {
	exportReq, ok := r.decodeExportRequest(w, req)
	if !ok {
		return
	}

	jobID := r.jobsMgr.Start("export:pallets", func(jobs.ProgressFunc) (interface{}, error) {
		return r.exporter.ExportPallets(exportReq.IDs, exportReq.LpTin)
	})
	respondJSON(w, http.StatusAccepted, map[string]string{"jobId": jobID})
}

func (r *Router) decodeExportRequest(w http.ResponseWriter, req *http.Request) (*ExportRequest, bool) {
	var exportReq ExportRequest
	if err := json.NewDecoder(req.Body).Decode(&exportReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return nil, false
	}
	if err := r.validate.Struct(exportReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if exportReq.LpTin == "" {
		exportReq.LpTin = r.cfg.LpTin
	}
	return &exportReq, true
}

func (r *Router) listJobs(w http.ResponseWriter, req *http.Request) {
	respondJSON(w, http.StatusOK, r.jobsMgr.List())
}

func (r *Router) getJob(w http.ResponseWriter, req *http.Request) {
	snap, ok := r.jobsMgr.Get(mux.Vars(req)["id"])
	if !ok {
		respondError(w, http.StatusNotFound, "Job not found")
		return
	}
	respondJSON(w, http.StatusOK, snap)
}
