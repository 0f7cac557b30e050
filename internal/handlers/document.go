package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

func (r *Router) listDocuments(w http.ResponseWriter, req *http.Request) {
	limit := queryInt(req, "limit", 50)
	offset := queryInt(req, "offset", 0)

	docs, err := r.exporter.ListDocuments(limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, docs)
}

func (r *Router) getDocument(w http.ResponseWriter, req *http.Request) {
	id := pathInt64(req, "id")
	doc, err := r.exporter.GetDocument(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	items, boxes, pallets, err := r.exporter.DocumentCounts(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"document": doc,
		"mode":     doc.Mode.String(),
		"items":    items,
		"boxes":    boxes,
		"pallets":  pallets,
		"hasXml":   len(doc.XMLContent) > 0,
	})
}

// downloadDocumentXML serves the stored export XML as a file
func (r *Router) downloadDocumentXML(w http.ResponseWriter, req *http.Request) {
	doc, err := r.exporter.GetDocument(pathInt64(req, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if len(doc.XMLContent) == 0 {
		respondError(w, http.StatusNotFound, "Document has no XML content")
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"export_%d.xml\"", doc.ID))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.XMLContent)))
	w.Write(doc.XMLContent)
}
