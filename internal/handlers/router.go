package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/packline/packtrace/internal/auth"
	"github.com/packline/packtrace/internal/buildinfo"
	"github.com/packline/packtrace/internal/config"
	"github.com/packline/packtrace/internal/database"
	"github.com/packline/packtrace/internal/jobs"
	"github.com/packline/packtrace/internal/middleware"
	"github.com/packline/packtrace/internal/packaging"
	ws "github.com/packline/packtrace/internal/websocket"
)

// Router wraps the mux router and the services behind the API
type Router struct {
	*mux.Router
	db       *database.DB
	cfg      *config.Config
	engine   *packaging.Engine
	importer *packaging.Importer
	exporter *packaging.Exporter
	authSvc  *auth.Service
	jobsMgr  *jobs.Manager
	hub      *ws.Hub
	validate *validator.Validate
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(db *database.DB, cfg *config.Config, hub *ws.Hub, jobsMgr *jobs.Manager) *Router {
	r := &Router{
		Router:   mux.NewRouter(),
		db:       db,
		cfg:      cfg,
		engine:   packaging.NewEngine(db),
		importer: packaging.NewImporter(cfg.Database),
		exporter: packaging.NewExporter(db, cfg.Database),
		authSvc:  auth.NewService(db),
		jobsMgr:  jobsMgr,
		hub:      hub,
		validate: validator.New(),
	}

	// Terminals scan endpoint paths from QR codes, which encode more
	// efficiently in uppercase
	r.Use(middleware.CaseInsensitiveMiddleware)

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	authRoutes := r.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/login", r.login).Methods("POST")

	// Progress websocket
	r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWs(hub, w, req)
	})

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Auth(cfg.JWTSecret))

	api.HandleFunc("/stats", r.getStats).Methods("GET")

	// Item routes
	api.HandleFunc("/items", r.listItems).Methods("GET")
	api.HandleFunc("/items/{id:[0-9]+}", r.getItem).Methods("GET")

	// Box routes
	api.HandleFunc("/boxes", r.listBoxes).Methods("GET")
	api.HandleFunc("/boxes/unassigned", r.listUnassignedBoxes).Methods("GET")
	api.HandleFunc("/boxes/{id:[0-9]+}", r.getBox).Methods("GET")
	api.HandleFunc("/boxes/{id:[0-9]+}/items", r.listBoxItems).Methods("GET")
	api.HandleFunc("/boxes/{id:[0-9]+}/items", r.assignItems).Methods("POST")
	api.HandleFunc("/boxes/{id:[0-9]+}/seal", r.sealBox).Methods("POST")

	// Pallet routes
	api.HandleFunc("/pallets", r.listPallets).Methods("GET")
	api.HandleFunc("/pallets/{id:[0-9]+}", r.getPallet).Methods("GET")
	api.HandleFunc("/pallets/{id:[0-9]+}/boxes", r.listPalletBoxes).Methods("GET")
	api.HandleFunc("/pallets/{id:[0-9]+}/boxes", r.assignBoxes).Methods("POST")
	api.HandleFunc("/pallets/{id:[0-9]+}/complete", r.completePallet).Methods("POST")

	// Bulk import (background jobs)
	api.HandleFunc("/import/{kind:items|boxes|pallets}", r.startImport).Methods("POST")

	// Export (background jobs)
	api.HandleFunc("/export/boxes", r.startBoxExport).Methods("POST")
	api.HandleFunc("/export/pallets", r.startPalletExport).Methods("POST")

	// Job polling
	api.HandleFunc("/jobs", r.listJobs).Methods("GET")
	api.HandleFunc("/jobs/{id}", r.getJob).Methods("GET")

	// Export documents
	api.HandleFunc("/documents", r.listDocuments).Methods("GET")
	api.HandleFunc("/documents/{id:[0-9]+}", r.getDocument).Methods("GET")
	api.HandleFunc("/documents/{id:[0-9]+}/xml", r.downloadDocumentXML).Methods("GET")

	// Reference data
	api.HandleFunc("/production-lines", r.listProductionLines).Methods("GET")
	api.HandleFunc("/production-lines", r.createProductionLine).Methods("POST")
	api.HandleFunc("/products", r.listProducts).Methods("GET")
	api.HandleFunc("/products", r.createProduct).Methods("POST")
	api.HandleFunc("/products/{id:[0-9]+}", r.updateProduct).Methods("PUT")
	api.HandleFunc("/products/{id:[0-9]+}", r.deleteProduct).Methods("DELETE")
	api.HandleFunc("/products/{id:[0-9]+}/packagings", r.listPackagings).Methods("GET")
	api.HandleFunc("/products/{id:[0-9]+}/packagings", r.createPackaging).Methods("POST")
	api.HandleFunc("/products/{id:[0-9]+}/packagings/{packId:[0-9]+}", r.updatePackaging).Methods("PUT")
	api.HandleFunc("/products/{id:[0-9]+}/packagings/{packId:[0-9]+}", r.deletePackaging).Methods("DELETE")

	// Label printing
	api.HandleFunc("/labels", r.generateLabels).Methods("POST")

	// Account administration
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/users", r.listUsers).Methods("GET")
	admin.HandleFunc("/users", r.createUser).Methods("POST")
	admin.HandleFunc("/users/{id:[0-9]+}", r.updateUser).Methods("PUT")
	admin.HandleFunc("/users/{id:[0-9]+}", r.deleteUser).Methods("DELETE")
	admin.HandleFunc("/users/{id:[0-9]+}/active", r.setUserActive).Methods("PUT")
	admin.HandleFunc("/users/{id:[0-9]+}/pin", r.setUserPin).Methods("PUT")
	admin.HandleFunc("/users/{id:[0-9]+}/roles", r.assignRole).Methods("POST")
	admin.HandleFunc("/users/{id:[0-9]+}/roles/{roleId:[0-9]+}", r.removeRole).Methods("DELETE")
	admin.HandleFunc("/roles", r.listRoles).Methods("GET")
	admin.HandleFunc("/roles", r.createRole).Methods("POST")
	admin.HandleFunc("/roles/{id:[0-9]+}", r.updateRole).Methods("PUT")
	admin.HandleFunc("/roles/{id:[0-9]+}", r.deleteRole).Methods("DELETE")
	admin.HandleFunc("/roles/{id:[0-9]+}/permissions", r.grantPermission).Methods("POST")
	admin.HandleFunc("/roles/{id:[0-9]+}/permissions/{permId:[0-9]+}", r.revokePermission).Methods("DELETE")
	admin.HandleFunc("/permissions", r.listPermissions).Methods("GET")
	admin.HandleFunc("/permissions", r.createPermission).Methods("POST")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	dbStatus := "ok"
	if err := r.db.Alive(); err != nil {
		dbStatus = "down"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "ok",
		"database":   dbStatus,
		"monitors":   r.hub.ClientCount(),
		"buildTime":  buildinfo.BuildTime,
		"commitHash": buildinfo.CommitHash,
		"startTime":  buildinfo.StartTime,
	})
}

// getStats returns the per-status breakdown, optionally per line
func (r *Router) getStats(w http.ResponseWriter, req *http.Request) {
	lineID := queryInt64(req, "line")
	stats, err := r.engine.Stats(lineID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondServiceError maps service errors onto HTTP statuses
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, packaging.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, packaging.ErrInvalidState), errors.Is(err, packaging.ErrNotEligible):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, packaging.ErrNoRecords), errors.Is(err, packaging.ErrNoTargets):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, packaging.ErrConnectivity), errors.Is(err, database.ErrUnreachable):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
