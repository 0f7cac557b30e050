package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/packline/packtrace/internal/models"
)

// CreateLineRequest registers a production line
type CreateLineRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateProductRequest registers a product
type CreateProductRequest struct {
	GTIN        string `json:"gtin" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreatePackagingRequest registers a packaging level of a product
type CreatePackagingRequest struct {
	NumberOfProducts int    `json:"numberOfProducts" validate:"required,min=1"`
	GTIN             string `json:"gtin" validate:"required"`
	Name             string `json:"name" validate:"required"`
	Description      string `json:"description"`
}

func (r *Router) listProductionLines(w http.ResponseWriter, req *http.Request) {
	var lines []models.ProductionLine
	if err := r.db.Order("name").Find(&lines).Error; err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lines)
}

func (r *Router) createProductionLine(w http.ResponseWriter, req *http.Request) {
	var lineReq CreateLineRequest
	if err := json.NewDecoder(req.Body).Decode(&lineReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(lineReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	line := models.ProductionLine{Name: lineReq.Name, CreatedAt: time.Now().UTC()}
	if err := r.db.Create(&line).Error; err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, line)
}

func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	var products []models.Product
	if err := r.db.Order("name").Find(&products).Error; err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (r *Router) createProduct(w http.ResponseWriter, req *http.Request) {
	var productReq CreateProductRequest
	if err := json.NewDecoder(req.Body).Decode(&productReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(productReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	product := models.Product{
		GTIN:        productReq.GTIN,
		Name:        productReq.Name,
		Description: productReq.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.db.Create(&product).Error; err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (r *Router) updateProduct(w http.ResponseWriter, req *http.Request) {
	var productReq CreateProductRequest
	if err := json.NewDecoder(req.Body).Decode(&productReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(productReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	productID := pathInt64(req, "id")
	res := r.db.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
		"gtin":        productReq.GTIN,
		"name":        productReq.Name,
		"description": productReq.Description,
	})
	if res.Error != nil {
		respondServiceError(w, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	var product models.Product
	if err := r.db.First(&product, productID).Error; err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (r *Router) deleteProduct(w http.ResponseWriter, req *http.Request) {
	productID := pathInt64(req, "id")
	// packaging levels reference the product and go with it
	if err := r.db.Where("product_id = ?", productID).Delete(&models.ProductPackaging{}).Error; err != nil {
		respondServiceError(w, err)
		return
	}
	res := r.db.Delete(&models.Product{}, productID)
	if res.Error != nil {
		respondServiceError(w, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (r *Router) listPackagings(w http.ResponseWriter, req *http.Request) {
	var packagings []models.ProductPackaging
	err := r.db.
		Where("product_id = ?", pathInt64(req, "id")).
		Order("number_of_products").
		Find(&packagings).Error
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, packagings)
}

func (r *Router) createPackaging(w http.ResponseWriter, req *http.Request) {
	var packReq CreatePackagingRequest
	if err := json.NewDecoder(req.Body).Decode(&packReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(packReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	productID := pathInt64(req, "id")
	var product models.Product
	if err := r.db.First(&product, productID).Error; err != nil {
		respondError(w, http.StatusNotFound, "Product not found")
		return
	}

	packaging := models.ProductPackaging{
		ProductID:        productID,
		NumberOfProducts: packReq.NumberOfProducts,
		GTIN:             packReq.GTIN,
		Name:             packReq.Name,
		Description:      packReq.Description,
		CreatedAt:        time.Now().UTC(),
	}
	if err := r.db.Create(&packaging).Error; err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, packaging)
}

func (r *Router) updatePackaging(w http.ResponseWriter, req *http.Request) {
	var packReq CreatePackagingRequest
	if err := json.NewDecoder(req.Body).Decode(&packReq); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := r.validate.Struct(packReq); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	packID := pathInt64(req, "packId")
	res := r.db.Model(&models.ProductPackaging{}).
		Where("id = ? AND product_id = ?", packID, pathInt64(req, "id")).
		Updates(map[string]interface{}{
			"number_of_products": packReq.NumberOfProducts,
			"gtin":               packReq.GTIN,
			"name":               packReq.Name,
			"description":        packReq.Description,
		})
	if res.Error != nil {
		respondServiceError(w, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Packaging not found")
		return
	}
	var packaging models.ProductPackaging
	if err := r.db.First(&packaging, packID).Error; err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, packaging)
}

func (r *Router) deletePackaging(w http.ResponseWriter, req *http.Request) {
	res := r.db.
		Where("id = ? AND product_id = ?", pathInt64(req, "packId"), pathInt64(req, "id")).
		Delete(&models.ProductPackaging{})
	if res.Error != nil {
		respondServiceError(w, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondError(w, http.StatusNotFound, "Packaging not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
