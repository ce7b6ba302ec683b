package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/Precipitate-AI/epic/internal/domain"
	"github.com/Precipitate-AI/epic/internal/repository"
	"github.com/go-chi/chi/v5"
)

type CatalogService interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
}

type ProductHandler struct {
	catalog CatalogService
	timeout time.Duration
}

func NewProductHandler(catalog CatalogService, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		timeout: timeout,
	}
}

type VariantDTO struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ProductResponseDTO struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       int64        `json:"price"`
	Images      []string     `json:"images"`
	Category    string       `json:"category"`
	Variants    []VariantDTO `json:"variants"`
}

type ProductsResponseDTO struct {
	Products []ProductResponseDTO `json:"products"`
}

// GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.catalog.List(ctx)
	if err != nil {
		log.Printf("request %s: list products error: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	dtos := make([]ProductResponseDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, convertProduct(p))
	}

	respondJSON(w, http.StatusOK, &ProductsResponseDTO{Products: dtos})
}

// GET /api/v1/products/{slug}
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		respondError(w, http.StatusBadRequest, "missing_slug", "slug is required")
		return
	}

	product, err := h.catalog.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("request %s: get product error: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, convertProduct(product))
}

func convertProduct(p *domain.Product) ProductResponseDTO {
	variants := make([]VariantDTO, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, VariantDTO{Name: v.Name, Value: v.Value})
	}

	images := p.Images
	if images == nil {
		images = make([]string, 0)
	}

	return ProductResponseDTO{
		ID:          p.ID,
		Slug:        p.Slug,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      images,
		Category:    p.Category,
		Variants:    variants,
	}
}
