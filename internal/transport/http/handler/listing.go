package handler

import (
	"github.com/gin-gonic/gin"

	"petspotter/internal/app"
	"petspotter/internal/transport/http/middleware"
	"petspotter/internal/transport/http/response"
)

type ListingHandler struct {
	listingService *app.ListingService
}

type CreateListingRequest struct {
	Status      string `json:"status" binding:"required,oneof=lost found"`
	PetName     string `json:"petName" binding:"max=128"`
	Species     string `json:"species" binding:"max=64"`
	Sex         string `json:"sex" binding:"max=32"`
	Breed       string `json:"breed" binding:"max=128"`
	Location    string `json:"location" binding:"max=255"`
	Description string `json:"description" binding:"max=4000"`
	Email       string `json:"email" binding:"omitempty,email,max=128"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,url,max=512"`
}

func NewListingHandler(listingService *app.ListingService) *ListingHandler {
	return &ListingHandler{listingService: listingService}
}

func (h *ListingHandler) List(c *gin.Context) {
	listings, err := h.listingService.List(c.Request.Context(), app.ListingFilterParams{
		Status:  c.Query("status"),
		Species: c.Query("species"),
		Lost:    c.Query("lost"),
	})
	if err != nil {
		writeServiceError(c, err, listingNotFound)
		return
	}
	response.OK(c, listings)
}

func (h *ListingHandler) Get(c *gin.Context) {
	listing, err := h.listingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, listingNotFound)
		return
	}
	response.OK(c, listing)
}

func (h *ListingHandler) Create(c *gin.Context) {
	owner, _ := middleware.CurrentUser(c)

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	listing, err := h.listingService.Create(c.Request.Context(), app.CreateListingInput{
		Status:      req.Status,
		PetName:     req.PetName,
		Species:     req.Species,
		Sex:         req.Sex,
		Breed:       req.Breed,
		Location:    req.Location,
		Description: req.Description,
		Email:       req.Email,
		ImageURL:    req.ImageURL,
	}, owner)
	if err != nil {
		writeServiceError(c, err, listingNotFound)
		return
	}
	response.OK(c, listing)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	deleted, err := h.listingService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, listingNotFound)
		return
	}
	response.OK(c, deleted)
}
