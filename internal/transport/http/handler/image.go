package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"petspotter/internal/app"
	"petspotter/internal/transport/http/response"
)

const imageFormField = "image"

type ImageHandler struct {
	imageService *app.ImageService
}

type uploadImageResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

func NewImageHandler(imageService *app.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

func (h *ImageHandler) Upload(c *gin.Context) {
	maxBytes := h.imageService.MaxBytes()
	// Multipart framing needs some headroom on top of the file itself.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+64<<10)

	header, err := c.FormFile(imageFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, response.CodeValidation, "Image too large")
			return
		}
		response.ErrorWithFields(c, http.StatusBadRequest, response.CodeValidation, "Validation failed",
			map[string]string{imageFormField: "required"})
		return
	}
	if header.Size > maxBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, response.CodeValidation, "Image too large")
		return
	}

	file, err := header.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Invalid request payload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "Invalid request payload")
		return
	}

	image, err := h.imageService.Upload(c.Request.Context(), app.UploadImageInput{
		Filename: header.Filename,
		Data:     data,
	})
	if err != nil {
		writeServiceError(c, err, imageNotFound)
		return
	}

	response.OK(c, uploadImageResponse{
		ID:       image.ID,
		Name:     image.Name,
		ImageURL: image.ImageURL,
	})
}

func (h *ImageHandler) Get(c *gin.Context) {
	image, err := h.imageService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err, imageNotFound)
		return
	}
	response.OK(c, image)
}
