package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vipreviews/internal/app/reviews/entity"
	"vipreviews/internal/app/reviews/service"
)

// Лимит размера загружаемого CSV
const maxManifestSize = 10 << 20

type ManifestServiceInterface interface {
	Import(ctx context.Context, name string, reader io.Reader) (*entity.ManifestWithContacts, error)
	List(ctx context.Context) ([]entity.Manifest, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.ManifestWithContacts, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ManifestHandler struct {
	manifestService ManifestServiceInterface
}

func NewManifestHandler(manifestService ManifestServiceInterface) *ManifestHandler {
	return &ManifestHandler{
		manifestService: manifestService,
	}
}

// Upload принимает CSV файл манифеста (multipart поле "file")
func (h *ManifestHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Manifest file is required"})
		return
	}
	if fileHeader.Size > maxManifestSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Manifest file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read manifest file"})
		return
	}
	defer file.Close()

	name := c.PostForm("name")
	if name == "" {
		name = strings.TrimSuffix(fileHeader.Filename, ".csv")
	}

	manifest, err := h.manifestService.Import(c.Request.Context(), name, file)
	if err != nil {
		if errors.Is(err, service.ErrEmptyManifest) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Manifest file contains no contacts"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to import manifest"})
		return
	}

	c.JSON(http.StatusCreated, manifest)
}

// List возвращает все манифесты
func (h *ManifestHandler) List(c *gin.Context) {
	manifests, err := h.manifestService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list manifests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"manifests": manifests,
		"total":     len(manifests),
	})
}

// Get возвращает манифест с контактами
func (h *ManifestHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manifest ID"})
		return
	}

	manifest, err := h.manifestService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrManifestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Manifest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load manifest"})
		return
	}

	c.JSON(http.StatusOK, manifest)
}

// Delete удаляет манифест вместе с контактами и review requests
func (h *ManifestHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid manifest ID"})
		return
	}

	if err := h.manifestService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrManifestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Manifest not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete manifest"})
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Manifest deleted successfully"})
}
