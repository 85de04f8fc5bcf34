package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/spycce/SmartTrip/models"
	"github.com/spycce/SmartTrip/services"
)

type PhotoService interface {
	Upload(ctx context.Context, in services.UploadInput) (*models.PhotoView, error)
	ListByTrip(ctx context.Context, tripID string) ([]models.PhotoView, error)
	ToggleShare(ctx context.Context, ownerID, photoID string) (bool, error)
	UpdateCaption(ctx context.Context, ownerID, photoID, caption string) (*models.PhotoView, error)
	Delete(ctx context.Context, ownerID, photoID string) error
}

type PhotoController struct {
	photos PhotoService
}

func NewPhotoController(photos PhotoService) *PhotoController {
	return &PhotoController{photos: photos}
}

// UploadPhoto expects multipart form data: "image" (file), "caption", "isShared".
func (ctl *PhotoController) UploadPhoto() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		fileHeader, err := c.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				respondError(c, fmt.Errorf("%w: file too large", models.ErrPayloadTooLarge), "")
			case errors.Is(err, http.ErrMissingFile):
				badRequest(c, "No image uploaded")
			default:
				badRequest(c, "Invalid upload: "+err.Error())
			}
			return
		}
		if fileHeader.Size > models.MaxPhotoBytes {
			respondError(c, fmt.Errorf("%w: file too large", models.ErrPayloadTooLarge), "")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, err, "Error uploading photo")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, models.MaxPhotoBytes+1))
		if err != nil {
			respondError(c, err, "Error uploading photo")
			return
		}

		photo, err := ctl.photos.Upload(ctx, services.UploadInput{
			OwnerID:     userID(c),
			TripID:      c.Param("id"),
			Image:       data,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Caption:     c.PostForm("caption"),
			IsShared:    c.PostForm("isShared") == "true",
		})
		if err != nil {
			respondError(c, err, "Error uploading photo")
			return
		}
		c.JSON(http.StatusCreated, photo)
	}
}

func (ctl *PhotoController) GetTripPhotos() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		photos, err := ctl.photos.ListByTrip(ctx, c.Param("id"))
		if err != nil {
			respondError(c, err, "Error fetching photos")
			return
		}
		c.JSON(http.StatusOK, photos)
	}
}

func (ctl *PhotoController) ToggleShare() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		shared, err := ctl.photos.ToggleShare(ctx, userID(c), c.Param("id"))
		if err != nil {
			respondError(c, err, "Error updating photo share status")
			return
		}
		c.JSON(http.StatusOK, models.ShareStatus{IsShared: shared})
	}
}

func (ctl *PhotoController) UpdateCaption() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		var body struct {
			Caption string `json:"caption"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, "Invalid request body: "+err.Error())
			return
		}

		photo, err := ctl.photos.UpdateCaption(ctx, userID(c), c.Param("id"), body.Caption)
		if err != nil {
			respondError(c, err, "Error updating caption")
			return
		}
		c.JSON(http.StatusOK, photo)
	}
}

func (ctl *PhotoController) DeletePhoto() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
		defer cancel()

		if err := ctl.photos.Delete(ctx, userID(c), c.Param("id")); err != nil {
			respondError(c, err, "Error deleting photo")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
	}
}
