package handler

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"artifex/internal/domain/entity"
	"artifex/internal/infrastructure/storage"
	"artifex/internal/usecase"
	"artifex/pkg/errors"
	"artifex/pkg/response"
	"artifex/pkg/utils"
)

type ArtworkHandler struct {
	artworkUseCase *usecase.ArtworkUseCase
}

func NewArtworkHandler(artworkUseCase *usecase.ArtworkUseCase) *ArtworkHandler {
	return &ArtworkHandler{
		artworkUseCase: artworkUseCase,
	}
}

type createArtworkRequest struct {
	Title        string             `json:"title" validate:"required,max=200"`
	Description  string             `json:"description" validate:"max=5000"`
	ArtistID     string             `json:"artistId" validate:"required"`
	Images       []string           `json:"images" validate:"omitempty,dive,url"`
	Category     string             `json:"category" validate:"required"`
	Medium       string             `json:"medium"`
	Dimensions   *entity.Dimensions `json:"dimensions"`
	Price        float64            `json:"price" validate:"gte=0"`
	Currency     string             `json:"currency" validate:"omitempty,len=3"`
	Available    *bool              `json:"available"`
	IsFeatured   bool               `json:"isFeatured"`
	CreationDate string             `json:"creationDate"`
	Tags         []string           `json:"tags"`
}

type updateArtworkRequest struct {
	Title        *string            `json:"title" validate:"omitempty,max=200"`
	Description  *string            `json:"description" validate:"omitempty,max=5000"`
	Images       []string           `json:"images" validate:"omitempty,dive,url"`
	Category     *string            `json:"category"`
	Medium       *string            `json:"medium"`
	Dimensions   *entity.Dimensions `json:"dimensions"`
	Price        *float64           `json:"price" validate:"omitempty,gte=0"`
	Currency     *string            `json:"currency" validate:"omitempty,len=3"`
	Available    *bool              `json:"available"`
	IsFeatured   *bool              `json:"isFeatured"`
	CreationDate string             `json:"creationDate"`
	Tags         []string           `json:"tags"`
}

func (h *ArtworkHandler) ListArtworks(c echo.Context) error {
	filter, err := artworkFilterFromQuery(c)
	if err != nil {
		return response.Error(c, err)
	}

	artworks, err := h.artworkUseCase.List(c.Request().Context(), filter)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, artworks)
}

func (h *ArtworkHandler) SearchArtworks(c echo.Context) error {
	limit, err := utils.GetLimitParam(c)
	if err != nil {
		return response.Error(c, err)
	}

	artworks, err := h.artworkUseCase.Search(c.Request().Context(), c.QueryParam("query"), limit)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, artworks)
}

func (h *ArtworkHandler) ListByArtist(c echo.Context) error {
	artworks, err := h.artworkUseCase.ListByArtist(c.Request().Context(), c.Param("artistId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, artworks)
}

func (h *ArtworkHandler) GetArtwork(c echo.Context) error {
	artwork, err := h.artworkUseCase.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, artwork)
}

func (h *ArtworkHandler) CreateArtwork(c echo.Context) error {
	var req createArtworkRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	creationDate, err := parseDate(req.CreationDate)
	if err != nil {
		return response.Error(c, err)
	}

	artwork, err := h.artworkUseCase.Create(c.Request().Context(), usecase.CreateArtworkInput{
		Title:        req.Title,
		Description:  req.Description,
		ArtistID:     req.ArtistID,
		Images:       req.Images,
		Category:     req.Category,
		Medium:       req.Medium,
		Dimensions:   req.Dimensions,
		Price:        req.Price,
		Currency:     req.Currency,
		Available:    req.Available,
		IsFeatured:   req.IsFeatured,
		CreationDate: creationDate,
		Tags:         req.Tags,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, artwork)
}

func (h *ArtworkHandler) UpdateArtwork(c echo.Context) error {
	var req updateArtworkRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	creationDate, err := parseDate(req.CreationDate)
	if err != nil {
		return response.Error(c, err)
	}

	artwork, err := h.artworkUseCase.Update(c.Request().Context(), c.Param("id"), usecase.UpdateArtworkInput{
		Title:        req.Title,
		Description:  req.Description,
		Images:       req.Images,
		Category:     req.Category,
		Medium:       req.Medium,
		Dimensions:   req.Dimensions,
		Price:        req.Price,
		Currency:     req.Currency,
		Available:    req.Available,
		IsFeatured:   req.IsFeatured,
		CreationDate: creationDate,
		Tags:         req.Tags,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, artwork)
}

func (h *ArtworkHandler) DeleteArtwork(c echo.Context) error {
	if err := h.artworkUseCase.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Message(c, "Artwork deleted successfully")
}

// UploadImage takes a multipart "image" field and appends it to the artwork.
func (h *ArtworkHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return response.Error(c, errors.BadRequest("Image file is required", err))
	}

	contentType := file.Header.Get(echo.HeaderContentType)
	if !storage.IsSupportedImage(contentType) {
		return response.Error(c, errors.BadRequest("Unsupported image type", nil))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read image", err))
	}
	defer src.Close()

	artwork, err := h.artworkUseCase.AddImage(c.Request().Context(), c.Param("id"), contentType, src)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, artwork)
}

func artworkFilterFromQuery(c echo.Context) (entity.ArtworkFilter, error) {
	var filter entity.ArtworkFilter
	var err error

	filter.Category = strings.TrimSpace(c.QueryParam("category"))
	filter.Medium = strings.TrimSpace(c.QueryParam("medium"))
	filter.ArtistID = strings.TrimSpace(c.QueryParam("artist"))

	if filter.MinPrice, err = utils.GetFloatParam(c, "minPrice"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = utils.GetFloatParam(c, "maxPrice"); err != nil {
		return filter, err
	}
	if filter.Featured, err = utils.GetBoolParam(c, "featured"); err != nil {
		return filter, err
	}
	if filter.Limit, err = utils.GetLimitParam(c); err != nil {
		return filter, err
	}
	return filter, nil
}

// parseDate accepts RFC 3339 timestamps or plain dates. Empty means unset.
func parseDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, errors.BadRequest("creationDate must be a date (YYYY-MM-DD) or RFC 3339 timestamp", nil)
}
