package response

import (
	"time"

	"github.com/Diilaye/batimo/internal/domain/entities"
)

type GalleryItemResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type ServiceResponse struct {
	LegacyID    string                `json:"_id"`
	ID          string                `json:"id"`
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Image       string                `json:"image"`
	Features    []string              `json:"features"`
	Benefits    []string              `json:"benefits"`
	Gallery     []GalleryItemResponse `json:"gallery"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

func FromService(s entities.Service) ServiceResponse {
	res := ServiceResponse{
		LegacyID:    s.ID,
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Image:       s.Image,
		Features:    s.Features,
		Benefits:    s.Benefits,
		Gallery:     make([]GalleryItemResponse, 0, len(s.Gallery)),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if res.Features == nil {
		res.Features = []string{}
	}
	if res.Benefits == nil {
		res.Benefits = []string{}
	}
	for _, g := range s.Gallery {
		res.Gallery = append(res.Gallery, GalleryItemResponse{Title: g.Title, Description: g.Description, Image: g.Image})
	}
	return res
}

func FromServices(services []entities.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, FromService(s))
	}
	return out
}
