package request

import (
	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/usecase"
)

type GalleryItemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

type ServiceRequest struct {
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Image       string               `json:"image"`
	Features    []string             `json:"features"`
	Benefits    []string             `json:"benefits"`
	Gallery     []GalleryItemRequest `json:"gallery"`
}

func (r ServiceRequest) ToInput() usecase.ServiceInput {
	in := usecase.ServiceInput{
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
		Features:    r.Features,
		Benefits:    r.Benefits,
	}
	if len(r.Gallery) > 0 {
		in.Gallery = make([]entities.GalleryItem, 0, len(r.Gallery))
		for _, g := range r.Gallery {
			in.Gallery = append(in.Gallery, entities.GalleryItem{
				Title:       g.Title,
				Description: g.Description,
				Image:       g.Image,
			})
		}
	}
	return in
}
