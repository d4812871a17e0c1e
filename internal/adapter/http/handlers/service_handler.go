package handlers

import (
	"errors"
	"net/http"

	request "github.com/Diilaye/batimo/internal/adapter/http/dto/request"
	response "github.com/Diilaye/batimo/internal/adapter/http/dto/response"
	"github.com/Diilaye/batimo/internal/usecase"
	"github.com/Diilaye/batimo/pkg"

	"github.com/gin-gonic/gin"
)

// ServiceHandler manages the services catalog shown on the public site.
type ServiceHandler struct {
	usecase usecase.IServiceUseCase
}

func NewServiceHandler(uc usecase.IServiceUseCase) *ServiceHandler {
	return &ServiceHandler{usecase: uc}
}

// ListServices godoc
// @Summary      List catalog services
// @Tags         services
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  response.ServiceResponse
// @Router       /services [get]
func (h *ServiceHandler) ListServices(c *gin.Context) {
	services, err := h.usecase.List(c.Request.Context())
	if err != nil {
		writeError(c, mapServiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromServices(services))
}

// CreateService godoc
// @Summary      Create a catalog service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        payload  body      request.ServiceRequest  true  "Service"
// @Success      201      {object}  response.ServiceResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /services [post]
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	created, err := h.usecase.Create(c.Request.Context(), payload.ToInput())
	if err != nil {
		writeError(c, mapServiceError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromService(created))
}

// UpdateService godoc
// @Summary      Replace the editable fields of a catalog service
// @Tags         services
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id       path      string                  true  "Service id"
// @Param        payload  body      request.ServiceRequest  true  "Service"
// @Success      200      {object}  response.ServiceResponse
// @Failure      404      {object}  pkg.HTTPError
// @Router       /services/{id} [put]
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	var payload request.ServiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	updated, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		writeError(c, mapServiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromService(updated))
}

// DeleteService godoc
// @Summary      Delete a catalog service
// @Tags         services
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Service id"
// @Success      200  {object}  response.MessageResponse
// @Router       /services/{id} [delete]
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapServiceError(err))
		return
	}
	c.JSON(http.StatusOK, response.NewMessage("Service deleted"))
}

func mapServiceError(err error) *pkg.AppError {
	if appErr, ok := validationError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidServiceID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrServiceNotFound):
		return pkg.NewDomainErrorSimple("SERVICE_NOT_FOUND", "Service not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
