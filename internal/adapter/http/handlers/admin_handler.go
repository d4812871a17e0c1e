package handlers

import (
	"net/http"

	response "github.com/Diilaye/batimo/internal/adapter/http/dto/response"
	"github.com/Diilaye/batimo/internal/usecase"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	usecase usecase.IAdminUseCase
}

func NewAdminHandler(uc usecase.IAdminUseCase) *AdminHandler {
	return &AdminHandler{usecase: uc}
}

// ListAdmins godoc
// @Summary      List administrators (mention picker)
// @Tags         admins
// @Produce      json
// @Security     Bearer
// @Success      200  {array}   response.AdminRefResponse
// @Router       /admins [get]
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.usecase.List(c.Request.Context())
	if err != nil {
		writeError(c, internalError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromAdmins(admins))
}
