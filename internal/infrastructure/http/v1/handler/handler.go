package handler

import (
	"net/http"

	"github.com/AntonikaS/floodradar-drypath-map/internal/usecase"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	tileUseCase *usecase.TileUseCase
}

func NewHandler(uc *usecase.TileUseCase) *Handler {
	return &Handler{
		tileUseCase: uc,
	}
}

func (h *Handler) Healthz(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}
