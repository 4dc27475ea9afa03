package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tyabase/FreshDeliverySystem/config"
)

type PublicHandler struct{}

func (h *PublicHandler) GetSiteInfo(c *gin.Context) {
	c.JSON(http.StatusOK, config.AppConfig.Site)
}
