package handlers

import (
	"errors"
	"net/http"

	"warranty-management-backend/internal/middleware"
	"warranty-management-backend/internal/services/stats"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	service *stats.Service
}

func NewStatsHandler(s *stats.Service) *StatsHandler {
	return &StatsHandler{service: s}
}

// shopCode resolves the shop a stats request is about: shop owners are
// pinned to their own shop, admins may ask for any via query param.
func shopCode(c *gin.Context) string {
	scope := middleware.GetScope(c)
	if scope.ShopCode != "" {
		return scope.ShopCode
	}
	return c.Query("shop_code")
}

func (h *StatsHandler) ShopMonthly(c *gin.Context) {
	respondStats(c)(h.service.ShopMonthly(shopCode(c)))
}

func (h *StatsHandler) ShopYearly(c *gin.Context) {
	respondStats(c)(h.service.ShopYearly(shopCode(c)))
}

func (h *StatsHandler) ShopLifetime(c *gin.Context) {
	respondStats(c)(h.service.ShopLifetime(shopCode(c)))
}

func (h *StatsHandler) AdminMonthly(c *gin.Context) {
	respondStats(c)(h.service.AdminMonthly())
}

func (h *StatsHandler) AdminYearly(c *gin.Context) {
	respondStats(c)(h.service.AdminYearly())
}

func (h *StatsHandler) AdminLifetime(c *gin.Context) {
	respondStats(c)(h.service.AdminLifetime())
}

func (h *StatsHandler) ModelCounts(c *gin.Context) {
	counts, err := h.service.ModelCounts(middleware.GetScope(c), c.DefaultQuery("duration", "lifetime"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"modelCounts": counts})
}

func (h *StatsHandler) SalesTrend(c *gin.Context) {
	trends, err := h.service.SalesTrend(middleware.GetScope(c), c.DefaultQuery("duration", "monthly"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
		return
	}
	c.JSON(http.StatusOK, trends)
}

func respondStats(c *gin.Context) func(data interface{}, err error) {
	return func(data interface{}, err error) {
		if err != nil {
			if errors.Is(err, stats.ErrShopCodeRequired) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Shop code is required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch statistics"})
			return
		}
		c.JSON(http.StatusOK, data)
	}
}
