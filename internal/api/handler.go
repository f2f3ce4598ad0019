package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vendorlink/supplier-dashboard/internal/announcement"
	"github.com/vendorlink/supplier-dashboard/internal/dashboard"
	"github.com/vendorlink/supplier-dashboard/internal/localdata"
	"github.com/vendorlink/supplier-dashboard/internal/notice"
	"go.uber.org/zap"
)

// Handler exposes the dashboard pipeline to the rendering layer.
type Handler struct {
	service       *dashboard.Service
	store         *announcement.Store
	selection     *announcement.Selection
	resources     *localdata.Source
	notices       *notice.Center
	defaultVendor string
	logger        *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(
	service *dashboard.Service,
	store *announcement.Store,
	selection *announcement.Selection,
	resources *localdata.Source,
	notices *notice.Center,
	defaultVendor string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		service:       service,
		store:         store,
		selection:     selection,
		resources:     resources,
		notices:       notices,
		defaultVendor: defaultVendor,
		logger:        logger,
	}
}

// Register mounts all routes on the router.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/dashboard", h.GetDashboard)
		api.GET("/dashboard/current", h.GetCurrentDashboard)
		api.GET("/dashboard/settled", h.GetSettledDashboard)
		api.GET("/announcements", h.GetAnnouncements)
		api.GET("/announcements/categories", h.GetAnnouncementCategories)
		api.GET("/selection", h.GetSelection)
		api.PUT("/selection", h.PutSelection)
		api.GET("/resources/:name", h.GetResource)
		api.GET("/notices", h.GetNotices)
	}
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "supplier-dashboard",
		"time":    time.Now().Format(time.RFC3339),
	})
}

// GetDashboard runs one fail-fast aggregation and returns the four view
// models. Any fetch failure aborts the whole aggregation.
func (h *Handler) GetDashboard(c *gin.Context) {
	vendor := h.vendorCode(c)

	snapshot, err := h.service.Refresh(c.Request.Context(), vendor)
	if err != nil {
		h.logger.Error("Dashboard refresh failed",
			zap.String("vendor_code", vendor),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Something went wrong while fetching dashboard data. Please try again later.",
		})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// GetCurrentDashboard returns the last published snapshot without fetching.
func (h *Handler) GetCurrentDashboard(c *gin.Context) {
	snapshot := h.service.Current()
	if snapshot == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no dashboard data published yet"})
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// GetSettledDashboard runs the partial-availability aggregation: every
// entity set reports its own outcome.
func (h *Handler) GetSettledDashboard(c *gin.Context) {
	settled := h.service.Settled(c.Request.Context(), h.vendorCode(c))
	c.JSON(http.StatusOK, settled)
}

// announcementView decorates an announcement with its display lookups.
type announcementView struct {
	announcement.Item
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	StatusState string `json:"statusState"`
}

// GetAnnouncements returns the announcements for the selected category and
// records the selection.
func (h *Handler) GetAnnouncements(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		category = h.selection.Category()
	} else {
		h.selection.SetCategory(category)
	}

	items := h.store.Filter(category)
	views := make([]announcementView, 0, len(items))
	for _, item := range items {
		views = append(views, announcementView{
			Item:        item,
			Icon:        announcement.Icon(item.Category),
			Color:       announcement.Color(item.Category),
			StatusState: announcement.StatusState(item.Category),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"selectedCategory": category,
		"items":            views,
	})
}

// GetAnnouncementCategories returns the available filter categories.
func (h *Handler) GetAnnouncementCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.store.Categories()})
}

// GetSelection returns the product multi-select state.
func (h *Handler) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"products": h.selection.Products()})
}

// selectionRequest is the body of PUT /selection.
type selectionRequest struct {
	Keys []string `json:"keys"`
}

// PutSelection applies a new product selection. Deselecting everything is
// rejected and the previous selection kept.
func (h *Handler) PutSelection(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.selection.SetSelectedProducts(req.Keys); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":    err.Error(),
			"products": h.selection.Products(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": h.selection.Products()})
}

// GetResource serves a local static JSON resource verbatim.
func (h *Handler) GetResource(c *gin.Context) {
	name := c.Param("name")
	payload, ok := h.resources.Resource(name)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown resource: " + name})
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}

// GetNotices returns the recent user-facing notices. With drain=true the
// feed is cleared after reading.
func (h *Handler) GetNotices(c *gin.Context) {
	var notices []notice.Notice
	if c.Query("drain") == "true" {
		notices = h.notices.Drain()
	} else {
		notices = h.notices.Recent()
	}
	if notices == nil {
		notices = []notice.Notice{}
	}
	c.JSON(http.StatusOK, gin.H{"notices": notices})
}

func (h *Handler) vendorCode(c *gin.Context) string {
	if vendor := c.Query("vendor"); vendor != "" {
		return vendor
	}
	return h.defaultVendor
}
