package admin

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	gcal "github.com/londontitans/fixtures-sync/repos/gcal"
	resend "github.com/londontitans/fixtures-sync/repos/resend"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	DELETE(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Admin is the interface for the administrative workflow service.
type Admin interface {
	UpsertManualFixture(ctx context.Context, fixture gcal.Fixture) (gcal.Fixture, error)
	DeleteManualFixture(ctx context.Context, id string) error
	SetOverride(ctx context.Context, id string, patch gcal.FixturePatch) error
	ClearOverride(ctx context.Context, id string) error
	UpdateManagedLists(ctx context.Context, teams, opponents []string) error
	Preview(summary, description string) gcal.Fixture
	ClaimAccess(c *gin.Context, request resend.AccessRequest) error
	RedeemAccess(c *gin.Context, code string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Admin

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/fixtures", h.upsertFixtureHandler)
	r.DELETE("/fixtures/:fixture_id", h.deleteFixtureHandler)
	r.POST("/overrides/:fixture_id", h.setOverrideHandler)
	r.DELETE("/overrides/:fixture_id", h.clearOverrideHandler)
	r.POST("/lists", h.listsHandler)
	r.POST("/preview", h.previewHandler)
	r.POST("/claim", h.claimHandler)
	r.GET("/access/:access_code", h.accessHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) upsertFixtureHandler(c *gin.Context) {
	var fixture gcal.Fixture
	if err := c.ShouldBindJSON(&fixture); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	saved, err := h.Service.UpsertManualFixture(c, fixture)
	if err != nil {
		log.Printf("Could not save manual fixture: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *httpHandler) deleteFixtureHandler(c *gin.Context) {
	err := h.Service.DeleteManualFixture(c, c.Param("fixture_id"))
	if err != nil {
		if errors.Is(err, ErrUnknownFixture) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fixture removed"})
}

func (h *httpHandler) setOverrideHandler(c *gin.Context) {
	var patch gcal.FixturePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := h.Service.SetOverride(c, c.Param("fixture_id"), patch); err != nil {
		log.Printf("Could not save override: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Override saved"})
}

func (h *httpHandler) clearOverrideHandler(c *gin.Context) {
	err := h.Service.ClearOverride(c, c.Param("fixture_id"))
	if err != nil {
		if errors.Is(err, ErrUnknownFixture) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Override removed"})
}

func (h *httpHandler) listsHandler(c *gin.Context) {
	var request ListsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := h.Service.UpdateManagedLists(c, request.Teams, request.Opponents); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lists updated"})
}

func (h *httpHandler) previewHandler(c *gin.Context) {
	var request PreviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, h.Service.Preview(request.Summary, request.Description))
}

func (h *httpHandler) claimHandler(c *gin.Context) {
	var request resend.AccessRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := h.Service.ClaimAccess(c, request); err != nil {
		log.Printf("Could not claim access: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to send mail request"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"result": "Access link sent",
		"email":  request.Email,
	})
}

func (h *httpHandler) accessHandler(c *gin.Context) {
	if err := h.Service.RedeemAccess(c, c.Param("access_code")); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "not valid access code"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Access granted"})
}
