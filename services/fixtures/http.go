package fixtures

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	adminstore "github.com/londontitans/fixtures-sync/repos/adminstore"
	gcal "github.com/londontitans/fixtures-sync/repos/gcal"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Fixtures is the interface for the fixture list service.
type Fixtures interface {
	Refresh(ctx context.Context) ([]gcal.Fixture, error)
	AdminSnapshot(ctx context.Context) (adminstore.AdminStorage, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provides the HTTP transport for.
	Service Fixtures

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("/list", h.listHandler)
	r.GET("/admin-data", h.adminDataHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) listHandler(c *gin.Context) {
	fixtures, err := h.Service.Refresh(c)
	if err != nil {
		log.Printf("Could not refresh fixtures: %v\n", err)
		if errors.Is(err, gcal.ErrFeedUnavailable) || errors.Is(err, gcal.ErrInvalidFeed) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not reach the club calendar"})
			c.Abort()
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, fixtures)
}

func (h *httpHandler) adminDataHandler(c *gin.Context) {
	snapshot, err := h.Service.AdminSnapshot(c)
	if err != nil {
		log.Printf("Could not load admin data: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
