package feed

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter returns a gin engine serving s.
func NewRouter(s *Store) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	SetupRoutes(r, s)
	return r
}

func SetupRoutes(r *gin.Engine, s *Store) {
	started := time.Now()
	h := &handler{store: s}

	r.GET("/last", h.last)
	r.POST("/readings", h.put)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	})
}

type handler struct {
	store *Store
}

func (h *handler) last(c *gin.Context) {
	uids, err := ParseUIDs(c.Query("uid"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.store.Last(uids))
}

func (h *handler) put(c *gin.Context) {
	var r Reading
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if r.UID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "uid must be positive"})
		return
	}
	h.store.Put(r)
	c.Status(http.StatusNoContent)
}
