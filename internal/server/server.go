// Package server implements the provider HTTP API consumed by the
// terminal client: month data rows, the settings document, and the
// bucket list.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"workhours/internal/api"
	"workhours/internal/aw"
	"workhours/internal/store"
	"workhours/internal/workday"
)

// Server wires the ActivityWatch client, the settings store and the
// holiday calendar behind the provider endpoints.
type Server struct {
	aw       *aw.Client
	store    *store.Store
	holidays *HolidayCalendar
	loc      *time.Location
	now      func() time.Time
}

func New(awClient *aw.Client, s *store.Store, loc *time.Location) *Server {
	return &Server{
		aw:       awClient,
		store:    s,
		holidays: NewHolidayCalendar(s),
		loc:      loc,
		now:      time.Now,
	}
}

// Router builds the gin engine with all provider routes.
func (s *Server) Router() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/data/:month", s.getData)
	engine.GET("/settings", s.getSettings)
	engine.POST("/settings", s.postSettings)
	engine.GET("/settings/buckets", s.getBuckets)

	return engine
}

func (s *Server) getData(c *gin.Context) {
	month, err := api.ParseMonth(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_month", "message": err.Error()},
		})
		return
	}

	settings, err := s.store.LoadSettings()
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	preference := ""
	if settings.Bucket != nil {
		preference = *settings.Bucket
	}
	bucketID, err := s.aw.ResolveBucket(c.Request.Context(), preference)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	now := s.now().In(s.loc)
	events, err := s.aw.Events(c.Request.Context(), bucketID, month.Start(s.loc), month.End(s.loc))
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	rows := workday.BuildRows(month, now, events, s.holidays.IsHoliday, settings.MinEventSeconds)
	if rows == nil {
		rows = []api.DayRow{}
	}
	c.JSON(http.StatusOK, api.MonthData{Rows: rows})
}

func (s *Server) getSettings(c *gin.Context) {
	doc, err := s.store.LoadSettings()
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// postSettings persists the submitted document wholesale and echoes the
// stored state back; the response, not the request, is authoritative.
func (s *Server) postSettings(c *gin.Context) {
	var doc api.SettingsDoc
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"code": "invalid_json", "message": "invalid request body"},
		})
		return
	}

	// An empty bucket selection means automatic selection.
	if doc.Bucket != nil && *doc.Bucket == "" {
		doc.Bucket = nil
	}

	if err := s.store.SaveSettings(doc); err != nil {
		writeUpstreamError(c, err)
		return
	}

	saved, err := s.store.LoadSettings()
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) getBuckets(c *gin.Context) {
	ids, err := s.aw.AFKBuckets(c.Request.Context())
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	hosts := make([]string, 0, len(ids))
	for _, id := range ids {
		hosts = append(hosts, aw.Hostname(id))
	}
	c.JSON(http.StatusOK, hosts)
}

func writeUpstreamError(c *gin.Context, err error) {
	c.JSON(http.StatusBadGateway, gin.H{
		"error": gin.H{"code": "upstream", "message": err.Error()},
	})
}
