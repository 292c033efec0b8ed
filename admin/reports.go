package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/analytics"
	"portfolio/models"
)

// analyticsReport serves the admin dashboard's traffic reports. The
// request mirrors what the frontend sends: a date range (ISO or
// "30daysAgo"/"today") and one of the overview|pages|events metrics.
func (a *AdminModule) analyticsReport(c *gin.Context) {
	var req struct {
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
		Metric    string `json:"metric"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	start, err := analytics.ParseReportDate(req.StartDate)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	end, err := analytics.ParseReportDate(req.EndDate)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	if end.Before(start) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "endDate is before startDate"})
		return
	}

	switch req.Metric {
	case analytics.MetricPages:
		c.JSON(http.StatusOK, gin.H{"rows": a.analytics.GetTopPages(start, end, 20)})
	case analytics.MetricEvents:
		c.JSON(http.StatusOK, gin.H{"rows": a.analytics.GetEvents(start, end)})
	case analytics.MetricOverview, "":
		c.JSON(http.StatusOK, gin.H{"rows": a.analytics.GetOverview(start, end)})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown metric"})
	}
}

func (a *AdminModule) listContactSubmissions(c *gin.Context) {
	var submissions []models.ContactSubmission
	if err := a.db.Order("created_at DESC").Find(&submissions).Error; err != nil {
		a.log.Error().Err(err).Msg("failed to load contact submissions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load submissions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

func (a *AdminModule) listCVDownloads(c *gin.Context) {
	var downloads []models.CVDownload
	if err := a.db.Order("created_at DESC").Find(&downloads).Error; err != nil {
		a.log.Error().Err(err).Msg("failed to load cv downloads")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load downloads"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"downloads": downloads})
}
