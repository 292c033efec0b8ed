package analytics

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// PageEvent is one tracked interaction with the public site.
type PageEvent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	VisitorID string    `gorm:"not null;index"`
	Event     string    `gorm:"not null;default:'visit';index"`
	Path      string    `gorm:"not null;index"`
	ArticleID *string   `gorm:"index"` // nullable - set for article/KB detail views
	IP        string    `gorm:"not null"`
	Browser   *string
	Language  *string
	CreatedAt time.Time `gorm:"index"`
}

const visitorCookie = "portfolio_visitor_id"

// visitThrottle suppresses re-counting the same visitor on the same
// path; refreshes within the window are one visit.
const visitThrottle = 30 * time.Minute

type AnalyticsModule struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewAnalyticsModule(db *gorm.DB, log zerolog.Logger) *AnalyticsModule {
	return &AnalyticsModule{db: db, log: log}
}

// TrackVisit records a page view. The insert runs async so a slow write
// never delays the response, and only the first visit per visitor/path
// inside the throttle window counts.
func (a *AnalyticsModule) TrackVisit(c *gin.Context, path string, articleID *string) {
	a.TrackEvent(c, "visit", path, articleID)
}

// TrackEvent records a named event such as contact_form_submit or
// cv_download.
func (a *AnalyticsModule) TrackEvent(c *gin.Context, event, path string, articleID *string) {
	if a == nil || a.db == nil {
		return
	}

	visitorID := a.getOrCreateVisitorID(c)

	if event == "visit" {
		cutoff := time.Now().Add(-visitThrottle)
		var recent PageEvent
		err := a.db.Where("visitor_id = ? AND path = ? AND event = ? AND created_at > ?",
			visitorID, path, "visit", cutoff).First(&recent).Error
		if err == nil {
			return
		}
	}

	pe := PageEvent{
		VisitorID: visitorID,
		Event:     event,
		Path:      path,
		ArticleID: articleID,
		IP:        clientIP(c),
		Browser:   extractBrowser(c.Request.UserAgent()),
		Language:  extractLanguage(c),
		CreatedAt: time.Now(),
	}

	go func() {
		if err := a.db.Create(&pe).Error; err != nil {
			a.log.Error().Err(err).Str("path", path).Msg("failed to save page event")
		}
	}()
}

func (a *AnalyticsModule) getOrCreateVisitorID(c *gin.Context) string {
	if cookie, err := c.Cookie(visitorCookie); err == nil && cookie != "" {
		return cookie
	}

	data := time.Now().String() + c.ClientIP() + c.Request.UserAgent()
	hash := sha256.Sum256([]byte(data))
	visitorID := hex.EncodeToString(hash[:])

	c.SetCookie(
		visitorCookie,
		visitorID,
		60*60*24*365*2, // 2 years
		"/",
		"",
		false,
		true,
	)

	return visitorID
}

func clientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Forwarded-For"); ip != "" {
		ips := strings.Split(ip, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func extractBrowser(userAgent string) *string {
	if userAgent == "" {
		return nil
	}

	ua := strings.ToLower(userAgent)
	var browser string

	// order matters - most specific first
	switch {
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome") && !strings.Contains(ua, "edg"):
		browser = "Chrome"
	case strings.Contains(ua, "safari") && !strings.Contains(ua, "chrome"):
		browser = "Safari"
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr"):
		browser = "Opera"
	default:
		browser = "Other"
	}

	return &browser
}

func extractLanguage(c *gin.Context) *string {
	acceptLang := c.GetHeader("Accept-Language")
	if acceptLang == "" {
		return nil
	}

	parts := strings.Split(acceptLang, ",")
	lang := strings.TrimSpace(parts[0])
	lang = strings.Split(lang, ";")[0]
	return &lang
}
