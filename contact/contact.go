package contact

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"portfolio/analytics"
	"portfolio/email"
	"portfolio/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ContactModule handles the lead-capture flows: contact form
// submissions and resume-download registrations.
type ContactModule struct {
	db        *gorm.DB
	mailer    email.Mailer
	analytics *analytics.AnalyticsModule
	resumeURL string
	log       zerolog.Logger
}

func NewContactModule(db *gorm.DB, mailer email.Mailer, analyticsModule *analytics.AnalyticsModule, resumeURL string, log zerolog.Logger) *ContactModule {
	return &ContactModule{
		db:        db,
		mailer:    mailer,
		analytics: analyticsModule,
		resumeURL: resumeURL,
		log:       log,
	}
}

func (m *ContactModule) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/contact", m.submitContact)
	router.POST("/api/cv-downloads", m.registerCVDownload)
}

// submitContact validates and stores a submission, then sends the
// confirmation and owner-notification emails. Email failures are
// logged but never fail the request; the submission is already safe.
func (m *ContactModule) submitContact(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 100 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Name is required and must be less than 100 characters"})
		return
	}
	if !emailPattern.MatchString(req.Email) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Valid email is required"})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" || len(message) > 2000 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Message is required and must be less than 2000 characters"})
		return
	}

	submission := models.ContactSubmission{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:     strings.TrimSpace(req.Phone),
		Message:   message,
		CreatedAt: time.Now(),
	}

	if err := m.db.Create(&submission).Error; err != nil {
		m.log.Error().Err(err).Msg("failed to store contact submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store submission"})
		return
	}

	if err := m.mailer.SendContactConfirmation(submission); err != nil {
		m.log.Error().Err(err).Str("to", submission.Email).Msg("failed to send confirmation email")
	}
	if err := m.mailer.SendContactNotification(submission); err != nil {
		m.log.Error().Err(err).Msg("failed to send owner notification")
	}

	m.analytics.TrackEvent(c, "contact_form_submit", "/contact", nil)

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Your message has been sent successfully!",
		"submissionId": submission.ID,
	})
}

// registerCVDownload records a resume-download lead and hands back the
// download location.
func (m *ContactModule) registerCVDownload(c *gin.Context) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 100 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Name is required and must be less than 100 characters"})
		return
	}
	if !emailPattern.MatchString(req.Email) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Valid email is required"})
		return
	}

	download := models.CVDownload{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		CreatedAt: time.Now(),
	}

	if err := m.db.Create(&download).Error; err != nil {
		m.log.Error().Err(err).Msg("failed to store cv download")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register download"})
		return
	}

	m.analytics.TrackEvent(c, "cv_download", "/resume", nil)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"resume_url": m.resumeURL,
	})
}
