package admin

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"portfolio/analytics"
	"portfolio/content"
	"portfolio/models"
)

const sessionUserKey = "user_id"

// AdminModule owns authentication and the role-gated authoring API.
type AdminModule struct {
	db        *gorm.DB
	articles  *content.ArticleRepository
	kb        *content.KBRepository
	analytics *analytics.AnalyticsModule
	log       zerolog.Logger
}

func NewAdminModule(db *gorm.DB, analyticsModule *analytics.AnalyticsModule, log zerolog.Logger) *AdminModule {
	return &AdminModule{
		db:        db,
		articles:  content.NewArticleRepository(db),
		kb:        content.NewKBRepository(db),
		analytics: analyticsModule,
		log:       log,
	}
}

func (a *AdminModule) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/admin/login", a.login)
	router.POST("/api/admin/logout", a.logout)

	adminGroup := router.Group("/api/admin")
	adminGroup.Use(a.requireAuth)
	{
		adminGroup.GET("/session", a.session)
		adminGroup.GET("/dashboard", a.dashboard)

		adminGroup.GET("/articles", a.listArticles)
		adminGroup.GET("/articles/:id", a.getArticle)
		adminGroup.POST("/articles", a.createArticle)
		adminGroup.PUT("/articles/:id", a.updateArticle)
		adminGroup.DELETE("/articles/:id", a.requireRole(models.RoleAdmin), a.deleteArticle)

		adminGroup.GET("/kb", a.listKBArticles)
		adminGroup.GET("/kb/:id", a.getKBArticle)
		adminGroup.POST("/kb", a.createKBArticle)
		adminGroup.PUT("/kb/:id", a.updateKBArticle)
		adminGroup.DELETE("/kb/:id", a.requireRole(models.RoleAdmin), a.deleteKBArticle)

		adminGroup.GET("/contact-submissions", a.listContactSubmissions)
		adminGroup.GET("/cv-downloads", a.listCVDownloads)

		adminGroup.POST("/analytics/report", a.requireRole(models.RoleAdmin), a.analyticsReport)
	}
}

// requireAuth loads the session user and rejects unauthenticated or
// role-less requests. The user is re-read per request so sign-out and
// role changes take effect immediately.
func (a *AdminModule) requireAuth(c *gin.Context) {
	session := sessions.Default(c)
	userID, _ := session.Get(sessionUserKey).(string)

	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var user models.User
	if err := a.db.Where("id = ?", userID).First(&user).Error; err != nil {
		session.Clear()
		session.Save()
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if user.Role != models.RoleAdmin && user.Role != models.RoleEditor {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		return
	}

	c.Set("user", user)
	c.Next()
}

// requireRole gates an action behind a specific role on top of
// requireAuth. Delete is admin-only; editors cannot reach it.
func (a *AdminModule) requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) models.User {
	user, _ := c.Get("user")
	u, _ := user.(models.User)
	return u
}

func (a *AdminModule) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect email or password"})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		a.log.Error().Err(err).Msg("failed to save session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}

	a.log.Info().Str("email", user.Email).Str("role", user.Role).Msg("admin login")
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (a *AdminModule) logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// session returns the authenticated user and role so the frontend can
// resolve its access gate without guessing.
func (a *AdminModule) session(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": currentUser(c)})
}

// dashboard returns the content and lead counters shown on the admin
// landing page.
func (a *AdminModule) dashboard(c *gin.Context) {
	var articleCount, kbCount, contactCount, cvCount int64
	a.db.Model(&models.Article{}).Count(&articleCount)
	a.db.Model(&models.KBArticle{}).Count(&kbCount)
	a.db.Model(&models.ContactSubmission{}).Count(&contactCount)
	a.db.Model(&models.CVDownload{}).Count(&cvCount)

	c.JSON(http.StatusOK, gin.H{
		"articles":            articleCount,
		"kb_articles":         kbCount,
		"contact_submissions": contactCount,
		"cv_downloads":        cvCount,
	})
}
