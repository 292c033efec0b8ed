package backoffice

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"portfolio/cache"
	"portfolio/models"
)

// BackofficeModule manages user accounts and maintenance actions.
// Everything here is admin-only; editors never see it.
type BackofficeModule struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewBackofficeModule(db *gorm.DB, log zerolog.Logger) *BackofficeModule {
	return &BackofficeModule{db: db, log: log}
}

func (b *BackofficeModule) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/admin/users")
	group.Use(b.requireAdmin)
	{
		group.GET("", b.listUsers)
		group.POST("", b.createUser)
		group.PUT("/:id/role", b.changeRole)
		group.PUT("/:id/password", b.resetPassword)
	}

	router.POST("/api/admin/clear-cache", b.requireAdmin, b.clearCache)
}

// requireAdmin is an admin-only session check, independent of the
// authoring module's middleware so backoffice routes stand alone.
func (b *BackofficeModule) requireAdmin(c *gin.Context) {
	session := sessions.Default(c)
	userID, _ := session.Get("user_id").(string)

	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var user models.User
	if err := b.db.Where("id = ?", userID).First(&user).Error; err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if user.Role != models.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
		return
	}

	c.Set("user", user)
	c.Next()
}

func (b *BackofficeModule) listUsers(c *gin.Context) {
	var users []models.User
	if err := b.db.Order("created_at ASC").Find(&users).Error; err != nil {
		b.log.Error().Err(err).Msg("failed to load users")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// createUser provisions an editor or admin account with its author
// profile in one step.
func (b *BackofficeModule) createUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "email, password and full_name are required"})
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleEditor {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "role must be admin or editor"})
		return
	}

	var existing models.User
	if err := b.db.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	profile := models.Profile{
		ID:       uuid.NewString(),
		FullName: strings.TrimSpace(req.FullName),
	}
	if err := b.db.Create(&profile).Error; err != nil {
		b.log.Error().Err(err).Msg("failed to create profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		ProfileID:    profile.ID,
		CreatedAt:    time.Now(),
	}
	if err := b.db.Create(&user).Error; err != nil {
		b.db.Delete(&profile)
		b.log.Error().Err(err).Msg("failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	b.log.Info().Str("email", email).Str("role", req.Role).Msg("user created")
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

func (b *BackofficeModule) changeRole(c *gin.Context) {
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Role != models.RoleAdmin && req.Role != models.RoleEditor {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "role must be admin or editor"})
		return
	}

	var user models.User
	if err := b.db.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	user.Role = req.Role
	if err := b.db.Save(&user).Error; err != nil {
		b.log.Error().Err(err).Msg("failed to update role")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update role"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (b *BackofficeModule) resetPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "password is required"})
		return
	}

	var user models.User
	if err := b.db.Where("id = ?", c.Param("id")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}

	user.PasswordHash = string(hash)
	if err := b.db.Save(&user).Error; err != nil {
		b.log.Error().Err(err).Msg("failed to update password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// clearCache drops every cached article response older than zero age,
// i.e. all of them. Useful after editing templates or bulk imports.
func (b *BackofficeModule) clearCache(c *gin.Context) {
	if err := cache.ClearOld(0); err != nil {
		b.log.Error().Err(err).Msg("failed to clear cache")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cache"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
