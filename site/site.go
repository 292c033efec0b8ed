package site

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"portfolio/models"
)

// SiteModule serves the site-wide endpoints that belong to no feature:
// health check and the sitemap built from published content.
type SiteModule struct {
	db     *gorm.DB
	domain string
}

func NewSiteModule(db *gorm.DB, domain string) *SiteModule {
	return &SiteModule{db: db, domain: strings.TrimSuffix(domain, "/")}
}

func (s *SiteModule) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", s.health)
	router.GET("/sitemap.xml", s.sitemap)
}

func (s *SiteModule) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// staticPages are the marketing routes the frontend serves.
var staticPages = []struct {
	path       string
	changefreq string
	priority   string
}{
	{"/", "weekly", "1.0"},
	{"/about", "monthly", "0.7"},
	{"/experience", "monthly", "0.7"},
	{"/case-studies", "weekly", "0.8"},
	{"/blog", "daily", "0.8"},
	{"/kb", "weekly", "0.8"},
	{"/contact", "monthly", "0.5"},
}

func (s *SiteModule) sitemap(c *gin.Context) {
	var sitemap strings.Builder
	sitemap.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sitemap.WriteString("\n")
	sitemap.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	sitemap.WriteString("\n")

	for _, page := range staticPages {
		s.writeURL(&sitemap, page.path, page.changefreq, page.priority)
	}

	var articles []models.Article
	if err := s.db.Where("published = ?", true).Find(&articles).Error; err == nil {
		for _, article := range articles {
			prefix := "/blog/"
			if article.Type == models.TypeCaseStudy {
				prefix = "/case-studies/"
			}
			s.writeURL(&sitemap, prefix+article.Slug, "monthly", "0.6")
		}
	}

	var kbArticles []models.KBArticle
	if err := s.db.Where("published = ?", true).Find(&kbArticles).Error; err == nil {
		for _, article := range kbArticles {
			s.writeURL(&sitemap, "/kb/"+article.Category+"/"+article.Slug, "monthly", "0.6")
		}
	}

	sitemap.WriteString(`</urlset>`)

	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(sitemap.String()))
}

func (s *SiteModule) writeURL(b *strings.Builder, path, changefreq, priority string) {
	b.WriteString("  <url>\n")
	b.WriteString("    <loc>" + s.domain + path + "</loc>\n")
	b.WriteString("    <changefreq>" + changefreq + "</changefreq>\n")
	b.WriteString("    <priority>" + priority + "</priority>\n")
	b.WriteString("  </url>\n")
}
