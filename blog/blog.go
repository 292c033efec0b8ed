package blog

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"

	"portfolio/analytics"
	"portfolio/content"
	"portfolio/models"
)

// BlogModule serves the public read API consumed by the site frontend:
// published articles, case studies, and the knowledge base.
type BlogModule struct {
	db        *gorm.DB
	articles  *content.ArticleRepository
	kb        *content.KBRepository
	analytics *analytics.AnalyticsModule
	log       zerolog.Logger
}

// markdown renderer configured with Goldmark and useful extensions
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,     // tables, strikethrough, task lists, autolinks (GFM set)
		extension.Linkify, // linkify raw URLs
	),
	goldmark.WithRendererOptions(
		htmlrenderer.WithUnsafe(), // authors are trusted; raw HTML passes through
	),
)

func NewBlogModule(db *gorm.DB, analyticsModule *analytics.AnalyticsModule, log zerolog.Logger) *BlogModule {
	return &BlogModule{
		db:        db,
		articles:  content.NewArticleRepository(db),
		kb:        content.NewKBRepository(db),
		analytics: analyticsModule,
		log:       log,
	}
}

func (b *BlogModule) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.GET("/articles", b.listArticles)
		api.GET("/articles/:slug", b.getArticle)
		api.GET("/case-studies", b.listCaseStudies)
		api.GET("/kb", b.listKB)
		api.GET("/kb/:slug", b.getKBArticle)
	}
}

// listArticles returns published articles, optionally narrowed by
// ?type=blog|case_study and a free-text ?q= filter.
func (b *BlogModule) listArticles(c *gin.Context) {
	articleType := c.Query("type")
	if articleType != "" && articleType != models.TypeBlog && articleType != models.TypeCaseStudy {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown article type"})
		return
	}

	articles, err := b.articles.ListPublished(articleType)
	if err != nil {
		b.log.Error().Err(err).Msg("failed to load articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load articles"})
		return
	}

	articles = content.ResolveAuthors(b.db, articles)
	articles = content.FilterArticles(articles, c.Query("q"))

	b.analytics.TrackVisit(c, c.Request.URL.Path, nil)

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func (b *BlogModule) listCaseStudies(c *gin.Context) {
	articles, err := b.articles.ListPublished(models.TypeCaseStudy)
	if err != nil {
		b.log.Error().Err(err).Msg("failed to load case studies")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load case studies"})
		return
	}

	articles = content.ResolveAuthors(b.db, articles)
	articles = content.FilterArticles(articles, c.Query("q"))

	b.analytics.TrackVisit(c, c.Request.URL.Path, nil)

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// getArticle returns one published article with its markdown rendered
// to HTML. A miss is a 404, a store failure a 500.
func (b *BlogModule) getArticle(c *gin.Context) {
	slug := c.Param("slug")

	article, err := b.articles.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		b.log.Error().Err(err).Str("slug", slug).Msg("failed to load article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load article"})
		return
	}

	resolved := content.ResolveAuthors(b.db, []models.Article{*article})

	b.analytics.TrackVisit(c, c.Request.URL.Path, &article.ID)

	c.JSON(http.StatusOK, gin.H{
		"article":      resolved[0],
		"content_html": renderMarkdown(article.Content),
	})
}

// listKB returns published knowledge-base articles, optionally scoped
// by ?category= and filtered by ?q=.
func (b *BlogModule) listKB(c *gin.Context) {
	articles, err := b.kb.ListPublished(c.Query("category"))
	if err != nil {
		b.log.Error().Err(err).Msg("failed to load kb articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load articles"})
		return
	}

	articles = content.ResolveKBAuthors(b.db, articles)
	articles = content.FilterKBArticles(articles, c.Query("q"))

	b.analytics.TrackVisit(c, c.Request.URL.Path, nil)

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func (b *BlogModule) getKBArticle(c *gin.Context) {
	slug := c.Param("slug")

	article, err := b.kb.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		b.log.Error().Err(err).Str("slug", slug).Msg("failed to load kb article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load article"})
		return
	}

	resolved := content.ResolveKBAuthors(b.db, []models.KBArticle{*article})

	b.analytics.TrackVisit(c, c.Request.URL.Path, &article.ID)

	c.JSON(http.StatusOK, gin.H{
		"article":      resolved[0],
		"content_html": renderMarkdown(article.Content),
	})
}

func renderMarkdown(markdown string) string {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		// fall back to the raw markdown rather than break the page
		return markdown
	}
	return buf.String()
}
