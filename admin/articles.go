package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio/cache"
	"portfolio/content"
	"portfolio/models"
)

func (a *AdminModule) listArticles(c *gin.Context) {
	articles, err := a.articles.ListAll()
	if err != nil {
		a.log.Error().Err(err).Msg("failed to load articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load articles"})
		return
	}

	articles = content.ResolveAuthors(a.db, articles)
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func (a *AdminModule) getArticle(c *gin.Context) {
	article, err := a.articles.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		a.log.Error().Err(err).Msg("failed to load article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// createArticle inserts a new article authored by the session user and
// returns the persisted row, so the editor can switch to edit mode and
// make its next save an update rather than a duplicate insert.
func (a *AdminModule) createArticle(c *gin.Context) {
	var form ArticleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := form.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	article := models.Article{AuthorID: currentUser(c).ProfileID}
	form.Apply(&article, true)

	if err := a.articles.Create(&article); err != nil {
		a.writeSaveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

func (a *AdminModule) updateArticle(c *gin.Context) {
	var form ArticleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := form.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	article, err := a.articles.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		a.log.Error().Err(err).Msg("failed to load article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load article"})
		return
	}

	oldSlug := article.Slug
	form.Apply(article, false)

	if err := a.articles.Update(article); err != nil {
		a.writeSaveError(c, err)
		return
	}

	cache.Clear("articles", oldSlug)
	if article.Slug != oldSlug {
		cache.Clear("articles", article.Slug)
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

func (a *AdminModule) deleteArticle(c *gin.Context) {
	id := c.Param("id")

	article, err := a.articles.GetByID(id)
	if err == nil {
		cache.Clear("articles", article.Slug)
	}

	if err := a.articles.Delete(id); err != nil {
		a.log.Error().Err(err).Str("id", id).Msg("failed to delete article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (a *AdminModule) listKBArticles(c *gin.Context) {
	articles, err := a.kb.ListAll()
	if err != nil {
		a.log.Error().Err(err).Msg("failed to load kb articles")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load articles"})
		return
	}

	articles = content.ResolveKBAuthors(a.db, articles)
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func (a *AdminModule) getKBArticle(c *gin.Context) {
	article, err := a.kb.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		a.log.Error().Err(err).Msg("failed to load kb article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

func (a *AdminModule) createKBArticle(c *gin.Context) {
	var form KBForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := form.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	article := models.KBArticle{AuthorID: currentUser(c).ProfileID}
	form.Apply(&article, true)

	if err := a.kb.Create(&article); err != nil {
		a.writeSaveError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

func (a *AdminModule) updateKBArticle(c *gin.Context) {
	var form KBForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := form.Validate(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	article, err := a.kb.GetByID(c.Param("id"))
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
			return
		}
		a.log.Error().Err(err).Msg("failed to load kb article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load article"})
		return
	}

	oldSlug := article.Slug
	form.Apply(article, false)

	if err := a.kb.Update(article); err != nil {
		a.writeSaveError(c, err)
		return
	}

	cache.Clear("kb", oldSlug)
	if article.Slug != oldSlug {
		cache.Clear("kb", article.Slug)
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

func (a *AdminModule) deleteKBArticle(c *gin.Context) {
	id := c.Param("id")

	article, err := a.kb.GetByID(id)
	if err == nil {
		cache.Clear("kb", article.Slug)
	}

	if err := a.kb.Delete(id); err != nil {
		a.log.Error().Err(err).Str("id", id).Msg("failed to delete kb article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// writeSaveError maps repository failures on create/update paths:
// validation to 422, a concurrently deleted row to 404, everything
// else to 500.
func (a *AdminModule) writeSaveError(c *gin.Context, err error) {
	switch {
	case content.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, content.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "article no longer exists"})
	default:
		a.log.Error().Err(err).Msg("failed to save article")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save article"})
	}
}
