package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio/models"
)

// ArticleRepository owns all reads and writes against the articles table.
type ArticleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// ListPublished returns published articles, newest publish date first,
// optionally restricted to one content type.
func (r *ArticleRepository) ListPublished(articleType string) ([]models.Article, error) {
	query := r.db.Where("published = ?", true)
	if articleType != "" {
		query = query.Where("type = ?", articleType)
	}

	var articles []models.Article
	if err := query.Order("published_at DESC").Find(&articles).Error; err != nil {
		return nil, storeError(err)
	}
	return articles, nil
}

// ListAll returns every article including drafts, newest first. Admin only.
func (r *ArticleRepository) ListAll() ([]models.Article, error) {
	var articles []models.Article
	if err := r.db.Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, storeError(err)
	}
	return articles, nil
}

// GetBySlug fetches one published article. A draft behind the slug is a miss.
func (r *ArticleRepository) GetBySlug(slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.Where("slug = ? AND published = ?", slug, true).First(&article).Error
	if err != nil {
		return nil, storeError(err)
	}
	return &article, nil
}

// GetByID fetches one article regardless of published state, so the
// editor can load drafts.
func (r *ArticleRepository) GetByID(id string) (*models.Article, error) {
	var article models.Article
	if err := r.db.Where("id = ?", id).First(&article).Error; err != nil {
		return nil, storeError(err)
	}
	return &article, nil
}

// Create validates and inserts a new article. The id is assigned here
// and publish time is stamped when the row is born published.
func (r *ArticleRepository) Create(article *models.Article) error {
	if err := validateArticle(article); err != nil {
		return err
	}

	article.ID = uuid.NewString()
	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now
	if article.Published && article.PublishedAt == nil {
		article.PublishedAt = &now
	}
	if article.Type == "" {
		article.Type = models.TypeBlog
	}

	if err := r.db.Create(article).Error; err != nil {
		return storeError(err)
	}
	return nil
}

// Update saves an edited article. Returns ErrNotFound when the row was
// deleted underneath the editor, so the save surfaces as an error rather
// than silently recreating the article. PublishedAt is stamped exactly
// once, on the first false-to-true transition, and never re-stamped.
func (r *ArticleRepository) Update(article *models.Article) error {
	if err := validateArticle(article); err != nil {
		return err
	}

	var existing models.Article
	if err := r.db.Where("id = ?", article.ID).First(&existing).Error; err != nil {
		return storeError(err)
	}

	article.CreatedAt = existing.CreatedAt
	article.UpdatedAt = time.Now()
	article.PublishedAt = existing.PublishedAt
	if article.Published && article.PublishedAt == nil {
		now := time.Now()
		article.PublishedAt = &now
	}

	if err := r.db.Save(article).Error; err != nil {
		return storeError(err)
	}
	return nil
}

// Delete hard-deletes an article. Deleting an id that is already gone is
// treated as success, so a double-click or a concurrent delete never
// confuses the caller.
func (r *ArticleRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.Article{})
	if result.Error != nil {
		return storeError(result.Error)
	}
	return nil
}

func validateArticle(article *models.Article) error {
	var missing []string
	if strings.TrimSpace(article.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(article.Slug) == "" {
		missing = append(missing, "slug")
	}
	if strings.TrimSpace(article.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
