package content

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"portfolio/models"
)

// KBRepository mirrors ArticleRepository over the kb_articles table.
// The knowledge base keeps its own table in the store schema, so it
// keeps its own repository here.
type KBRepository struct {
	db *gorm.DB
}

func NewKBRepository(db *gorm.DB) *KBRepository {
	return &KBRepository{db: db}
}

// ListPublished returns published KB articles, optionally scoped to a
// category, newest publish date first.
func (r *KBRepository) ListPublished(category string) ([]models.KBArticle, error) {
	query := r.db.Where("published = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var articles []models.KBArticle
	if err := query.Order("published_at DESC").Find(&articles).Error; err != nil {
		return nil, storeError(err)
	}
	return articles, nil
}

func (r *KBRepository) ListAll() ([]models.KBArticle, error) {
	var articles []models.KBArticle
	if err := r.db.Order("created_at DESC").Find(&articles).Error; err != nil {
		return nil, storeError(err)
	}
	return articles, nil
}

func (r *KBRepository) GetBySlug(slug string) (*models.KBArticle, error) {
	var article models.KBArticle
	err := r.db.Where("slug = ? AND published = ?", slug, true).First(&article).Error
	if err != nil {
		return nil, storeError(err)
	}
	return &article, nil
}

func (r *KBRepository) GetByID(id string) (*models.KBArticle, error) {
	var article models.KBArticle
	if err := r.db.Where("id = ?", id).First(&article).Error; err != nil {
		return nil, storeError(err)
	}
	return &article, nil
}

func (r *KBRepository) Create(article *models.KBArticle) error {
	if err := validateKBArticle(article); err != nil {
		return err
	}

	article.ID = uuid.NewString()
	now := time.Now()
	article.CreatedAt = now
	article.UpdatedAt = now
	if article.Published && article.PublishedAt == nil {
		article.PublishedAt = &now
	}

	if err := r.db.Create(article).Error; err != nil {
		return storeError(err)
	}
	return nil
}

func (r *KBRepository) Update(article *models.KBArticle) error {
	if err := validateKBArticle(article); err != nil {
		return err
	}

	var existing models.KBArticle
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

func (r *KBRepository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&models.KBArticle{})
	if result.Error != nil {
		return storeError(result.Error)
	}
	return nil
}

func validateKBArticle(article *models.KBArticle) error {
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
	if strings.TrimSpace(article.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}
