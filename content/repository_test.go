package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"portfolio/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal("failed to connect database")
	}

	db.AutoMigrate(&models.Article{}, &models.KBArticle{}, &models.Profile{})
	return db
}

func newTestArticle() *models.Article {
	return &models.Article{
		Title:   "Test Article",
		Slug:    "test-article",
		Content: "# Test Content\n\nThis is a **test** article.",
		Type:    models.TypeBlog,
		Tags:    []string{"Microsoft 365", "Tutorial"},
	}
}

func TestCreate_AssignsIDAndTimestamps(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	article := newTestArticle()
	err := repo.Create(article)

	assert.NoError(t, err)
	assert.NotEmpty(t, article.ID)
	assert.False(t, article.CreatedAt.IsZero())
	assert.Nil(t, article.PublishedAt)
}

func TestCreate_EmptyContentRejectedBeforeStore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	article := newTestArticle()
	article.Content = "   "

	err := repo.Create(article)
	assert.Error(t, err)
	assert.True(t, IsValidation(err))

	// the store was never touched
	var count int64
	db.Model(&models.Article{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestCreate_PublishedStampsPublishedAt(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	article := newTestArticle()
	article.Published = true

	assert.NoError(t, repo.Create(article))
	assert.NotNil(t, article.PublishedAt)

	listed, err := repo.ListPublished("")
	assert.NoError(t, err)
	assert.Len(t, listed, 1)
	assert.Equal(t, article.ID, listed[0].ID)
}

func TestListPublished_NeverReturnsDrafts(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	draft := newTestArticle()
	assert.NoError(t, repo.Create(draft))

	published := newTestArticle()
	published.Slug = "published-article"
	published.Published = true
	assert.NoError(t, repo.Create(published))

	articles, err := repo.ListPublished("")
	assert.NoError(t, err)
	assert.Len(t, articles, 1)
	for _, a := range articles {
		assert.True(t, a.Published)
	}
}

func TestListPublished_FiltersByType(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	blog := newTestArticle()
	blog.Published = true
	assert.NoError(t, repo.Create(blog))

	cs := newTestArticle()
	cs.Slug = "migration-case-study"
	cs.Type = models.TypeCaseStudy
	cs.Client = "Contoso"
	cs.Industry = "Manufacturing"
	cs.Metrics = `{"mailboxes migrated": "4200"}`
	cs.Published = true
	assert.NoError(t, repo.Create(cs))

	caseStudies, err := repo.ListPublished(models.TypeCaseStudy)
	assert.NoError(t, err)
	assert.Len(t, caseStudies, 1)
	assert.Equal(t, "Contoso", caseStudies[0].Client)
}

func TestListPublished_OrderedByPublishDateDesc(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArticleRepository(db)

	older := newTestArticle()
	older.Slug = "older"
	older.Published = true
	assert.NoError(t, repo.Create(older))
	past := time.Now().Add(-48 * time.Hour)
	db.Model(&models.Article{}).Where("id = ?", older.ID).Update("published_at", past)

	newer := newTestArticle()
	newer.Slug = "newer"
	newer.Published = true
	assert.NoError(t, repo.Create(newer))

	articles, err := repo.ListPublished("")
	assert.NoError(t, err)
	assert.Len(t, articles, 2)
	assert.Equal(t, "newer", articles[0].Slug)
	assert.Equal(t, "older", articles[1].Slug)
}

func TestGetBySlug(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	article := newTestArticle()
	article.Published = true
	assert.NoError(t, repo.Create(article))

	found, err := repo.GetBySlug("test-article")
	assert.NoError(t, err)
	assert.Equal(t, article.ID, found.ID)
}

func TestGetBySlug_DraftIsNotFound(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	draft := newTestArticle()
	assert.NoError(t, repo.Create(draft))

	_, err := repo.GetBySlug("test-article")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetByID_LoadsDrafts(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	draft := newTestArticle()
	assert.NoError(t, repo.Create(draft))

	found, err := repo.GetByID(draft.ID)
	assert.NoError(t, err)
	assert.False(t, found.Published)
}

func TestUpdate_VanishedRowIsNotFound(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	article := newTestArticle()
	article.ID = "no-such-id"

	err := repo.Update(article)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_FirstPublishStampsOnce(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	article := newTestArticle()
	assert.NoError(t, repo.Create(article))
	assert.Nil(t, article.PublishedAt)

	article.Published = true
	assert.NoError(t, repo.Update(article))
	assert.NotNil(t, article.PublishedAt)
	firstPublish := *article.PublishedAt

	// editing the excerpt later re-stamps neither slug nor publish time
	article.Excerpt = "A short excerpt"
	assert.NoError(t, repo.Update(article))

	reloaded, err := repo.GetByID(article.ID)
	assert.NoError(t, err)
	assert.Equal(t, "A short excerpt", reloaded.Excerpt)
	assert.Equal(t, "test-article", reloaded.Slug)
	assert.WithinDuration(t, firstPublish, *reloaded.PublishedAt, time.Second)
}

func TestDelete(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	article := newTestArticle()
	assert.NoError(t, repo.Create(article))
	assert.NoError(t, repo.Delete(article.ID))

	_, err := repo.GetByID(article.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_AbsentIDIsNoOpSuccess(t *testing.T) {
	repo := NewArticleRepository(setupTestDB(t))

	assert.NoError(t, repo.Delete("already-gone"))
}

func TestKBRepository_CategoryRequired(t *testing.T) {
	repo := NewKBRepository(setupTestDB(t))

	article := &models.KBArticle{
		Title:   "Configure DKIM",
		Slug:    "configure-dkim",
		Content: "Steps to configure DKIM signing.",
	}

	err := repo.Create(article)
	assert.True(t, IsValidation(err))

	article.Category = "exchange-online"
	assert.NoError(t, repo.Create(article))
}

func TestKBRepository_ListPublishedByCategory(t *testing.T) {
	repo := NewKBRepository(setupTestDB(t))

	teams := &models.KBArticle{
		Title:     "Teams Policies",
		Slug:      "teams-policies",
		Content:   "Policy walkthrough.",
		Category:  "teams",
		Published: true,
	}
	assert.NoError(t, repo.Create(teams))

	intune := &models.KBArticle{
		Title:     "Intune Enrollment",
		Slug:      "intune-enrollment",
		Content:   "Enrollment walkthrough.",
		Category:  "intune-mdm",
		Published: true,
	}
	assert.NoError(t, repo.Create(intune))

	draft := &models.KBArticle{
		Title:    "Draft Entry",
		Slug:     "draft-entry",
		Content:  "Unfinished.",
		Category: "teams",
	}
	assert.NoError(t, repo.Create(draft))

	got, err := repo.ListPublished("teams")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "teams-policies", got[0].Slug)

	all, err := repo.ListPublished("")
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
