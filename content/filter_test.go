package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"portfolio/models"
)

func sampleArticles() []models.Article {
	return []models.Article{
		{Title: "Zero Trust in Entra ID", Excerpt: "Conditional access design", Tags: []string{"Security", "Entra ID"}},
		{Title: "Exchange Online Migration", Excerpt: "Hybrid cutover notes", Tags: []string{"Exchange"}},
		{Title: "PowerShell Automation", Excerpt: "", Tags: nil},
	}
}

func TestFilterArticles_EmptyQueryReturnsAll(t *testing.T) {
	articles := sampleArticles()
	assert.Equal(t, articles, FilterArticles(articles, ""))
	assert.Equal(t, articles, FilterArticles(articles, "   "))
}

func TestFilterArticles_ExactTitleIsIncluded(t *testing.T) {
	articles := sampleArticles()
	got := FilterArticles(articles, "Exchange Online Migration")
	assert.Len(t, got, 1)
	assert.Equal(t, "Exchange Online Migration", got[0].Title)
}

func TestFilterArticles_MatchesTitleExcerptAndTags(t *testing.T) {
	articles := sampleArticles()

	byTitle := FilterArticles(articles, "powershell")
	assert.Len(t, byTitle, 1)

	byExcerpt := FilterArticles(articles, "cutover")
	assert.Len(t, byExcerpt, 1)
	assert.Equal(t, "Exchange Online Migration", byExcerpt[0].Title)

	byTag := FilterArticles(articles, "security")
	assert.Len(t, byTag, 1)
	assert.Equal(t, "Zero Trust in Entra ID", byTag[0].Title)
}

func TestFilterArticles_NoMatchReturnsEmpty(t *testing.T) {
	got := FilterArticles(sampleArticles(), "kubernetes")
	assert.Empty(t, got)
}

func TestFilterArticles_PreservesOrder(t *testing.T) {
	articles := sampleArticles()
	got := FilterArticles(articles, "e")
	for i := 1; i < len(got); i++ {
		assert.True(t, indexOf(articles, got[i-1].Title) < indexOf(articles, got[i].Title))
	}
}

func indexOf(articles []models.Article, title string) int {
	for i, a := range articles {
		if a.Title == title {
			return i
		}
	}
	return -1
}

func TestFilterKBArticles_MatchesCategory(t *testing.T) {
	articles := []models.KBArticle{
		{Title: "DKIM Setup", Category: "exchange-online"},
		{Title: "App Protection", Category: "intune-mdm"},
	}

	got := FilterKBArticles(articles, "intune")
	assert.Len(t, got, 1)
	assert.Equal(t, "App Protection", got[0].Title)

	assert.Empty(t, FilterKBArticles(articles, "defender"))
}
