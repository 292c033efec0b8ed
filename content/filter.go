package content

import (
	"strings"

	"portfolio/models"
)

// FilterArticles narrows a fetched article set by a free-text query:
// case-insensitive substring match against title, excerpt, and tags.
// An empty query returns the input unchanged and fetch order is kept.
func FilterArticles(articles []models.Article, query string) []models.Article {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return articles
	}

	filtered := make([]models.Article, 0, len(articles))
	for _, a := range articles {
		if matches(query, a.Title, a.Excerpt) || anyMatches(query, a.Tags) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

// FilterKBArticles is the knowledge-base variant; category stands in
// for tags.
func FilterKBArticles(articles []models.KBArticle, query string) []models.KBArticle {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return articles
	}

	filtered := make([]models.KBArticle, 0, len(articles))
	for _, a := range articles {
		if matches(query, a.Title, a.Excerpt, a.Category) {
			filtered = append(filtered, a)
		}
	}
	return filtered
}

func matches(query string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	return false
}

func anyMatches(query string, values []string) bool {
	for _, v := range values {
		if strings.Contains(strings.ToLower(v), query) {
			return true
		}
	}
	return false
}
