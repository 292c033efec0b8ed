package content

import (
	"gorm.io/gorm"

	"portfolio/models"
)

// ResolveAuthors attaches author display names to a slice of articles.
// Distinct author ids are collected and looked up in one IN query
// instead of one lookup per row. A missing profile or a failed lookup
// degrades to an empty name, never an error.
func ResolveAuthors(db *gorm.DB, articles []models.Article) []models.Article {
	ids := make([]string, 0, len(articles))
	seen := make(map[string]bool)
	for _, a := range articles {
		if a.AuthorID != "" && !seen[a.AuthorID] {
			seen[a.AuthorID] = true
			ids = append(ids, a.AuthorID)
		}
	}

	names := authorNames(db, ids)
	for i := range articles {
		articles[i].AuthorName = names[articles[i].AuthorID]
	}
	return articles
}

// ResolveKBAuthors is ResolveAuthors for knowledge-base articles.
func ResolveKBAuthors(db *gorm.DB, articles []models.KBArticle) []models.KBArticle {
	ids := make([]string, 0, len(articles))
	seen := make(map[string]bool)
	for _, a := range articles {
		if a.AuthorID != "" && !seen[a.AuthorID] {
			seen[a.AuthorID] = true
			ids = append(ids, a.AuthorID)
		}
	}

	names := authorNames(db, ids)
	for i := range articles {
		articles[i].AuthorName = names[articles[i].AuthorID]
	}
	return articles
}

func authorNames(db *gorm.DB, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names
	}

	var profiles []models.Profile
	if err := db.Where("id IN ?", ids).Find(&profiles).Error; err != nil {
		return names
	}
	for _, p := range profiles {
		names[p.ID] = p.FullName
	}
	return names
}
