package admin

import (
	"encoding/json"
	"strings"

	"portfolio/content"
	"portfolio/models"
)

// ArticleForm is the editor payload for blog posts and case studies.
// Tags arrive as comma-separated text and metrics as raw JSON text,
// exactly as they are authored.
type ArticleForm struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	CoverImageURL string `json:"cover_image_url"`
	Tags          string `json:"tags"`
	Published     bool   `json:"published"`
	Type          string `json:"type"`
	Client        string `json:"client"`
	Industry      string `json:"industry"`
	Metrics       string `json:"metrics"`
}

// Validate rejects the save before any store call: title and content
// are always required, and case-study metrics text must parse as a
// JSON object when present. Slug is checked after derivation, in Apply.
func (f *ArticleForm) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(f.Content) == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return &content.ValidationError{Fields: missing}
	}

	if f.Type != "" && f.Type != models.TypeBlog && f.Type != models.TypeCaseStudy {
		return &content.ValidationError{Message: "unknown article type"}
	}

	if f.Type == models.TypeCaseStudy && strings.TrimSpace(f.Metrics) != "" {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(f.Metrics), &parsed); err != nil {
			return &content.ValidationError{Message: "metrics must be a valid JSON object"}
		}
	}

	return nil
}

// Apply copies the form onto an article. In create mode a blank slug is
// derived from the title; a slug the author typed is kept verbatim, and
// updates never re-derive it, so manual edits are never clobbered.
func (f *ArticleForm) Apply(article *models.Article, createMode bool) {
	article.Title = strings.TrimSpace(f.Title)
	article.Excerpt = strings.TrimSpace(f.Excerpt)
	article.Content = strings.TrimSpace(f.Content)
	article.CoverImageURL = strings.TrimSpace(f.CoverImageURL)
	article.Tags = ParseTags(f.Tags)
	article.Published = f.Published

	slug := strings.TrimSpace(f.Slug)
	if createMode && slug == "" {
		slug = content.Slugify(f.Title)
	}
	article.Slug = slug

	if f.Type != "" {
		article.Type = f.Type
	} else if article.Type == "" {
		article.Type = models.TypeBlog
	}

	if article.Type == models.TypeCaseStudy {
		article.Client = strings.TrimSpace(f.Client)
		article.Industry = strings.TrimSpace(f.Industry)
		article.Metrics = strings.TrimSpace(f.Metrics)
	} else {
		article.Client = ""
		article.Industry = ""
		article.Metrics = ""
	}
}

// KBForm is the knowledge-base editor payload; category replaces the
// type/case-study fields.
type KBForm struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Excerpt       string `json:"excerpt"`
	Content       string `json:"content"`
	Category      string `json:"category"`
	CoverImageURL string `json:"cover_image_url"`
	Published     bool   `json:"published"`
}

func (f *KBForm) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(f.Content) == "" {
		missing = append(missing, "content")
	}
	if strings.TrimSpace(f.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return &content.ValidationError{Fields: missing}
	}
	return nil
}

func (f *KBForm) Apply(article *models.KBArticle, createMode bool) {
	article.Title = strings.TrimSpace(f.Title)
	article.Excerpt = strings.TrimSpace(f.Excerpt)
	article.Content = strings.TrimSpace(f.Content)
	article.Category = strings.TrimSpace(f.Category)
	article.CoverImageURL = strings.TrimSpace(f.CoverImageURL)
	article.Published = f.Published

	slug := strings.TrimSpace(f.Slug)
	if createMode && slug == "" {
		slug = content.Slugify(f.Title)
	}
	article.Slug = slug
}

// ParseTags splits comma-separated tag text into a trimmed, non-empty
// list. Order is kept as authored.
func ParseTags(tags string) []string {
	var parsed []string
	for _, tag := range strings.Split(tags, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			parsed = append(parsed, tag)
		}
	}
	return parsed
}
