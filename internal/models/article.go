package models

// Article is a deduplicated news item, keyed by its source URL.
// Metadata is captured from the first user who bookmarks the URL.
type Article struct {
	ID          int64  `json:"id"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URLToImage  string `json:"urlToImage"`
	SourceName  string `json:"sourceName"`
}
