package models

// ScrapedMetadata carries page-level details extracted from meta tags and
// the link graph of a scraped page.
type ScrapedMetadata struct {
	Description   string   `json:"description,omitempty"`
	Author        string   `json:"author,omitempty"`
	PublishedDate string   `json:"publishedDate,omitempty"`
	WordCount     int      `json:"wordCount"`
	Links         []string `json:"links"`
}

// ScrapedContent is the normalized result of scraping a single URL.
type ScrapedContent struct {
	URL      string          `json:"url"`
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	Metadata ScrapedMetadata `json:"metadata"`
}
