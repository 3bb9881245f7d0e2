package dto

import "time"

// NewsAPIResponse is the payload of the keyword-search endpoint.
type NewsAPIResponse struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []NewsAPIArticle `json:"articles"`
	Code         string           `json:"code,omitempty"`
	Message      string           `json:"message,omitempty"`
}

type NewsAPIArticle struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	Source      NewsAPISource `json:"source"`
	PublishedAt *time.Time    `json:"publishedAt"`
}

type NewsAPISource struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SearchNewsParam holds the query of a keyword search.
type SearchNewsParam struct {
	Keywords []string
	PageSize int
}
