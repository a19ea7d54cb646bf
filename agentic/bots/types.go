package bots

import "errors"

// describes one hosted agent workspace in the directory
type Bot struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Icon          string   `json:"icon"`
	Description   string   `json:"description"`
	EmbedType     string   `json:"embed_type"`
	EmbedURL      string   `json:"embed_url"`
	IsNew         bool     `json:"is_new,omitempty"`
	Popularity    int      `json:"popularity,omitempty"`
	UseCaseTags   []string `json:"use_case_tags"`
	Complexity    int      `json:"complexity"`
	RelatedAgents []string `json:"related_agents"`
}

// read-only agent directory loaded once at startup
type Catalog struct {
	bots []Bot
	byID map[string]int
}

// returned when no agent matches the id
var ErrNotFound = errors.New("agent not found")
