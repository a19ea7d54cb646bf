package bots

import "codeberg.org/agentic/server/agentic/bots"

// ListResponse wraps the filtered catalog
type ListResponse struct {
	Bots []bots.Bot `json:"bots"`
}

// DetailResponse carries one agent plus its related entries
type DetailResponse struct {
	Bot     *bots.Bot  `json:"bot"`
	Related []bots.Bot `json:"related"`
}
