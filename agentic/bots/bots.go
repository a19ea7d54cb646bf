// Package bots serves the read-only agent directory. The catalog ships
// embedded in the binary; there is no database table behind it.
package bots

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed catalog.json
var catalogFS embed.FS

// loads the embedded catalog
func NewCatalog() (*Catalog, error) {
	data, err := catalogFS.ReadFile("catalog.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded catalog: %w", err)
	}

	var list []Bot
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	byID := make(map[string]int, len(list))
	for i, b := range list {
		byID[b.ID] = i
	}

	return &Catalog{bots: list, byID: byID}, nil
}

// returns agents, optionally filtered by category and/or use-case tag.
// Empty filter values match everything.
func (c *Catalog) List(category, tag string) []Bot {
	out := make([]Bot, 0, len(c.bots))

	for _, b := range c.bots {
		if category != "" && !strings.EqualFold(b.Category, category) {
			continue
		}

		if tag != "" && !hasTag(b.UseCaseTags, tag) {
			continue
		}

		out = append(out, b)
	}

	return out
}

// returns the agent for the id
func (c *Catalog) Get(id string) (*Bot, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	bot := c.bots[i]
	return &bot, nil
}

// returns the agents referenced by the bot's related list, skipping ids
// that are no longer in the catalog
func (c *Catalog) Related(id string) ([]Bot, error) {
	bot, err := c.Get(id)
	if err != nil {
		return nil, err
	}

	related := make([]Bot, 0, len(bot.RelatedAgents))
	for _, rid := range bot.RelatedAgents {
		if i, ok := c.byID[rid]; ok {
			related = append(related, c.bots[i])
		}
	}

	return related, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
