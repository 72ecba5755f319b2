// Package inbox holds the message list logic shared by the parent and
// school views: read-state updates, search and category filtering, tab
// partitioning and read statistics. Every function is pure; callers own
// the collections.
package inbox

import (
	"slices"
	"strings"

	"github.com/johndosdos/escola/internal/model"
)

// Tab names of the message list views.
const (
	TabAll        = "all"
	TabGeneral    = "general"
	TabIndividual = "individual"
)

// Criteria is the user's current search text and selected categories.
type Criteria struct {
	Query      string
	Categories []string
}

// MarkRead returns a copy of msgs where the message with the given id is
// read. The input is never modified. An unknown id yields an equal copy.
func MarkRead(msgs []model.Message, id string) []model.Message {
	out := make([]model.Message, len(msgs))
	copy(out, msgs)
	for i := range out {
		if out[i].ID == id {
			out[i].Read = true
		}
	}
	return out
}

// Matches reports whether m passes both the text and the category
// criterion. Messages without a category never pass a non-empty category
// filter.
func Matches(m model.Message, query string, categories []string) bool {
	return matchesText(query, m.Title, m.Content, m.Sender) &&
		matchesCategory(m.Category, categories)
}

// MatchesSent is Matches for the school history, which searches title and
// content only.
func MatchesSent(m model.SentMessage, query string, categories []string) bool {
	return matchesText(query, m.Title, m.Content) &&
		matchesCategory(m.Category, categories)
}

func matchesText(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func matchesCategory(category *string, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	return category != nil && slices.Contains(selected, *category)
}

// Filter keeps the messages matching c, in their original order.
func Filter(msgs []model.Message, c Criteria) []model.Message {
	out := make([]model.Message, 0, len(msgs))
	for _, m := range msgs {
		if Matches(m, c.Query, c.Categories) {
			out = append(out, m)
		}
	}
	return out
}

// FilterSent keeps the sent messages matching c, in their original order.
func FilterSent(msgs []model.SentMessage, c Criteria) []model.SentMessage {
	out := make([]model.SentMessage, 0, len(msgs))
	for _, m := range msgs {
		if MatchesSent(m, c.Query, c.Categories) {
			out = append(out, m)
		}
	}
	return out
}

// Categories lists the distinct defined categories in order of first
// appearance.
func Categories(msgs []model.Message) []string {
	out := []string{}
	for _, m := range msgs {
		if m.Category != nil && !slices.Contains(out, *m.Category) {
			out = append(out, *m.Category)
		}
	}
	return out
}

// SentCategories is Categories for the school history.
func SentCategories(msgs []model.SentMessage) []string {
	out := []string{}
	for _, m := range msgs {
		if m.Category != nil && !slices.Contains(out, *m.Category) {
			out = append(out, *m.Category)
		}
	}
	return out
}

// UnreadCount returns how many messages are still unread.
func UnreadCount(msgs []model.Message) int {
	n := 0
	for _, m := range msgs {
		if !m.Read {
			n++
		}
	}
	return n
}
