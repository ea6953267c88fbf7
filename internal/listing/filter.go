package listing

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter replaces the search query. Starting a search remembers the
// cursor; clearing it puts the cursor back.
func (l *List) SetFilter(query string) {
	was := strings.TrimSpace(l.Filter) != ""
	now := strings.TrimSpace(query) != ""
	if now && !was {
		l.LastCursor = l.Cursor
	}
	l.Filter = query
	l.applyFilter()

	switch {
	case now:
		l.Cursor = bestMatch(l.Items, query)
	case was:
		l.Cursor = 0
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		}
		l.LastCursor = -1
	}
}

// TypeFilter appends text to the query.
func (l *List) TypeFilter(text string) bool {
	if text == "" {
		return false
	}
	l.SetFilter(l.Filter + text)
	return true
}

// EraseFilter drops the last rune of the query.
func (l *List) EraseFilter() bool {
	runes := []rune(l.Filter)
	if len(runes) == 0 {
		return false
	}
	l.SetFilter(string(runes[:len(runes)-1]))
	return true
}

// ClearFilter empties the query.
func (l *List) ClearFilter() bool {
	if l.Filter == "" {
		return false
	}
	l.SetFilter("")
	return true
}

func (l *List) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter)
	if len(l.Items) == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = min(max(l.Cursor, 0), len(l.Items)-1)
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// haystack is what a query is matched against: the label followed by the
// detail (title and author for documents).
func haystack(item Item) string {
	if item.Detail == "" {
		return item.Label
	}
	return item.Label + " " + item.Detail
}

// FilterItems keeps the items whose label or detail fuzzily match query, in
// their original order. A blank query keeps everything.
func FilterItems(items []Item, query string) []Item {
	query = strings.TrimSpace(query)
	if query == "" {
		return CloneItems(items)
	}
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if fuzzy.MatchNormalizedFold(query, haystack(item)) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// bestMatch picks the row the cursor should land on: a label starting with
// the query wins, otherwise the closest fuzzy match.
func bestMatch(items []Item, query string) int {
	query = strings.TrimSpace(query)
	if len(items) == 0 || query == "" {
		return 0
	}
	lower := strings.ToLower(query)
	targets := make([]string, len(items))
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) {
			return i
		}
		targets[i] = haystack(item)
	}
	idx, dist := 0, -1
	for _, rank := range fuzzy.RankFindNormalizedFold(query, targets) {
		if dist < 0 || rank.Distance < dist || (rank.Distance == dist && rank.OriginalIndex < idx) {
			idx, dist = rank.OriginalIndex, rank.Distance
		}
	}
	return idx
}
