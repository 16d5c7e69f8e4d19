package trivia

import "strconv"

const QuestionsPerPage = 10

// ParsePage reads a 1-based page number. Anything missing, non-numeric or
// below 1 falls back to the first page.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Paginate returns the window of items for page. Out of range pages yield an
// empty, non-nil slice.
func Paginate[T any](page int, items []T) []T {
	if page < 1 {
		page = 1
	}
	// (page-1)*QuestionsPerPage can overflow, so check the page count first
	if page-1 >= (len(items)+QuestionsPerPage-1)/QuestionsPerPage {
		return []T{}
	}
	start := (page - 1) * QuestionsPerPage
	end := start + QuestionsPerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
