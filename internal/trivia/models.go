package trivia

type Category struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

type Question struct {
	ID         int64  `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   int64  `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// CategoryMap formats categories as the id -> type object the client expects.
func CategoryMap(cats []Category) map[int64]string {
	out := make(map[int64]string, len(cats))
	for _, c := range cats {
		out[c.ID] = c.Type
	}
	return out
}
