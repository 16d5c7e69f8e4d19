package storage

import "github.com/ArtemMoroz51/trivia-api/internal/trivia"

type categoryRow struct {
	ID   int64  `gorm:"primaryKey"`
	Type string `gorm:"type:text;not null"`
}

func (categoryRow) TableName() string { return "categories" }

func (r categoryRow) toCategory() trivia.Category {
	return trivia.Category{ID: r.ID, Type: r.Type}
}

type questionRow struct {
	ID          int64       `gorm:"primaryKey"`
	Question    string      `gorm:"type:text;not null"`
	Answer      string      `gorm:"type:text;not null"`
	CategoryID  int64       `gorm:"column:category;not null;index"`
	CategoryRef categoryRow `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Difficulty  int         `gorm:"not null"`
}

func (questionRow) TableName() string { return "questions" }

func (r questionRow) toQuestion() trivia.Question {
	return trivia.Question{
		ID:         r.ID,
		Question:   r.Question,
		Answer:     r.Answer,
		Category:   r.CategoryID,
		Difficulty: r.Difficulty,
	}
}

func toQuestions(rows []questionRow) []trivia.Question {
	out := make([]trivia.Question, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toQuestion())
	}
	return out
}
