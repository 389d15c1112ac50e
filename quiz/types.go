/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

// QuizPackage is a complete quiz as authored by the presenter. It is only
// ever replaced wholesale.
type QuizPackage struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	QuizData    []QuestionEntry `json:"quizData"`
}

type QuestionEntry struct {
	Question string        `json:"question"`
	Image    *Image        `json:"image,omitempty"`
	Answers  []AnswerEntry `json:"answers"`
}

type Image struct {
	Base64 string `json:"base64"`
}

type AnswerEntry struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

// UserWithCount is one row of the per-user score list. Usernames are not
// required to be unique.
type UserWithCount struct {
	Username string `json:"username"`
	Count    int64  `json:"count"`
}

// ScoreMode selects which score representation the audience sees.
type ScoreMode string

const (
	ScoreModeGlobal ScoreMode = "GLOBAL"
	ScoreModeUser   ScoreMode = "USER"
)
