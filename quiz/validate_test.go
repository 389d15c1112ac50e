package quiz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuizPackage(t *testing.T) {
	tests := map[string]struct {
		input string
		want  *QuizPackage
	}{
		"should accept a minimal quiz with empty strings": {
			input: `{"name":"","description":"","quizData":[]}`,
			want:  &QuizPackage{Name: "", Description: "", QuizData: []QuestionEntry{}},
		},
		"should accept questions with and without images": {
			input: `{"name":"Q","description":"d","quizData":[
				{"question":"1+1?","answers":[{"text":"2","isCorrect":true},{"text":"","isCorrect":false}]},
				{"question":"","image":{"base64":"aGk="},"answers":[]}
			]}`,
			want: &QuizPackage{
				Name:        "Q",
				Description: "d",
				QuizData: []QuestionEntry{
					{
						Question: "1+1?",
						Answers: []AnswerEntry{
							{Text: "2", IsCorrect: true},
							{Text: "", IsCorrect: false},
						},
					},
					{
						Question: "",
						Image:    &Image{Base64: "aGk="},
						Answers:  []AnswerEntry{},
					},
				},
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseQuizPackage([]byte(tc.input))
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseQuizPackage_Rejects(t *testing.T) {
	tests := map[string]string{
		"missing payload":           ``,
		"null payload":              `null`,
		"not an object":             `[1,2,3]`,
		"missing name":              `{"description":"","quizData":[]}`,
		"missing description":       `{"name":"","quizData":[]}`,
		"missing quizData":          `{"name":"","description":""}`,
		"null quizData":             `{"name":"","description":"","quizData":null}`,
		"name is a number":          `{"name":1,"description":"","quizData":[]}`,
		"quizData is an object":     `{"name":"","description":"","quizData":{}}`,
		"question missing":          `{"name":"","description":"","quizData":[{"answers":[]}]}`,
		"answers missing":           `{"name":"","description":"","quizData":[{"question":"q"}]}`,
		"answer text missing":       `{"name":"","description":"","quizData":[{"question":"q","answers":[{"isCorrect":true}]}]}`,
		"isCorrect missing":         `{"name":"","description":"","quizData":[{"question":"q","answers":[{"text":"a"}]}]}`,
		"isCorrect is a string":     `{"name":"","description":"","quizData":[{"question":"q","answers":[{"text":"a","isCorrect":"yes"}]}]}`,
		"image without base64":      `{"name":"","description":"","quizData":[{"question":"q","image":{},"answers":[]}]}`,
		"image base64 is a number":  `{"name":"","description":"","quizData":[{"question":"q","image":{"base64":5},"answers":[]}]}`,
		"one bad answer among many": `{"name":"","description":"","quizData":[{"question":"q","answers":[{"text":"a","isCorrect":true},{"text":"b"}]}]}`,
		"unknown field":             `{"name":"","description":"","quizData":[],"extra":true}`,
		"trailing data":             `{"name":"","description":"","quizData":[]} {}`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseQuizPackage([]byte(input))
			require.ErrorIs(t, err, ErrInvalidQuizPackage)
			require.Nil(t, got)
		})
	}
}
