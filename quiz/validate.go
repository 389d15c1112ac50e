/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var ErrInvalidQuizPackage = errors.New("invalid quiz package")

var validate = validator.New()

// The wire shapes use pointers so that a missing field can be told apart
// from an empty string or a false flag.
type quizPackageInput struct {
	Name        *string              `json:"name" validate:"required"`
	Description *string              `json:"description" validate:"required"`
	QuizData    []questionEntryInput `json:"quizData" validate:"required,dive"`
}

type questionEntryInput struct {
	Question *string            `json:"question" validate:"required"`
	Image    *imageInput        `json:"image"`
	Answers  []answerEntryInput `json:"answers" validate:"required,dive"`
}

type imageInput struct {
	Base64 *string `json:"base64" validate:"required"`
}

type answerEntryInput struct {
	Text      *string `json:"text" validate:"required"`
	IsCorrect *bool   `json:"isCorrect" validate:"required"`
}

// ParseQuizPackage decodes and validates a candidate quiz package. Any shape
// mismatch rejects the whole payload.
func ParseQuizPackage(data []byte) (*QuizPackage, error) {
	if trimmed := bytes.TrimSpace(data); len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, fmt.Errorf("%w: payload is empty", ErrInvalidQuizPackage)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var in quizPackageInput
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuizPackage, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidQuizPackage)
	}

	if err := validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuizPackage, err)
	}

	return &QuizPackage{
		Name:        *in.Name,
		Description: *in.Description,
		QuizData: lo.Map(in.QuizData, func(q questionEntryInput, _ int) QuestionEntry {
			entry := QuestionEntry{
				Question: *q.Question,
				Answers: lo.Map(q.Answers, func(a answerEntryInput, _ int) AnswerEntry {
					return AnswerEntry{Text: *a.Text, IsCorrect: *a.IsCorrect}
				}),
			}
			if q.Image != nil {
				entry.Image = &Image{Base64: *q.Image.Base64}
			}
			return entry
		}),
	}, nil
}
