/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import "encoding/json"

// Room is a named subscription group.
type Room string

const (
	RoomBeamer          Room = "beamer"
	RoomReferent        Room = "referent"
	RoomReferentControl Room = "referent_control"
)

func (r Room) valid() bool {
	switch r {
	case RoomBeamer, RoomReferent, RoomReferentControl:
		return true
	}
	return false
}

// Audience is the set of rooms told about every producer update.
var Audience = []Room{RoomBeamer, RoomReferentControl}

// Event names, as used on the wire.
const (
	EventJoinRoom  = "join_room"
	EventLeaveRoom = "leave_room"

	EventError   = "error"
	EventSuccess = "success"

	EventInitQuiz     = "init_quiz"
	EventGetQuizData  = "get_quiz_data"
	EventSendQuizData = "send_quiz_data"

	EventGetQuestionNumber  = "get_question_number"
	EventSendQuestionNumber = "send_question_number"

	EventGetShowSolutions  = "get_show_solutions"
	EventSendShowSolutions = "send_show_solutions"

	EventGetCounterValue  = "get_counter_value"
	EventSendCounterValue = "send_counter_value"

	EventGetUserWithCountList  = "get_user_with_count_list"
	EventSendUserWithCountList = "send_user_with_count_list"

	EventGetScoreMode  = "get_score_mode"
	EventSendScoreMode = "send_score_mode"

	EventGetShowScoreDisplay  = "get_show_score_display"
	EventSendShowScoreDisplay = "send_show_score_display"

	EventNewMessage     = "new-message"
	EventReceiveMessage = "receive-message"
)

// Codes carried by the error and success events.
const (
	CodeInvalidData           = "INVALID_DATA"
	CodeNoQuizData            = "NO_QUIZ_DATA"
	CodeQuestionNumberInvalid = "QUESTION_NUMBER_INVALID"

	CodeUpdatedData = "UPDATED_DATA"
)

// Envelope is an outbound frame.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Inbound is a frame received from a client. Data is left raw so that each
// handler decides how strictly to decode it.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

func errorEnvelope(code string) Envelope {
	return Envelope{Event: EventError, Data: code}
}
