/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

// Session is the single shared record of quiz and presentation state.
//
// It has no locking of its own: every read and write goes through the Hub,
// which processes one event at a time.
type Session struct {
	quizPackage          *QuizPackage
	currentQuestionIndex int
	showSolutions        bool
	showScoreDisplay     bool
	currentCounterValue  int64
	userWithCountList    []UserWithCount
	scoreMode            ScoreMode
}

func NewSession() *Session {
	return &Session{
		userWithCountList: []UserWithCount{},
		scoreMode:         ScoreModeGlobal,
	}
}

func (s *Session) QuizPackage() *QuizPackage { return s.quizPackage }

// SetQuizPackage replaces the quiz and rewinds to the first question.
func (s *Session) SetQuizPackage(p *QuizPackage) {
	s.quizPackage = p
	s.currentQuestionIndex = 0
}

// QuestionCount is zero while no quiz is loaded.
func (s *Session) QuestionCount() int {
	if s.quizPackage == nil {
		return 0
	}
	return len(s.quizPackage.QuizData)
}

func (s *Session) CurrentQuestionIndex() int     { return s.currentQuestionIndex }
func (s *Session) SetCurrentQuestionIndex(i int) { s.currentQuestionIndex = i }

func (s *Session) ShowSolutions() bool     { return s.showSolutions }
func (s *Session) SetShowSolutions(b bool) { s.showSolutions = b }

func (s *Session) ShowScoreDisplay() bool     { return s.showScoreDisplay }
func (s *Session) SetShowScoreDisplay(b bool) { s.showScoreDisplay = b }

func (s *Session) CurrentCounterValue() int64     { return s.currentCounterValue }
func (s *Session) SetCurrentCounterValue(v int64) { s.currentCounterValue = v }

func (s *Session) UserWithCountList() []UserWithCount     { return s.userWithCountList }
func (s *Session) SetUserWithCountList(l []UserWithCount) { s.userWithCountList = l }

func (s *Session) ScoreMode() ScoreMode     { return s.scoreMode }
func (s *Session) SetScoreMode(m ScoreMode) { s.scoreMode = m }

// State is a point-in-time copy of the session, safe to hand to other
// goroutines.
type State struct {
	QuizPackage          *QuizPackage    `json:"quizPackage"`
	CurrentQuestionIndex int             `json:"currentQuestionIndex"`
	ShowSolutions        bool            `json:"showSolutions"`
	ShowScoreDisplay     bool            `json:"showScoreDisplay"`
	CurrentCounterValue  int64           `json:"currentCounterValue"`
	UserWithCountList    []UserWithCount `json:"userWithCountList"`
	ScoreMode            ScoreMode       `json:"scoreMode"`

	// Filled in by the hub.
	Connections int          `json:"connections"`
	Rooms       map[Room]int `json:"rooms"`
}

func (s *Session) Snapshot() State {
	st := State{
		QuizPackage:          s.quizPackage,
		CurrentQuestionIndex: s.currentQuestionIndex,
		ShowSolutions:        s.showSolutions,
		ShowScoreDisplay:     s.showScoreDisplay,
		CurrentCounterValue:  s.currentCounterValue,
		ScoreMode:            s.scoreMode,
	}
	if s.userWithCountList != nil {
		st.UserWithCountList = append([]UserWithCount{}, s.userWithCountList...)
	}
	return st
}
