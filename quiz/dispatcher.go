/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package quiz

import (
	"encoding/json"
	"math"
)

// Logger matches the verbose-gated logf used by the rest of the server.
type Logger func(format string, args ...any)

func nopLogger(string, ...any) {}

// Dispatcher maps inbound events to session mutations and outbound events.
// It is not safe for concurrent use; the Hub is its only caller.
type Dispatcher struct {
	session *Session
	router  *Router
	logf    Logger
}

func NewDispatcher(session *Session, router *Router, logf Logger) *Dispatcher {
	if logf == nil {
		logf = nopLogger
	}
	return &Dispatcher{
		session: session,
		router:  router,
		logf:    logf,
	}
}

func (d *Dispatcher) Session() *Session { return d.session }
func (d *Dispatcher) Router() *Router   { return d.router }

func (d *Dispatcher) Connect(c Conn) {
	d.router.Add(c)
	d.logf("ROOMS: %s connected (%d total)", c.ID(), d.router.Count())
}

func (d *Dispatcher) Disconnect(c Conn, reason string) {
	rooms := d.router.Rooms(c)
	d.router.Remove(c)
	d.logf("ROOMS: %s disconnected from %v: %s (%d total)", c.ID(), rooms, reason, d.router.Count())
}

// Handle processes one inbound event to completion, including every
// broadcast it causes.
func (d *Dispatcher) Handle(c Conn, in Inbound) {
	// An absent payload means null.
	if len(in.Data) == 0 {
		in.Data = json.RawMessage("null")
	}

	switch in.Event {
	case EventJoinRoom:
		d.joinRoom(c, in.Data)
	case EventLeaveRoom:
		d.leaveRoom(c, in.Data)

	case EventInitQuiz:
		d.initQuiz(c, in.Data)
	case EventGetQuizData:
		if d.session.QuizPackage() == nil {
			d.reply(c, errorEnvelope(CodeNoQuizData))
			return
		}
		d.reply(c, Envelope{Event: EventSendQuizData, Data: d.session.QuizPackage()})

	case EventSendQuestionNumber:
		d.setQuestionNumber(c, in.Data)
	case EventGetQuestionNumber:
		d.reply(c, Envelope{Event: EventSendQuestionNumber, Data: d.session.CurrentQuestionIndex()})

	case EventSendShowSolutions:
		d.setShowSolutions(c, in.Data)
	case EventGetShowSolutions:
		d.reply(c, Envelope{Event: EventSendShowSolutions, Data: d.session.ShowSolutions()})

	case EventSendCounterValue:
		var v int64
		if d.decodeLenient(c, in, &v) {
			d.session.SetCurrentCounterValue(v)
			d.publish(Envelope{Event: EventSendCounterValue, Data: v})
		}
	case EventGetCounterValue:
		d.reply(c, Envelope{Event: EventSendCounterValue, Data: d.session.CurrentCounterValue()})

	case EventSendUserWithCountList:
		var l []UserWithCount
		if d.decodeLenient(c, in, &l) {
			d.session.SetUserWithCountList(l)
			d.publish(Envelope{Event: EventSendUserWithCountList, Data: l})
		}
	case EventGetUserWithCountList:
		d.reply(c, Envelope{Event: EventSendUserWithCountList, Data: d.session.UserWithCountList()})

	case EventSendScoreMode:
		var m ScoreMode
		if d.decodeLenient(c, in, &m) {
			d.session.SetScoreMode(m)
			d.publish(Envelope{Event: EventSendScoreMode, Data: m})
		}
	case EventGetScoreMode:
		d.reply(c, Envelope{Event: EventSendScoreMode, Data: d.session.ScoreMode()})

	case EventSendShowScoreDisplay:
		var b bool
		if d.decodeLenient(c, in, &b) {
			d.session.SetShowScoreDisplay(b)
			d.publish(Envelope{Event: EventSendShowScoreDisplay, Data: b})
		}
	case EventGetShowScoreDisplay:
		d.reply(c, Envelope{Event: EventSendShowScoreDisplay, Data: d.session.ShowScoreDisplay()})

	case EventNewMessage:
		d.relayChat(c, in.Data)

	default:
		d.logf("QUIZ: Ignoring unknown event %q from %s", in.Event, c.ID())
	}
}

func (d *Dispatcher) joinRoom(c Conn, data json.RawMessage) {
	var room Room
	if err := json.Unmarshal(data, &room); err != nil || !room.valid() {
		d.logf("ROOMS: %s tried to join unknown room %s", c.ID(), string(data))
		return
	}
	d.router.Join(c, room)
	d.logf("ROOMS: %s joined %s", c.ID(), room)
}

func (d *Dispatcher) leaveRoom(c Conn, data json.RawMessage) {
	var room Room
	if err := json.Unmarshal(data, &room); err != nil || !room.valid() {
		d.logf("ROOMS: %s tried to leave unknown room %s", c.ID(), string(data))
		return
	}
	d.router.Leave(c, room)
	d.logf("ROOMS: %s left %s", c.ID(), room)
}

func (d *Dispatcher) initQuiz(c Conn, data json.RawMessage) {
	p, err := ParseQuizPackage(data)
	if err != nil {
		d.logf("QUIZ: Rejected quiz from %s: %v", c.ID(), err)
		d.reply(c, errorEnvelope(CodeInvalidData))
		return
	}

	d.session.SetQuizPackage(p)
	d.logf("QUIZ: %s loaded quiz %q with %d questions", c.ID(), p.Name, len(p.QuizData))

	d.reply(c, Envelope{Event: EventSuccess, Data: CodeUpdatedData})
	d.publish(Envelope{Event: EventSendQuizData, Data: p})
}

// setQuestionNumber accepts 0 <= n <= count. The upper bound is inclusive;
// clients treat count-1 as the last question.
func (d *Dispatcher) setQuestionNumber(c Conn, data json.RawMessage) {
	if d.session.QuizPackage() == nil {
		d.reply(c, errorEnvelope(CodeNoQuizData))
		return
	}

	var f *float64
	if err := json.Unmarshal(data, &f); err != nil || f == nil ||
		math.Trunc(*f) != *f || *f < 0 || *f > float64(d.session.QuestionCount()) {
		d.reply(c, errorEnvelope(CodeQuestionNumberInvalid))
		return
	}

	n := int(*f)
	d.session.SetCurrentQuestionIndex(n)
	d.publish(Envelope{Event: EventSendQuestionNumber, Data: n})
}

func (d *Dispatcher) setShowSolutions(c Conn, data json.RawMessage) {
	if d.session.QuizPackage() == nil {
		d.reply(c, errorEnvelope(CodeNoQuizData))
		return
	}

	var b bool
	if !d.decodeLenient(c, Inbound{Event: EventSendShowSolutions, Data: data}, &b) {
		return
	}
	d.session.SetShowSolutions(b)
	d.publish(Envelope{Event: EventSendShowSolutions, Data: b})
}

func (d *Dispatcher) relayChat(c Conn, data json.RawMessage) {
	var text *string
	if err := json.Unmarshal(data, &text); err != nil || text == nil {
		d.logf("CHAT: Ignoring non-text message from %s", c.ID())
		return
	}
	dropped := d.router.BroadcastExcept(c, Envelope{Event: EventReceiveMessage, Data: *text})
	d.logDropped(EventReceiveMessage, dropped)
}

// decodeLenient decodes a payload for events that never report errors.
// Payloads that do not fit the field's type are dropped without a reply;
// null decodes to the zero value.
func (d *Dispatcher) decodeLenient(c Conn, in Inbound, v any) bool {
	if err := json.Unmarshal(in.Data, v); err != nil {
		d.logf("QUIZ: Dropping %s from %s: %v", in.Event, c.ID(), err)
		return false
	}
	return true
}

func (d *Dispatcher) reply(c Conn, env Envelope) {
	if !c.Send(env) {
		d.logDropped(env.Event, []Conn{c})
	}
}

func (d *Dispatcher) publish(env Envelope) {
	d.logDropped(env.Event, d.router.Broadcast(Audience, env))
}

func (d *Dispatcher) logDropped(event string, dropped []Conn) {
	for _, c := range dropped {
		d.logf("ROOMS: Dropped %s for slow client %s", event, c.ID())
	}
}
