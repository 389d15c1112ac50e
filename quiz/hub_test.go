package quiz

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
)

type wsClient struct {
	t    *testing.T
	conn *websocket.Conn
}

func startHub(t *testing.T) (*Hub, string) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(t.Logf)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.Run(ctx)
	}()

	mux := httprouter.New()
	mux.GET("/ws", hub.ServeWS(Options{}))
	srv := httptest.NewServer(mux)

	t.Cleanup(func() {
		cancel()
		<-done
		srv.Close()
	})

	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string, rooms ...Room) *wsClient {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	c := &wsClient{t: t, conn: conn}
	for _, room := range rooms {
		c.send(EventJoinRoom, room)
	}
	// A round trip guarantees the joins have been processed.
	c.send(EventGetQuestionNumber, nil)
	c.expect(EventSendQuestionNumber)

	return c
}

func (c *wsClient) send(event string, data any) {
	c.t.Helper()
	require.NoError(c.t, c.conn.WriteJSON(Envelope{Event: event, Data: data}))
}

func (c *wsClient) sendRaw(event, data string) {
	c.t.Helper()
	frame := `{"event":"` + event + `","data":` + data + `}`
	require.NoError(c.t, c.conn.WriteMessage(websocket.TextMessage, []byte(frame)))
}

func (c *wsClient) next() Inbound {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var in Inbound
	require.NoError(c.t, c.conn.ReadJSON(&in))
	return in
}

func (c *wsClient) expect(event string) json.RawMessage {
	c.t.Helper()
	in := c.next()
	require.Equal(c.t, event, in.Event)
	return in.Data
}

// quiet asserts that nothing arrives within a short window.
func (c *wsClient) quiet() {
	c.t.Helper()
	require.NoError(c.t, c.conn.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := c.conn.ReadMessage()
	require.Error(c.t, err)
}

func TestHub_InitializeQuizScenario(t *testing.T) {
	_, url := startHub(t)
	referent := dial(t, url, RoomReferent)
	beamer := dial(t, url, RoomBeamer)

	referent.sendRaw(EventInitQuiz, scenarioQuiz)

	require.JSONEq(t, `"UPDATED_DATA"`, string(referent.expect(EventSuccess)))
	require.JSONEq(t, scenarioQuiz, string(beamer.expect(EventSendQuizData)))

	other := dial(t, url)
	other.send(EventGetQuestionNumber, nil)
	require.JSONEq(t, `0`, string(other.expect(EventSendQuestionNumber)))
}

func TestHub_NoQuizDataScenario(t *testing.T) {
	_, url := startHub(t)
	c := dial(t, url)

	c.send(EventGetQuizData, nil)

	require.JSONEq(t, `"NO_QUIZ_DATA"`, string(c.expect(EventError)))
	c.quiet()
}

func TestHub_QuestionBoundaryScenario(t *testing.T) {
	_, url := startHub(t)
	control := dial(t, url, RoomReferentControl)

	control.sendRaw(EventInitQuiz, scenarioQuiz)
	control.expect(EventSuccess)
	control.expect(EventSendQuizData)

	control.send(EventSendQuestionNumber, 1)
	require.JSONEq(t, `1`, string(control.expect(EventSendQuestionNumber)))

	control.send(EventSendQuestionNumber, 2)
	require.JSONEq(t, `"QUESTION_NUMBER_INVALID"`, string(control.expect(EventError)))

	control.send(EventSendQuestionNumber, -1)
	require.JSONEq(t, `"QUESTION_NUMBER_INVALID"`, string(control.expect(EventError)))
}

func TestHub_NegativeCounterScenario(t *testing.T) {
	hub, url := startHub(t)
	control := dial(t, url, RoomReferentControl)
	beamer := dial(t, url, RoomBeamer)
	referent := dial(t, url, RoomReferent)

	control.send(EventSendCounterValue, -50)

	require.JSONEq(t, `-50`, string(beamer.expect(EventSendCounterValue)))
	require.JSONEq(t, `-50`, string(control.expect(EventSendCounterValue)))

	referent.send(EventGetCounterValue, nil)
	require.JSONEq(t, `-50`, string(referent.expect(EventSendCounterValue)))

	st, err := hub.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(-50), st.CurrentCounterValue)
	require.Nil(t, st.QuizPackage)
}

func TestHub_MalformedFramesKeepConnectionOpen(t *testing.T) {
	_, url := startHub(t)
	c := dial(t, url)

	require.NoError(t, c.conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	c.send(EventGetCounterValue, nil)

	require.JSONEq(t, `0`, string(c.expect(EventSendCounterValue)))
}

func TestHub_DisconnectDropsMembership(t *testing.T) {
	hub, url := startHub(t)
	control := dial(t, url, RoomReferentControl)
	gone := dial(t, url, RoomBeamer)

	st, err := hub.Snapshot(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, st.Connections)
	require.Equal(t, map[Room]int{RoomBeamer: 1, RoomReferent: 0, RoomReferentControl: 1}, st.Rooms)

	require.NoError(t, gone.conn.Close())

	require.Eventually(t, func() bool {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		st, err := hub.Snapshot(ctx)
		return err == nil && st.Rooms[RoomBeamer] == 0 && st.Connections == 1
	}, 5*time.Second, 10*time.Millisecond)

	control.send(EventSendCounterValue, 3)
	require.JSONEq(t, `3`, string(control.expect(EventSendCounterValue)))
}

func TestHub_SnapshotAfterShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(nil)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.Run(ctx)
	}()

	cancel()
	<-done

	_, err := hub.Snapshot(context.Background())
	require.ErrorIs(t, err, context.Canceled)
}
