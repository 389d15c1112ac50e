/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/quizbox/quiz"
)

const qrSize = 320

func serveState(cfg *Config, hub *quiz.Hub, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		st, err := hub.Snapshot(ctx)
		if err != nil {
			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			return
		}

		writeJSON(cfg, w, r, st, errs)
	}
}

func serveScores(cfg *Config, hub *quiz.Hub, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		st, err := hub.Snapshot(ctx)
		if err != nil {
			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			return
		}

		writeJSON(cfg, w, r, struct {
			ScoreMode    quiz.ScoreMode    `json:"scoreMode"`
			CounterValue int64             `json:"counterValue"`
			Ranking      []quiz.RankedUser `json:"ranking"`
		}{
			ScoreMode:    st.ScoreMode,
			CounterValue: st.CurrentCounterValue,
			Ranking:      quiz.Rank(st.UserWithCountList),
		}, errs)
	}
}

func writeJSON(cfg *Config, w http.ResponseWriter, r *http.Request, v any, errs chan<- error) {
	startTime := time.Now()

	data, err := json.Marshal(v)
	if err != nil {
		errs <- err
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	securityHeaders(cfg, w)

	written, err := w.Write(data)
	if err != nil {
		errs <- err

		return
	}

	logf(cfg, "SERVE: %s (%s) to %s in %s",
		r.URL.Path,
		humanReadableSize(int64(written)),
		realIP(r),
		time.Since(startTime).Round(time.Microsecond),
	)
}

// serveQR renders a QR code pointing at the home page, for showing on the
// projector.
func serveQR(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		scheme := cfg.scheme()
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + cfg.prefix + "/"

		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			errs <- err
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		written, err := w.Write(png)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: QR code for %s (%s) to %s in %s",
			url,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// registerQuiz sets up routes so that:
//   - $prefix/ws      → websocket event channel
//   - $prefix/qr      → PNG QR code for the home page
//   - $prefix/state   → JSON snapshot of the session
//   - $prefix/scores  → JSON ranking of the per-user scores
func registerQuiz(cfg *Config, hub *quiz.Hub, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+"/ws", hub.ServeWS(cfg.quizOptions()))

	mux.GET(cfg.prefix+"/qr", serveQR(cfg, errs))

	mux.GET(cfg.prefix+"/state", serveState(cfg, hub, errs))

	mux.GET(cfg.prefix+"/scores", serveScores(cfg, hub, errs))
}
