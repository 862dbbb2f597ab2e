package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	platformerrors "github.com/daily-aivey/soundchain-landing-page-new/internal/platform/errors"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/platform/timeouts"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/reveal"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/services/web/templates"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/signup"
)

// maxBodyBytes caps API request bodies; every payload here is tiny.
const maxBodyBytes = 64 << 10

type signupRequest struct {
	Email string `json:"email"`
}

type progressResponse struct {
	Count      int     `json:"count"`
	Goal       int     `json:"goal"`
	Percentage float64 `json:"percentage"`
}

type signupResponse struct {
	Duplicate bool             `json:"duplicate"`
	Progress  progressResponse `json:"progress"`
}

type createSessionRequest struct {
	ViewportWidth int `json:"viewport_width"`
}

type observerResponse struct {
	Element             string  `json:"element"`
	Threshold           float64 `json:"threshold"`
	BottomMarginPercent int     `json:"bottom_margin_percent"`
}

type createSessionResponse struct {
	SessionID   string             `json:"session_id"`
	DeviceClass string             `json:"device_class"`
	Observers   []observerResponse `json:"observers"`
	Progress    progressResponse   `json:"progress"`
}

type visibilityEventRequest struct {
	Element string  `json:"element"`
	Visible bool    `json:"visible"`
	Ratio   float64 `json:"ratio"`
}

type eventBatchRequest struct {
	Events []visibilityEventRequest `json:"events"`
	Scroll struct {
		OffsetY     float64 `json:"offset_y"`
		SinceLoadMS int64   `json:"since_load_ms"`
	} `json:"scroll"`
}

type eventBatchResponse struct {
	States map[string]string `json:"states"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	code := platformerrors.GetCode(err)
	var resp errorResponse
	resp.Error.Code = string(code)
	resp.Error.Message = platformerrors.GetMessage(err)
	writeJSON(w, code.HTTPStatus(), resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return platformerrors.Wrap(platformerrors.CodeRequestMalformed,
			"malformed request body", err)
	}
	return nil
}

func toProgressResponse(p signup.Progress) progressResponse {
	return progressResponse{Count: p.Count, Goal: p.Goal, Percentage: p.Percentage}
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	copyset, lang := templates.CopyFor(r.Header.Get("Accept-Language"))
	view := templates.LandingView{
		Lang: lang,
		Copy: copyset,
		Goal: s.signups.Goal(),
	}
	if p, err := s.signups.Progress(r.Context()); err == nil {
		view.Count = p.Count
		view.Percentage = p.Percentage
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Landing(view).Render(r.Context(), w); err != nil {
		log.Printf("render landing: %v", err)
	}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	p, duplicate, err := s.signups.Submit(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	if !duplicate {
		s.registry.broadcastTarget(p.Percentage)
	}
	writeJSON(w, http.StatusOK, signupResponse{
		Duplicate: duplicate,
		Progress:  toProgressResponse(p),
	})
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.signups.Progress(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(p))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	var target float64
	p, err := s.signups.Progress(r.Context())
	if err == nil {
		target = p.Percentage
	}
	sess, err := s.registry.create(req.ViewportWidth, target)
	if err != nil {
		writeError(w, err)
		return
	}
	policy := reveal.NewPolicy(sess.class)
	resp := createSessionResponse{
		SessionID:   sess.id,
		DeviceClass: string(sess.class),
		Progress:    toProgressResponse(p),
	}
	for _, el := range s.elements {
		oc := policy.ObserverConfig(el.Variant)
		resp.Observers = append(resp.Observers, observerResponse{
			Element:             el.ID,
			Threshold:           oc.Threshold,
			BottomMarginPercent: oc.BottomMarginPercent,
		})
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	sess, err := s.registry.get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req eventBatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	batch := reveal.EventBatch{
		Scroll: reveal.ScrollReport{
			OffsetY:   req.Scroll.OffsetY,
			SinceLoad: time.Duration(req.Scroll.SinceLoadMS) * time.Millisecond,
		},
	}
	for _, ev := range req.Events {
		if _, ok := s.elementIDs[ev.Element]; !ok {
			writeError(w, platformerrors.New(platformerrors.CodeSessionUnknownElement,
				fmt.Sprintf("unknown element %q", ev.Element)))
			return
		}
		batch.Events = append(batch.Events, reveal.VisibilityEvent{
			Element: ev.Element,
			Visible: ev.Visible,
			Ratio:   ev.Ratio,
		})
	}
	sess.touch()
	states, err := sess.engine.Observe(batch)
	if err != nil {
		if errors.Is(err, reveal.ErrEngineDisposed) {
			err = platformerrors.New(platformerrors.CodeSessionDisposed, "session disposed")
		}
		writeError(w, err)
		return
	}
	resp := eventBatchResponse{States: make(map[string]string, len(states))}
	for id, st := range states {
		resp.States[id] = st.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.registry.dispose(r.PathValue("id")) {
		writeError(w, platformerrors.New(platformerrors.CodeSessionNotFound, "session not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionStream serves the server-sent event stream carrying reveal
// notifications and progress animation frames for one session.
func (s *Server) handleSessionStream(w http.ResponseWriter, r *http.Request) {
	sess, err := s.registry.get(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	events, unsubscribe := sess.subscribe()
	defer func() {
		unsubscribe()
		// Restart the idle window so a just-closed page gets a full
		// grace period before the sweeper reclaims the session.
		sess.touch()
	}()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	// Seed the stream with the animator's current frame so a reconnecting
	// client does not wait for the next tick.
	frame := sess.animator.Snapshot()
	if err := writeSSE(w, "progress", progressPayload{
		Displayed: frame.Displayed,
		Settled:   frame.Settled,
	}); err != nil {
		return
	}
	flusher.Flush()

	heartbeat := time.NewTicker(timeouts.StreamHeartbeat)
	defer heartbeat.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case ev, open := <-events:
			if !open {
				return
			}
			if err := writeSSE(w, ev.Kind, ev.Data); err != nil {
				return
			}
			flusher.Flush()
			sess.touch()
		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()
			sess.touch()
		}
	}
}

func writeSSE(w http.ResponseWriter, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	return err
}

func (s *Server) handleUp(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
