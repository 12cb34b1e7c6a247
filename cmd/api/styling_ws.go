package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"chartsmith/internal/styling"
)

const (
	stylingWSWriteWait = 10 * time.Second
	stylingWSPongWait  = 60 * time.Second
)

// Ping cadence; a variable so tests can shorten it.
var stylingWSPingEvery = (stylingWSPongWait * 9) / 10

var stylingWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type stylingWSInbound struct {
	Type  string         `json:"type"` // "edit" or "flush"
	Patch *styling.Patch `json:"patch,omitempty"`
}

type stylingWSOutbound struct {
	Type    string                `json:"type"`
	Styling *styling.ChartStyling `json:"styling,omitempty"`
	Pending bool                  `json:"pending,omitempty"`
	Message string                `json:"message,omitempty"`
}

// handleStylingWS runs a live styling edit session over a websocket.
// Every "edit" message applies immediately and schedules the debounced
// save; closing the socket tears the session down, which flushes any
// pending edits before the connection goes away.
func (s *apiServer) handleStylingWS(w http.ResponseWriter, r *http.Request) {
	chartID := strings.TrimSpace(r.URL.Query().Get("chart_id"))
	if chartID == "" {
		http.Error(w, "chart_id is required", http.StatusBadRequest)
		return
	}
	rec, err := s.stores.charts.Get(r.Context(), chartID)
	if err != nil {
		http.Error(w, "chart not found", http.StatusNotFound)
		return
	}

	conn, err := stylingWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctrl := s.sessionFor(r, rec)
	defer func() {
		// Teardown flush runs on a fresh context; the request context is
		// already done once the client disconnects.
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.sessions.Close(flushCtx, chartID); err != nil {
			log.Printf("styling ws %s: teardown flush: %v", chartID, err)
		}
	}()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	if err := conn.SetReadDeadline(time.Now().Add(stylingWSPongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(stylingWSPongWait))
	})

	// All writes, pings included, go through the writer goroutine; the
	// connection supports only one concurrent writer.
	writeCh := make(chan stylingWSOutbound, 32)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(stylingWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(stylingWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(stylingWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()

	live := ctrl.Live()
	pushStylingWS(writeCh, stylingWSOutbound{Type: "session", Styling: &live})

	for {
		var in stylingWSInbound
		if err := conn.ReadJSON(&in); err != nil {
			cancel()
			<-writerDone
			return
		}
		switch in.Type {
		case "edit":
			if in.Patch == nil || in.Patch.IsEmpty() {
				continue
			}
			ctrl.Apply(*in.Patch)
			cur := ctrl.Live()
			pushStylingWS(writeCh, stylingWSOutbound{Type: "applied", Styling: &cur, Pending: ctrl.HasPending()})
		case "flush":
			out := stylingWSOutbound{Type: "flushed"}
			if err := ctrl.Flush(ctx); err != nil {
				out.Type = "error"
				out.Message = "failed to save styling"
				out.Pending = true
			}
			pushStylingWS(writeCh, out)
		}
	}
}

func pushStylingWS(writeCh chan stylingWSOutbound, out stylingWSOutbound) {
	if writeCh == nil {
		return
	}
	select {
	case writeCh <- out:
		return
	default:
	}
	select {
	case <-writeCh:
	default:
	}
	select {
	case writeCh <- out:
	default:
	}
}
