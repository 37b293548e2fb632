package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "pass", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a built-in scene progressively and streams console output, tiles,
// intermediate passes and the final image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)
	ctx := r.Context()

	// Single writer goroutine, everything else sends through sseEventChan
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}
	sceneObj, err := createScene(req)
	if err != nil {
		sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}

	consoleChan, webLogger := setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	progressive := newProgressiveRaytracer(sceneObj, req, webLogger)
	progressive.SetTileCallback(func(result renderer.TileCompletionResult) {
		update, err := newTileUpdate(result)
		if err != nil {
			log.Printf("Error encoding tile: %v", err)
			return
		}
		if data, err := json.Marshal(update); err == nil {
			sendEvent(ctx, sseEventChan, "tile", string(data))
		}
	})

	var final *renderer.PassResult
	passChan, errChan := progressive.RenderProgressive(ctx)
	for pass := range passChan {
		if pass.IsLast {
			final = &pass
			continue
		}
		update, err := newPassUpdate(pass)
		if err != nil {
			log.Printf("Error encoding pass: %v", err)
			continue
		}
		if data, err := json.Marshal(update); err == nil {
			sendEvent(ctx, sseEventChan, "pass", string(data))
		}
	}
	err = <-errChan

	// Rendering has stopped, so nothing writes to the console any more
	close(consoleChan)
	<-consoleDone

	if err == nil && final == nil {
		err = fmt.Errorf("no final pass")
	}
	if err != nil {
		sendEvent(ctx, sseEventChan, "error", fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	result, err := newRenderResult(sceneObj, final.Framebuffer, final.Stats)
	if err != nil {
		sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		sendEvent(ctx, sseEventChan, "error", err.Error())
		return
	}
	sendEvent(ctx, sseEventChan, "complete", string(data))
}

// newProgressiveRaytracer spreads the request's samples over at most req.Passes passes
func newProgressiveRaytracer(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) *renderer.ProgressiveRaytracer {
	config := renderer.DefaultProgressiveConfig()
	config.MaxPasses = req.Passes
	return renderer.NewProgressiveRaytracer(sceneObj, config, logger)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes events until the channel closes or the client disconnects
func writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for event := range sseEventChan {
		if ctx.Err() != nil {
			// Client disconnected, drain without writing
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// sendEvent queues an event unless the client has gone away
func sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType, data string) {
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: data}:
	case <-ctx.Done():
	}
}
