package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/gorilla/websocket"
)

// SocketMessage is one server-to-client message on the render socket
type SocketMessage struct {
	Type    string          `json:"type"` // "console", "tile", "pass", "complete", "error"
	Console *ConsoleMessage `json:"console,omitempty"`
	Tile    *TileUpdate     `json:"tile,omitempty"`
	Pass    *PassUpdate     `json:"pass,omitempty"`
	Result  *RenderResult   `json:"result,omitempty"`
	Error   string          `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// handleRenderSocket reads one RenderRequest from the socket and streams the render back.
// Closing the socket cancels the render.
func (s *Server) handleRenderSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading websocket: %q", err.Error())
		return
	}
	defer ws.Close()

	var req RenderRequest
	if err := ws.ReadJSON(&req); err != nil {
		log.Printf("Error reading render request: %q", err.Error())
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// The connection is write-only from here on; any read error means the client left
	go func() {
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	// gorilla connections allow one concurrent writer
	messages := make(chan SocketMessage, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		for msg := range messages {
			if err := ws.WriteJSON(msg); err != nil {
				cancel()
			}
		}
	}()
	defer func() {
		close(messages)
		<-writerDone
	}()

	send := func(msg SocketMessage) {
		select {
		case messages <- msg:
		case <-ctx.Done():
		}
	}

	if err := req.validate(); err != nil {
		send(SocketMessage{Type: "error", Error: "Invalid request: " + err.Error()})
		return
	}
	sceneObj, err := createScene(&req)
	if err != nil {
		send(SocketMessage{Type: "error", Error: err.Error()})
		return
	}

	consoleChan, webLogger := setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		for consoleMsg := range consoleChan {
			msg := consoleMsg
			select {
			case messages <- SocketMessage{Type: "console", Console: &msg}:
			default:
				// Channel full, skip message to avoid blocking
			}
		}
	}()

	progressive := newProgressiveRaytracer(sceneObj, &req, webLogger)
	progressive.SetTileCallback(func(result renderer.TileCompletionResult) {
		update, err := newTileUpdate(result)
		if err != nil {
			log.Printf("Error encoding tile: %v", err)
			return
		}
		send(SocketMessage{Type: "tile", Tile: update})
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
		send(SocketMessage{Type: "pass", Pass: update})
	}
	err = <-errChan
	close(consoleChan)
	<-consoleDone

	if err == nil && final == nil {
		err = fmt.Errorf("no final pass")
	}
	if err != nil {
		send(SocketMessage{Type: "error", Error: "Rendering failed: " + err.Error()})
		return
	}
	result, err := newRenderResult(sceneObj, final.Framebuffer, final.Stats)
	if err != nil {
		send(SocketMessage{Type: "error", Error: err.Error()})
		return
	}
	send(SocketMessage{Type: "complete", Result: result})
}
