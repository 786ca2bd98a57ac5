package present

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
html, body { margin: 0; height: 100%; background: #000; }
img { display: block; width: 100vw; height: 100vh; object-fit: contain; }
</style>
</head>
<body>
<img id="frame" src="/frame.png" alt="">
<script>
const frame = document.getElementById("frame");
const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
ws.onmessage = (e) => {
  const state = JSON.parse(e.data);
  frame.src = "/frame.png?v=" + state.version;
  document.title = "{{.Title}} (" + (state.slide + 1) + "/" + state.total + ")";
};
const keys = {
  ArrowRight: "next", ArrowDown: "next", PageDown: "next", " ": "next",
  ArrowLeft: "prev", ArrowUp: "prev", PageUp: "prev",
  Home: "first", End: "last", r: "run",
};
document.addEventListener("keydown", (e) => {
  const cmd = keys[e.key];
  if (cmd && ws.readyState === WebSocket.OPEN) {
    e.preventDefault();
    ws.send(cmd);
  }
});
frame.addEventListener("click", () => ws.send("next"));
</script>
</body>
</html>
`))

type client struct {
	id   string
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *client) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(v)
}

func (c *client) write(v any) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

// Handler serves the presenter page, the latest frame and the command socket.
func (p *Presenter) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", p.handleIndex)
	mux.HandleFunc("GET /frame.png", p.handleFrame)
	mux.HandleFunc("GET /ws", p.handleWebSocket)
	return mux
}

func (p *Presenter) handleIndex(w http.ResponseWriter, r *http.Request) {
	p.mu.RLock()
	title := p.title
	p.mu.RUnlock()
	if title == "" {
		title = "slider"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, struct{ Title string }{title}); err != nil {
		p.logger.Error("failed to write page", slog.String("error", err.Error()))
	}
}

func (p *Presenter) handleFrame(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(p.Frame())
}

func (p *Presenter) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := p.upgrader.Upgrade(w, r, nil)
	if err != nil {
		p.logger.Warn("failed to upgrade connection", slog.String("error", err.Error()))
		return
	}
	c := &client{id: uuid.NewString(), conn: conn}
	logger := p.logger.With(slog.String("client", c.id))
	// the first state must reach the client before any broadcast
	c.mu.Lock()
	p.mu.Lock()
	p.clients[c.id] = c
	state := p.state
	p.mu.Unlock()
	logger.Info("client connected", slog.String("remote", r.RemoteAddr))
	defer func() {
		p.mu.Lock()
		delete(p.clients, c.id)
		p.mu.Unlock()
		_ = conn.Close()
		logger.Info("client disconnected")
	}()

	err = c.write(state)
	c.mu.Unlock()
	if err != nil {
		logger.Warn("failed to send state", slog.String("error", err.Error()))
		return
	}
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("unexpected close", slog.String("error", err.Error()))
			}
			return
		}
		cmd := Command(strings.TrimSpace(string(msg)))
		if err := p.Send(r.Context(), cmd); err != nil {
			logger.Warn("failed to send command", slog.String("command", string(cmd)), slog.String("error", err.Error()))
			continue
		}
		logger.Debug("received command", slog.String("command", string(cmd)))
	}
}

func (p *Presenter) closeClients() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, c := range p.clients {
		_ = c.conn.Close()
		delete(p.clients, id)
	}
}
