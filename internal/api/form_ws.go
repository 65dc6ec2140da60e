package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"cvform/internal/api/middleware"
	"cvform/internal/form"
	"cvform/internal/session"
)

const (
	formEventChange = "change"
	formEventBlur   = "blur"

	formWsReadLimit = 64 << 10
)

// FormWsHandler 通过 WebSocket 接收表单字段的输入与失焦事件，并回推最新的表单状态。
type FormWsHandler struct {
	upgrader websocket.Upgrader
}

// NewFormWsHandler 构造 FormWsHandler，只接受同源连接。
func NewFormWsHandler() *FormWsHandler {
	return &FormWsHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

type formEvent struct {
	Type  string `json:"type"`
	Field string `json:"field"`
	Value string `json:"value"`
}

type formStateMessage struct {
	Values  map[string]string `json:"values"`
	Errors  map[string]string `json:"errors"`
	Touched map[string]bool   `json:"touched"`
}

type formErrorMessage struct {
	Error string `json:"error"`
}

func newFormStateMessage(state session.FormState) formStateMessage {
	values := make(map[string]string, len(form.Fields))
	for _, f := range form.Fields {
		if f.IsText() {
			values[string(f)] = state.Values.Text(f)
		}
	}
	return formStateMessage{
		Values:  values,
		Errors:  state.Errors,
		Touched: state.Touched,
	}
}

// HandleConnection 升级连接后先发送当前表单状态，再逐条处理事件，每条事件回复一次完整的表单状态。
func (h *FormWsHandler) HandleConnection(c *gin.Context) {
	ws, ok := middleware.WorkspaceFromContext(c)
	if !ok {
		Internal(c, "session unavailable")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		middleware.LoggerFromContext(c).Warn("upgrade websocket failed", slog.Any("error", err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(formWsReadLimit)

	log := middleware.LoggerFromContext(c).With(slog.String("client_ip", c.ClientIP()))
	log.Debug("form websocket connected")

	if err := conn.WriteJSON(newFormStateMessage(ws.FormState())); err != nil {
		log.Debug("form websocket closed", slog.Any("error", err))
		return
	}

	if err := h.readLoop(conn, ws, log); err != nil {
		log.Debug("form websocket closed", slog.Any("error", err))
	}
}

func (h *FormWsHandler) readLoop(conn *websocket.Conn, ws *session.Workspace, log *slog.Logger) error {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read message: %w", err)
		}

		var event formEvent
		if err := json.Unmarshal(message, &event); err != nil {
			writeClose(conn, websocket.ClosePolicyViolation, "invalid payload")
			return fmt.Errorf("decode event: %w", err)
		}

		var blur bool
		switch event.Type {
		case formEventChange:
		case formEventBlur:
			blur = true
		default:
			if err := conn.WriteJSON(formErrorMessage{Error: "unknown event type"}); err != nil {
				return fmt.Errorf("write message: %w", err)
			}
			continue
		}

		state, err := ws.UpdateField(form.Field(event.Field), event.Value, blur)
		if err != nil {
			if !errors.Is(err, form.ErrUnknownField) {
				return err
			}
			log.Debug("ignored form event", slog.String("field", event.Field))
			if err := conn.WriteJSON(formErrorMessage{Error: "unknown field"}); err != nil {
				return fmt.Errorf("write message: %w", err)
			}
			continue
		}

		if err := conn.WriteJSON(newFormStateMessage(state)); err != nil {
			return fmt.Errorf("write message: %w", err)
		}
	}
}

func writeClose(conn *websocket.Conn, code int, text string) {
	deadline := time.Now().Add(5 * time.Second)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, text), deadline)
}
