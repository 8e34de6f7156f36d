package app

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/voice-note-service/pkg/code"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
)

const (
	WebSocketServerPingInterval = 25 * time.Second
	WebSocketServerPingWait     = 40 * time.Second
)

// WebSocketMessage 客户端消息，线上格式为 "Type|json"
type WebSocketMessage struct {
	Type string `json:"type"`
	Data []byte `json:"data"`
}

type WebsocketServerConfig struct {
	GWSOption    gws.ServerOption
	PingInterval time.Duration
	PingWait     time.Duration
	// SecretKey 用于 "Authorization|token" 消息登录
	SecretKey string
}

// WebsocketClient 一个 WebSocket 连接及其状态
type WebsocketClient struct {
	conn *gws.Conn
	done chan struct{}
	once sync.Once
	User *UserEntity
}

// ToResponse 将结果以 "action|json" 格式发送给当前连接
func (c *WebsocketClient) ToResponse(codeObj *code.Code, action string) {
	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}
	payload, err := encodeFrame(action, content)
	if err != nil {
		return
	}
	_ = c.conn.WriteMessage(gws.OpcodeText, payload)
}

func (c *WebsocketClient) close() {
	c.once.Do(func() { close(c.done) })
}

func (c *WebsocketClient) pingLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.conn.WritePing(nil); err != nil {
				return
			}
		}
	}
}

func encodeFrame(action string, content any) ([]byte, error) {
	body, err := sonic.Marshal(content)
	if err != nil {
		return nil, err
	}
	if action == "" {
		return body, nil
	}
	return []byte(fmt.Sprintf("%s|%s", action, body)), nil
}

type ConnStorage = map[*gws.Conn]*WebsocketClient

// WebsocketServer 按用户分组管理连接，并向同一用户的所有会话推送事件
type WebsocketServer struct {
	handlers    map[string]func(*WebsocketClient, *WebSocketMessage)
	clients     ConnStorage
	userClients map[int64]ConnStorage
	mu          sync.RWMutex
	up          *gws.Upgrader
	config      *WebsocketServerConfig
	logger      *zap.Logger
}

func NewWebsocketServer(c WebsocketServerConfig, logger *zap.Logger) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &WebsocketServer{
		handlers:    make(map[string]func(*WebsocketClient, *WebSocketMessage)),
		clients:     make(ConnStorage),
		userClients: make(map[int64]ConnStorage),
		config:      &c,
		logger:      logger,
	}
	w.up = gws.NewUpgrader(w, &w.config.GWSOption)
	return w
}

// Run 返回升级连接的 gin 处理函数
// A user already authenticated by middleware is bound immediately; otherwise the client
// must send "Authorization|<token>" before any other message.
func (w *WebsocketServer) Run() gin.HandlerFunc {
	return func(c *gin.Context) {
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			w.logger.Error("WebsocketServer upgrade failed", zap.Error(err))
			return
		}
		client := &WebsocketClient{conn: socket, done: make(chan struct{})}
		w.addClient(client)
		if user := GetUserEntity(c); user != nil {
			w.bindUser(client, user)
		}
		go socket.ReadLoop()
	}
}

// Use 注册消息处理函数
func (w *WebsocketServer) Use(action string, handler func(*WebsocketClient, *WebSocketMessage)) {
	w.handlers[action] = handler
}

// PushToUser 向用户的所有连接广播一条消息
func (w *WebsocketServer) PushToUser(uid int64, action string, data any) {
	payload, err := encodeFrame(action, Res{Code: code.Success.Code(), Status: true, Data: data})
	if err != nil {
		w.logger.Warn("WebsocketServer encode failed", zap.String("action", action), zap.Error(err))
		return
	}

	w.mu.RLock()
	conns := make([]*gws.Conn, 0, len(w.userClients[uid]))
	for conn := range w.userClients[uid] {
		conns = append(conns, conn)
	}
	w.mu.RUnlock()

	if len(conns) == 0 {
		return
	}

	b := gws.NewBroadcaster(gws.OpcodeText, payload)
	defer b.Close()
	for _, conn := range conns {
		_ = b.Broadcast(conn)
	}
}

// ConnCount 当前连接总数
func (w *WebsocketServer) ConnCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.clients)
}

// UserConnCount 用户当前的连接数
func (w *WebsocketServer) UserConnCount(uid int64) int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.userClients[uid])
}

func (w *WebsocketServer) authorization(c *WebsocketClient, msg *WebSocketMessage) {
	user, err := ParseTokenWithKey(string(msg.Data), w.config.SecretKey)
	if err != nil {
		w.logger.Warn("WebsocketServer authorization failed", zap.Error(err))
		c.ToResponse(code.ErrorInvalidUserAuthToken, "Authorization")
		_ = c.conn.WriteClose(1000, []byte("AuthorizationFailed"))
		return
	}
	w.bindUser(c, user)
	c.ToResponse(code.Success, "Authorization")
}

func (w *WebsocketServer) bindUser(c *WebsocketClient, user *UserEntity) {
	w.mu.Lock()
	c.User = user
	if w.userClients[user.UID] == nil {
		w.userClients[user.UID] = make(ConnStorage)
	}
	w.userClients[user.UID][c.conn] = c
	count := len(w.userClients[user.UID])
	w.mu.Unlock()

	w.logger.Info("WebsocketServer user enters", zap.Int64("uid", user.UID), zap.Int("count", count))
	go c.pingLoop(w.config.PingInterval)
}

func (w *WebsocketServer) getClient(conn *gws.Conn) *WebsocketClient {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.clients[conn]
}

func (w *WebsocketServer) addClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
}

func (w *WebsocketServer) removeClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, c.conn)
	if c.User != nil {
		delete(w.userClients[c.User.UID], c.conn)
		if len(w.userClients[c.User.UID]) == 0 {
			delete(w.userClients, c.User.UID)
		}
	}
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {
	c := w.getClient(conn)
	if c == nil {
		return
	}
	c.close()
	w.removeClient(c)
	w.logger.Info("WebsocketServer client leave", zap.Error(err))
}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait))

	raw := message.Data.String()
	if raw == "close" {
		_ = conn.WriteClose(1000, []byte("ClientClose"))
		return
	}

	c := w.getClient(conn)
	if c == nil {
		return
	}

	index := strings.Index(raw, "|")
	if index == -1 {
		w.logger.Warn("WebsocketServer illegal message", zap.String("data", raw))
		return
	}
	msg := WebSocketMessage{Type: raw[:index], Data: []byte(raw[index+1:])}

	if msg.Type == "Authorization" {
		w.authorization(c, &msg)
		return
	}
	if c.User == nil {
		c.ToResponse(code.ErrorNotUserAuthToken, msg.Type)
		return
	}

	handler, exists := w.handlers[msg.Type]
	if !exists {
		c.ToResponse(code.ErrorNotFoundAPI, msg.Type)
		return
	}
	handler(c, &msg)
}
