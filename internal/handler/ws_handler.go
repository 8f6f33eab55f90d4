package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"event-planner-api/internal/middleware"
	"event-planner-api/internal/presence"
	"event-planner-api/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8192
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type WSMessage struct {
	Type      string                 `json:"type"`
	RoomID    string                 `json:"roomId,omitempty"`
	Content   string                 `json:"content,omitempty"`
	MessageID string                 `json:"messageId,omitempty"`
	UserID    string                 `json:"userId,omitempty"`
	Timestamp time.Time              `json:"timestamp,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

type Client struct {
	conn    *websocket.Conn
	send    chan []byte
	roomID  uuid.UUID
	userID  uuid.UUID
	tracker *presence.Tracker
	hub     *Hub
}

type Hub struct {
	clients   map[uuid.UUID]map[*Client]bool
	clientsMu sync.RWMutex

	register   chan *Client
	unregister chan *Client
	logger     *zap.Logger
}

type WSHandler struct {
	logger         *zap.Logger
	jwtSecret      string
	messageService service.MessageService
	roomService    service.RoomService
	store          *presence.Store
	redis          *redis.Client
	hub            *Hub
}

func NewWSHandler(
	logger *zap.Logger,
	jwtSecret string,
	messageService service.MessageService,
	roomService service.RoomService,
	store *presence.Store,
	redisClient *redis.Client,
) *WSHandler {
	hub := &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		logger:     logger,
	}

	go hub.run()

	return &WSHandler{
		logger:         logger,
		jwtSecret:      jwtSecret,
		messageService: messageService,
		roomService:    roomService,
		store:          store,
		redis:          redisClient,
		hub:            hub,
	}
}

func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.clientsMu.Lock()
			if h.clients[client.roomID] == nil {
				h.clients[client.roomID] = make(map[*Client]bool)
			}
			h.clients[client.roomID][client] = true
			h.clientsMu.Unlock()

			h.logger.Info("Client registered",
				zap.String("roomId", client.roomID.String()),
				zap.String("userId", client.userID.String()))

		case client := <-h.unregister:
			h.clientsMu.Lock()
			if clients, ok := h.clients[client.roomID]; ok {
				if _, exists := clients[client]; exists {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.roomID)
					}
				}
			}
			h.clientsMu.Unlock()

			h.logger.Info("Client unregistered",
				zap.String("roomId", client.roomID.String()),
				zap.String("userId", client.userID.String()))
		}
	}
}

func (h *Hub) broadcastToRoom(roomID uuid.UUID, message []byte) {
	// The lock is held across the send attempts so the unregister handler
	// cannot close a channel mid-broadcast. Sends never block; a client
	// whose buffer is full is dropped instead.
	h.clientsMu.RLock()
	var dropped []*Client
	for client := range h.clients[roomID] {
		select {
		case client.send <- message:
		default:
			dropped = append(dropped, client)
		}
	}
	h.clientsMu.RUnlock()

	// The unregister handler owns closing send
	for _, client := range dropped {
		h.unregister <- client
	}
}

// HandleWebSocket upgrades GET /ws/rooms/:roomId?token= to a room socket.
// The connection doubles as the user's presence session for that room:
// a Tracker heartbeats for as long as the socket lives.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("roomId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}

	userID, err := h.parseToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	isParticipant, err := h.roomService.IsParticipant(c.Request.Context(), roomID, userID)
	if err != nil || !isParticipant {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("Failed to upgrade connection", zap.Error(err))
		return
	}

	middleware.RecordWebSocketConnection()

	tracker := presence.NewTracker(h.store, presence.RoomContext(roomID), userID, h.logger)
	tracker.Start(context.Background())

	client := &Client{
		conn:    conn,
		send:    make(chan []byte, 256),
		roomID:  roomID,
		userID:  userID,
		tracker: tracker,
		hub:     h.hub,
	}

	h.hub.register <- client

	go h.subscribeToRedis(client)
	go h.writePump(client)
	go h.readPump(client)
}

func (h *WSHandler) parseToken(tokenStr string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}

	sub, ok := claims["user_id"].(string)
	if !ok {
		sub, ok = claims["sub"].(string)
		if !ok {
			return uuid.Nil, fmt.Errorf("user id not found in token")
		}
	}

	return uuid.Parse(sub)
}

func (h *WSHandler) readPump(client *Client) {
	defer func() {
		client.tracker.Stop()
		middleware.RecordWebSocketDisconnection()
		h.hub.unregister <- client
		client.conn.Close()
	}()

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		var wsMsg WSMessage
		if err := json.Unmarshal(message, &wsMsg); err != nil {
			h.logger.Warn("Failed to parse message", zap.Error(err))
			continue
		}

		if err := h.handleMessage(client, &wsMsg); err != nil {
			h.logger.Error("Failed to handle message", zap.Error(err))
		}
	}
}

func (h *WSHandler) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case message, ok := <-client.send:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *WSHandler) handleMessage(client *Client, wsMsg *WSMessage) error {
	switch wsMsg.Type {
	case "MESSAGE":
		return h.handleNewMessage(client, wsMsg)
	case "TYPING_START":
		return h.handleTyping(client, true)
	case "TYPING_STOP":
		return h.handleTyping(client, false)
	default:
		h.logger.Warn("Unknown message type", zap.String("type", wsMsg.Type))
	}
	return nil
}

func (h *WSHandler) handleNewMessage(client *Client, wsMsg *WSMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	message, err := h.messageService.SendMessage(ctx, client.roomID, client.userID, wsMsg.Content)
	if err != nil {
		return err
	}

	middleware.RecordMessageSent()
	h.logger.Info("Message created via WebSocket",
		zap.String("messageId", message.MessageID.String()),
		zap.String("roomId", client.roomID.String()))

	// Broadcast happens through the Redis channel SendMessage publishes to
	return nil
}

func (h *WSHandler) handleTyping(client *Client, isTyping bool) error {
	client.tracker.SetTyping(isTyping)

	eventType := "USER_TYPING_STOP"
	if isTyping {
		eventType = "USER_TYPING"
	}

	payload, _ := json.Marshal(WSMessage{
		Type:   eventType,
		RoomID: client.roomID.String(),
		UserID: client.userID.String(),
	})

	h.hub.broadcastToRoom(client.roomID, payload)
	return nil
}

func (h *WSHandler) subscribeToRedis(client *Client) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Recovered from panic in subscribeToRedis",
				zap.Any("panic", r),
				zap.String("roomId", client.roomID.String()))
		}
	}()

	if h.redis == nil {
		h.logger.Warn("Redis pubsub not available")
		return
	}

	pubsub := h.redis.Subscribe(context.Background(), fmt.Sprintf("room:%s", client.roomID.String()))
	defer pubsub.Close()

	ch := pubsub.Channel()
	for msg := range ch {
		select {
		case client.send <- []byte(msg.Payload):
		case <-time.After(1 * time.Second):
			h.logger.Warn("Failed to send Redis message to client",
				zap.String("roomId", client.roomID.String()))
			return
		}
	}
}
