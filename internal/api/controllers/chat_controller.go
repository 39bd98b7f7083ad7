package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tripmate/internal/models/request_models"
	"tripmate/internal/services"
	"tripmate/pkg/utils"
	"tripmate/pkg/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type ChatController struct {
	chatService services.ChatServiceInterface
	hub         *ws.Hub
}

func NewChatController(chatService services.ChatServiceInterface, hub *ws.Hub) *ChatController {
	return &ChatController{
		chatService: chatService,
		hub:         hub,
	}
}

// PostMessage godoc
// @Summary Post a message to a group chat
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.PostMessageRequest true "Message payload"
// @Success 200 {object} utils.APIResponse
// @Router /chat/messages [post]
func (cc *ChatController) PostMessage(c *gin.Context) {
	var req request_models.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID := c.GetString("user_id")
	msg, err := cc.chatService.PostMessage(c.Request.Context(), accountID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, msg, "Message posted successfully")
}

// GetMessages godoc
// @Summary Get recent messages for a group
// @Tags Chat
// @Produce json
// @Param group_id path string true "Group ID"
// @Param limit query int false "Maximum number of messages"
// @Success 200 {object} utils.APIResponse
// @Router /chat/{group_id}/messages [get]
func (cc *ChatController) GetMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	messages, err := cc.chatService.GetRecentMessages(c.Request.Context(), c.Param("group_id"), limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, messages, "Messages retrieved successfully")
}

// Subscribe upgrades the connection to a websocket joined to the group's
// room. Incoming frames are treated as chat messages and persisted through
// the chat service, which broadcasts them back to the room.
func (cc *ChatController) Subscribe(c *gin.Context) {
	groupID := c.Param("group_id")
	accountID := c.GetString("user_id")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	client := &ws.Client{
		Conn:   conn,
		Send:   make(chan []byte, 16),
		Room:   groupID,
		UserID: accountID,
	}
	cc.hub.Register(client)

	go client.WritePump()
	go cc.readPump(client)
}

func (cc *ChatController) readPump(client *ws.Client) {
	defer func() {
		cc.hub.Unregister(client)
		client.Conn.Close()
	}()

	for {
		_, data, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("websocket read error for user %s: %v", client.UserID, err)
			}
			return
		}

		req := request_models.PostMessageRequest{
			GroupID: client.Room,
			Message: string(data),
		}
		if _, err := cc.chatService.PostMessage(context.Background(), client.UserID, req); err != nil {
			log.Printf("could not persist websocket message: %v", err)
		}
	}
}
