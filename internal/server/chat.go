package restapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noteweaver/noteweaver/internal/core"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/i18n"
	"github.com/noteweaver/noteweaver/internal/plugins/db"
)

type ChatHandler struct {
	store   db.Store
	chatter *core.Chatter
}

type CreateSessionRequest struct {
	Title string `json:"title"`
}

type QueryRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

func NewChatHandler(r *gin.RouterGroup, store db.Store, chatter *core.Chatter) *ChatHandler {
	handler := &ChatHandler{store: store, chatter: chatter}
	chat := r.Group("/chat")
	chat.GET("/sessions", handler.ListSessions)
	chat.POST("/sessions", handler.CreateSession)
	chat.DELETE("/sessions/:id", handler.DeleteSession)
	chat.GET("/sessions/:id/messages", handler.Messages)
	chat.POST("/query", handler.Query)
	return handler
}

func (h *ChatHandler) ListSessions(c *gin.Context) {
	sessions, err := h.store.ListSessions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

// CreateSession godoc
// @Summary  Start a chat session
// @Tags     chat
// @Accept   json
// @Produce  json
// @Param    request body CreateSessionRequest false "title defaults to New Chat"
// @Success  201 {object} domain.ChatSession
// @Security ApiKeyAuth
// @Router   /api/chat/sessions [post]
func (h *ChatHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	session, err := h.store.CreateSession(c.Request.Context(), req.Title)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h *ChatHandler) DeleteSession(c *gin.Context) {
	if err := h.store.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Messages godoc
// @Summary  List the messages of a session, oldest first
// @Tags     chat
// @Produce  json
// @Param    id path string true "session id"
// @Success  200 {array} domain.ChatMessage
// @Failure  404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router   /api/chat/sessions/{id}/messages [get]
func (h *ChatHandler) Messages(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	session, err := h.store.GetSession(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	if session == nil {
		writeError(c, fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(i18n.T("chat_session_not_found"), id)))
		return
	}
	messages, err := h.store.GetMessages(ctx, id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// Query godoc
// @Summary  Ask a question in a session
// @Description Selects folders, reads their notes and answers. The assistant message carries the thinking trace.
// @Tags     chat
// @Accept   json
// @Produce  json
// @Param    request body QueryRequest true "question"
// @Success  200 {object} domain.ChatMessage
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse
// @Failure  502 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router   /api/chat/query [post]
func (h *ChatHandler) Query(c *gin.Context) {
	var req QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	msg, err := h.chatter.Answer(c.Request.Context(), req.SessionID, req.Question)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}
