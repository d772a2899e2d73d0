// Package web exposes the chatbot over HTTP with isolated per-session state.
package web

import (
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"

	"github.com/mzaytsev/gotbot/internal/bot"
)

type sessionResponse struct {
	ID string `json:"id"`
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Answer string `json:"answer"`
}

// session pairs the per-conversation bot state with a mutex that serializes
// requests, so at most one thought chain is active per session.
type session struct {
	mu    sync.Mutex
	state *bot.Session
}

// Server routes chat requests to the bot, one isolated session per client.
type Server struct {
	echo        *echo.Echo
	bot         *bot.Bot
	historySize int

	mu       sync.Mutex
	sessions map[string]*session
}

func NewServer(b *bot.Bot, historySize int) *Server {
	s := &Server{
		bot:         b,
		historySize: historySize,
		sessions:    map[string]*session{},
	}

	e := echo.New()
	e.GET("/healthz", s.health)
	e.POST("/api/sessions", s.createSession)
	e.POST("/api/sessions/:id/chat", s.chat)
	s.echo = e

	return s
}

// Handler returns the HTTP handler to mount in a server.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) health(c *echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createSession(c *echo.Context) error {
	id := uuid.New().String()[:8]

	s.mu.Lock()
	s.sessions[id] = &session{state: bot.NewSession(s.historySize)}
	s.mu.Unlock()

	return c.JSON(http.StatusCreated, sessionResponse{ID: id})
}

func (s *Server) chat(c *echo.Context) error {
	id := c.Param("id")

	s.mu.Lock()
	sess := s.sessions[id]
	s.mu.Unlock()
	if sess == nil {
		return echo.NewHTTPError(http.StatusNotFound, "unknown session")
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "empty message")
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	answer, err := s.bot.Respond(c.Request().Context(), sess.state, req.Message)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, chatResponse{Answer: answer})
}
