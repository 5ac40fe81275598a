// Package server exposes the consultation managers over HTTP. The surface
// mirrors a small agent-to-agent protocol: a JSON run endpoint per persona, a
// health probe and a well-known agent descriptor for discovery.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hupe1980/consultmesh/consult"
	"github.com/hupe1980/consultmesh/core"
	"github.com/hupe1980/consultmesh/logging"
)

// AgentRequest is the JSON body accepted by every run endpoint. Context is a
// free-form bag; unknown keys are preserved and recognized keys degrade to
// defaults when absent.
type AgentRequest struct {
	Message   string         `json:"message"`
	Context   map[string]any `json:"context"`
	SessionID string         `json:"session_id"`
}

// Options configure optional Server collaborators.
type Options struct {
	// Artifacts enables the artifact retrieval routes when set.
	Artifacts core.ArtifactStore
	Logger    logging.Logger
	// Addr is the listen address, ":8080" by default.
	Addr string
}

// Server routes HTTP requests to persona task managers. The default manager
// serves POST /run; the remaining managers are mounted under their persona
// route names.
type Server struct {
	defaultManager *consult.TaskManager
	managers       map[string]*consult.TaskManager
	artifacts      core.ArtifactStore
	appName        string
	logger         logging.Logger
	httpServer     *http.Server
	engine         *gin.Engine
}

// New builds a Server. defaultManager answers /run; extra managers are
// mounted at POST /<persona-key>-agent.
func New(appName string, defaultManager *consult.TaskManager, extra []*consult.TaskManager, optFns ...func(o *Options)) *Server {
	opts := Options{Logger: logging.NoOpLogger{}, Addr: ":8080"}
	for _, fn := range optFns {
		fn(&opts)
	}

	managers := map[string]*consult.TaskManager{}
	for _, tm := range extra {
		managers[tm.Persona().Key] = tm
	}

	s := &Server{
		defaultManager: defaultManager,
		managers:       managers,
		artifacts:      opts.Artifacts,
		appName:        appName,
		logger:         opts.Logger,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), corsMiddleware())
	s.registerRoutes(engine)
	s.engine = engine
	s.httpServer = &http.Server{Addr: opts.Addr, Handler: engine}
	return s
}

// Handler exposes the underlying HTTP handler for tests and embedding.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe blocks serving HTTP until Shutdown or a listener error.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) registerRoutes(engine *gin.Engine) {
	engine.GET("/health", s.handleHealth)
	engine.GET("/.well-known/agent.json", s.handleAgentDescriptor)
	engine.POST("/run", s.runHandler(s.defaultManager))

	for key, tm := range s.managers {
		engine.POST(fmt.Sprintf("/%s-agent", key), s.runHandler(tm))
	}

	if s.artifacts != nil {
		engine.GET("/artifacts/:session_id", s.handleListArtifacts)
		engine.GET("/artifacts/:session_id/:artifact_id", s.handleGetArtifact)
	}
}

// runHandler adapts a task manager into a gin handler. The manager never
// fails; malformed JSON is the only client error this layer produces.
func (s *Server) runHandler(tm *consult.TaskManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AgentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
			return
		}

		start := time.Now()
		env := tm.ProcessTask(c.Request.Context(), req.Message, req.Context, req.SessionID)
		s.logger.Info("task processed",
			"persona", tm.Persona().Key,
			"status", env.Status,
			"session_id", env.SessionID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		c.JSON(http.StatusOK, env)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"agent":  s.defaultManager.Persona().AgentName,
	})
}

// handleAgentDescriptor serves the discovery document describing the default
// agent and its mounted specialists.
func (s *Server) handleAgentDescriptor(c *gin.Context) {
	p := s.defaultManager.Persona()

	skills := []gin.H{personaSkill(p, "/run")}
	for key, tm := range s.managers {
		skills = append(skills, personaSkill(tm.Persona(), fmt.Sprintf("/%s-agent", key)))
	}

	c.JSON(http.StatusOK, gin.H{
		"name":        p.AgentName,
		"description": p.Description,
		"version":     "1.0.0",
		"capabilities": gin.H{
			"streaming":             false,
			"push_notifications":    false,
			"state_transition_hist": false,
		},
		"default_input_modes":  []string{"text"},
		"default_output_modes": []string{"text"},
		"skills":               skills,
	})
}

func personaSkill(p consult.Persona, path string) gin.H {
	return gin.H{
		"id":          p.Key,
		"name":        p.DisplayName,
		"description": p.Description,
		"path":        path,
	}
}

func (s *Server) handleListArtifacts(c *gin.Context) {
	key := s.artifactKey(c)
	ids, err := s.artifacts.List(key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session_id": key.ID, "artifacts": ids})
}

func (s *Server) handleGetArtifact(c *gin.Context) {
	key := s.artifactKey(c)
	data, err := s.artifacts.Get(key, c.Param("artifact_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "artifact not found"})
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

// artifactKey rebuilds the session key from route and query parameters,
// defaulting the user the same way task processing does.
func (s *Server) artifactKey(c *gin.Context) core.SessionKey {
	user := c.Query("user_id")
	if user == "" {
		user = consult.DefaultUserID
	}
	return core.SessionKey{App: s.appName, User: user, ID: c.Param("session_id")}
}

// corsMiddleware allows browser frontends on any origin to call the agent.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
