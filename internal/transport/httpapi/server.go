// Package httpapi exposes club normalization and time bucketing over HTTP.
package httpapi

import (
	"encoding/json"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/monegros/internal/core/timebucket"
	"github.com/baditaflorin/monegros/internal/ports"
)

// NormalizeRequest carries raw club cells. Entries may be strings, null or
// any other JSON value.
type NormalizeRequest struct {
	Clubs []interface{} `json:"clubs"`
}

// NormalizeResponse holds one canonical name per requested club.
type NormalizeResponse struct {
	Canonical []string `json:"canonical"`
}

// BucketRequest carries HH:MM:SS finishing times.
type BucketRequest struct {
	Times []string `json:"times"`
}

// BucketResponse holds one 20-minute group per requested time.
type BucketResponse struct {
	Groups []string `json:"groups"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server routes requests to the normalizer.
type Server struct {
	clubs  ports.ClubNormalizer
	logger ports.Logger
}

// NewServer creates the request router.
func NewServer(clubs ports.ClubNormalizer, logger ports.Logger) *Server {
	return &Server{clubs: clubs, logger: logger}
}

// Handle is the fasthttp request handler.
func (s *Server) Handle(ctx *fasthttp.RequestCtx) {
	startTime := time.Now()

	ctx.Response.Header.Set("Content-Type", "application/json")
	ctx.Response.Header.Set("Server", "ClubNormalizer")

	switch string(ctx.Path()) {
	case "/health":
		s.handleHealthCheck(ctx)
	case "/normalize":
		s.handleNormalize(ctx)
	case "/bucket":
		s.handleBucket(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		s.writeJSONError(ctx, "Not found")
	}

	s.logger.Info("Request processed",
		"method", string(ctx.Method()),
		"path", string(ctx.Path()),
		"status", ctx.Response.StatusCode(),
		"ip", ctx.RemoteIP().String(),
		"duration", time.Since(startTime),
	)
}

func (s *Server) handleHealthCheck(ctx *fasthttp.RequestCtx) {
	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleNormalize(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req NormalizeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	resp := NormalizeResponse{Canonical: make([]string, len(req.Clubs))}
	for i, c := range req.Clubs {
		resp.Canonical[i] = s.clubs.NormalizeValue(c)
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, resp)
}

func (s *Server) handleBucket(ctx *fasthttp.RequestCtx) {
	if !ctx.IsPost() {
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		s.writeJSONError(ctx, "Method not allowed")
		return
	}

	var req BucketRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		ctx.SetStatusCode(fasthttp.StatusBadRequest)
		s.writeJSONError(ctx, "Invalid request: "+err.Error())
		return
	}

	resp := BucketResponse{Groups: make([]string, len(req.Times))}
	for i, t := range req.Times {
		g, err := timebucket.Bucket(t)
		if err != nil {
			ctx.SetStatusCode(fasthttp.StatusBadRequest)
			s.writeJSONError(ctx, err.Error())
			return
		}
		resp.Groups[i] = g
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
	s.writeJSONResponse(ctx, resp)
}

func (s *Server) writeJSONResponse(ctx *fasthttp.RequestCtx, data interface{}) {
	response, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		s.logger.Error("Error marshaling JSON response", "error", err)
		s.writeJSONError(ctx, "Internal server error")
		return
	}
	ctx.SetBody(response)
}

func (s *Server) writeJSONError(ctx *fasthttp.RequestCtx, message string) {
	response, err := json.Marshal(ErrorResponse{Error: message})
	if err != nil {
		s.logger.Error("Error marshaling JSON error response", "error", err)
		ctx.SetBodyString(`{"error":"Internal server error"}`)
		return
	}
	ctx.SetBody(response)
}
