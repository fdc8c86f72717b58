package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/LionSR/mcp-apple/internal/config"
	"github.com/LionSR/mcp-apple/internal/tools"
)

// Server represents the MCP server
type Server struct {
	config *config.Config
	logger *logrus.Logger
	tools  *tools.Registry
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, toolRegistry *tools.Registry, logger *logrus.Logger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
		tools:  toolRegistry,
	}
}

// Run starts the MCP server with stdio transport
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("Starting MCP server with stdio transport")

	decoder := json.NewDecoder(os.Stdin)
	encoder := json.NewEncoder(os.Stdout)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
			var req map[string]interface{}
			if err := decoder.Decode(&req); err != nil {
				if err == io.EOF {
					return nil
				}
				s.logger.WithError(err).Error("Failed to decode request")
				continue
			}

			resp := s.handleRequest(ctx, req)
			if err := encoder.Encode(resp); err != nil {
				s.logger.WithError(err).Error("Failed to encode response")
				continue
			}
		}
	}
}

// handleRequest processes an MCP request
func (s *Server) handleRequest(ctx context.Context, req map[string]interface{}) map[string]interface{} {
	method, _ := req["method"].(string)
	id := req["id"]

	// Handle initialize request
	if method == "initialize" {
		return map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      id,
			"result": map[string]interface{}{
				"protocolVersion": "2024-11-05",
				"capabilities": map[string]interface{}{
					"tools": map[string]interface{}{},
				},
				"serverInfo": map[string]interface{}{
					"name":    "mcp-apple",
					"version": "1.0.0",
				},
			},
		}
	}

	// Handle tools/list request
	if method == "tools/list" {
		return map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      id,
			"result": map[string]interface{}{
				"tools": s.tools.GetToolDefinitions(),
			},
		}
	}

	// Handle tools/call request
	if method == "tools/call" {
		params, _ := req["params"].(map[string]interface{})
		toolName, _ := params["name"].(string)
		arguments, _ := params["arguments"].(map[string]interface{})

		tool, exists := s.tools.GetTool(toolName)
		if !exists {
			return map[string]interface{}{
				"jsonrpc": "2.0",
				"id":      id,
				"error": map[string]interface{}{
					"code":    -32601,
					"message": fmt.Sprintf("Tool not found: %s", toolName),
				},
			}
		}

		result, err := tool.Execute(ctx, arguments)
		if err != nil {
			// Bridge failures surface their message verbatim; no retries.
			s.logger.WithError(err).WithField("tool", toolName).Warn("Tool call failed")
			return map[string]interface{}{
				"jsonrpc": "2.0",
				"id":      id,
				"error": map[string]interface{}{
					"code":    -32603,
					"message": err.Error(),
				},
			}
		}

		resultJSON, err := json.Marshal(result)
		if err != nil {
			resultJSON = []byte(fmt.Sprintf("%v", result))
		}

		return map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      id,
			"result": map[string]interface{}{
				"content": []map[string]interface{}{
					{
						"type": "text",
						"text": string(resultJSON),
					},
				},
			},
		}
	}

	// Unknown method
	return map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"error": map[string]interface{}{
			"code":    -32601,
			"message": fmt.Sprintf("Method not found: %s", method),
		},
	}
}
