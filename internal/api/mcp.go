package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kalambet/buddyd/internal/engine"
	"github.com/kalambet/buddyd/internal/profile"
)

// MCPDeps holds dependencies for the MCP server.
type MCPDeps struct {
	Engine       *engine.Engine
	Profiles     *profile.Store
	Interactions Interactions
}

// NewMCPServer creates an MCP server exposing the companion over the Model
// Context Protocol: a chat tool plus profile inspection and erasure.
func NewMCPServer(deps MCPDeps) *server.MCPServer {
	s := server.NewMCPServer(
		"buddyd",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithInstructions("buddyd: personalized AI companion with emotion awareness and per-user memory."),
		server.WithRecovery(),
	)

	// Tools
	s.AddTool(
		mcp.NewTool("chat",
			mcp.WithDescription("Send a message to the companion and receive its reply with emotion analysis."),
			mcp.WithString("message", mcp.Description("The message to send"), mcp.Required()),
			mcp.WithString("user_id", mcp.Description("User identifier (default: \"default\")")),
		),
		mcpChat(deps),
	)

	s.AddTool(
		mcp.NewTool("profile_summary",
			mcp.WithDescription("Return what the companion has learned about a user: style, facts, emotional baseline."),
			mcp.WithString("user_id", mcp.Description("User identifier"), mcp.Required()),
		),
		mcpProfileSummary(deps),
	)

	s.AddTool(
		mcp.NewTool("erase_profile",
			mcp.WithDescription("Permanently delete everything stored about a user."),
			mcp.WithString("user_id", mcp.Description("User identifier"), mcp.Required()),
		),
		mcpEraseProfile(deps),
	)

	// Resources
	s.AddResource(
		mcp.NewResource(
			"buddyd://users",
			"Known Users",
			mcp.WithResourceDescription("User ids with stored profiles"),
			mcp.WithMIMEType("application/json"),
		),
		mcpResourceUsers(deps),
	)

	return s
}

func mcpChat(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		message, err := req.RequireString("message")
		if err != nil {
			return mcpError("message is required"), nil
		}
		userID := req.GetString("user_id", "default")

		reply, err := deps.Engine.Respond(ctx, userID, message)
		if err != nil {
			return mcpError(fmt.Sprintf("chat failed: %v", err)), nil
		}

		b, err := json.Marshal(map[string]any{
			"response":  reply.Response,
			"topic":     string(reply.Topic),
			"emotion":   reply.Emotion,
			"sentiment": reply.Sentiment,
		})
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal reply: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpProfileSummary(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := req.RequireString("user_id")
		if err != nil {
			return mcpError("user_id is required"), nil
		}

		summary, err := deps.Profiles.Summarize(userID)
		if err != nil {
			return mcpError(fmt.Sprintf("loading profile: %v", err)), nil
		}

		b, err := json.Marshal(summary)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal summary: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpEraseProfile(deps MCPDeps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := req.RequireString("user_id")
		if err != nil {
			return mcpError("user_id is required"), nil
		}

		if err := deps.Profiles.Erase(userID); err != nil {
			return mcpError(fmt.Sprintf("erasing profile: %v", err)), nil
		}
		deps.Engine.ClearHistory(userID)

		return mcpText(fmt.Sprintf("Erased all data for user %s", userID)), nil
	}
}

func mcpResourceUsers(deps MCPDeps) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := deps.Profiles.ListUsers()
		if err != nil {
			return nil, fmt.Errorf("failed to list users: %w", err)
		}

		type userEntry struct {
			UserID     string `json:"user_id"`
			LastActive string `json:"last_active,omitempty"`
			LastTopic  string `json:"last_topic,omitempty"`
		}

		entries := make([]userEntry, len(ids))
		for i, id := range ids {
			entry := userEntry{UserID: id}
			if deps.Interactions != nil {
				if recent, err := deps.Interactions.GetRecentInteractions(id, 1); err == nil && len(recent) > 0 {
					entry.LastActive = recent[0].CreatedAt.Format(time.RFC3339)
					entry.LastTopic = recent[0].Topic
				}
			}
			entries[i] = entry
		}

		b, err := json.Marshal(entries)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal users: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     string(b),
			},
		}, nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
