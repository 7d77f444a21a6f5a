package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/fitquest/internal/avatar"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

// GetAvatarInput is the input for get_avatar.
type GetAvatarInput struct {
	UserID int `json:"user_id" jsonschema:"Id of the user owning the avatar"`
}

// GetAvatarTool returns the MCP tool handler for get_avatar.
func (h *Handler) GetAvatarTool() func(context.Context, *mcp.CallToolRequest, GetAvatarInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in GetAvatarInput) (*mcp.CallToolResult, any, error) {
		if in.UserID <= 0 {
			return errorResult("Invalid user_id: must be a positive integer"), nil, nil
		}
		a, err := h.service.GetAvatar(ctx, in.UserID)
		if err != nil {
			if errors.Is(err, avatar.ErrAvatarNotFound) {
				return errorResult(fmt.Sprintf("No avatar for user %d", in.UserID)), nil, nil
			}
			return errorResult("Error fetching avatar: " + err.Error()), nil, nil
		}
		return jsonResult(a), nil, nil
	}
}

// GetBossStatsInput is the input for get_boss_stats.
type GetBossStatsInput struct {
	Level int `json:"level" jsonschema:"Boss level, starting at 1"`
}

// GetBossStatsTool returns the MCP tool handler for get_boss_stats.
func (h *Handler) GetBossStatsTool() func(context.Context, *mcp.CallToolRequest, GetBossStatsInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in GetBossStatsInput) (*mcp.CallToolResult, any, error) {
		stats, err := h.service.GetBossStats(in.Level)
		if err != nil {
			return errorResult("Error computing boss stats: " + err.Error()), nil, nil
		}
		return jsonResult(stats), nil, nil
	}
}

// SimulateDamageInput is the input for simulate_damage.
type SimulateDamageInput struct {
	Attack        float64 `json:"attack" jsonschema:"Attack stat of the attacker"`
	MP            float64 `json:"mp" jsonschema:"MP stat of the attacker, used by abilities"`
	TargetDefense float64 `json:"target_defense" jsonschema:"Defense of the target in percent (0-90, higher is capped)"`
}

// SimulateDamageTool returns the MCP tool handler for simulate_damage.
func (h *Handler) SimulateDamageTool() func(context.Context, *mcp.CallToolRequest, SimulateDamageInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in SimulateDamageInput) (*mcp.CallToolResult, any, error) {
		if in.Attack < 0 || in.MP < 0 || in.TargetDefense < 0 {
			return errorResult("Invalid input: attack, mp and target_defense must not be negative"), nil, nil
		}
		return jsonResult(h.service.SimulateDamage(in.Attack, in.MP, in.TargetDefense)), nil, nil
	}
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
