package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds an MCP server with the avatar tools: avatar state, boss
// stats per level and a damage simulation.
func NewServer(avatars AvatarReader, bossCurve BossStatsProvider, version string) *mcp.Server {
	h := NewHandler(NewContextService(avatars, bossCurve))
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "fitquest-avatar",
		Version: version,
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_avatar",
		Description: "Returns the stored avatar of a user: level, experience, hp, mp, attack, defense, agility and boss level. Arg: user_id. Use when you need the current progression of a user.",
	}, h.GetAvatarTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_boss_stats",
		Description: "Returns hp, attack, defense and crit of the boss at the given level (1 based, values rounded to 2 decimals). Use when balancing encounters or explaining boss difficulty.",
	}, h.GetBossStatsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "simulate_damage",
		Description: "Returns the physical and ability damage an attacker with the given attack and mp deals to a target with the given defense percent. Use when checking combat balance.",
	}, h.SimulateDamageTool())

	return s
}
