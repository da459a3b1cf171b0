package memory

import (
	"time"

	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
)

var seedTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

type seedPlayer struct {
	id     string
	name   string
	role   player.Role
	attack int
	defend int
}

var seedPlayers = []seedPlayer{
	{id: "plr-001", name: "Andi Pratama", role: player.RoleAdmin, attack: 78, defend: 62},
	{id: "plr-002", name: "Bima Santoso", role: player.RoleMember, attack: 55, defend: 81},
	{id: "plr-003", name: "Cahyo Nugroho", role: player.RoleMember, attack: 70, defend: 48},
	{id: "plr-004", name: "Dimas Saputra", role: player.RoleMember, attack: 42, defend: 73},
	{id: "plr-005", name: "Eko Wibowo", role: player.RoleMember, attack: 66, defend: 66},
	{id: "plr-006", name: "Fajar Hidayat", role: player.RoleAdmin, attack: 84, defend: 40},
	{id: "plr-007", name: "Galih Ramadhan", role: player.RoleMember, attack: 50, defend: 58},
	{id: "plr-008", name: "Hendra Kusuma", role: player.RoleMember, attack: 61, defend: 77},
	{id: "plr-009", name: "Irfan Maulana", role: player.RoleMember, attack: 73, defend: 55},
	{id: "plr-010", name: "Joko Susilo", role: player.RoleMember, attack: 47, defend: 64},
	{id: "plr-011", name: "Kevin Halim", role: player.RoleMember, attack: 58, defend: 52},
	{id: "plr-012", name: "Lukman Hakim", role: player.RoleMember, attack: 69, defend: 71},
}

// SeedPlayers returns a demo roster for the memory storage driver.
func SeedPlayers() []player.Player {
	out := make([]player.Player, 0, len(seedPlayers))
	for _, item := range seedPlayers {
		out = append(out, player.Player{
			ID:        item.id,
			Name:      item.name,
			Role:      item.role,
			Skills:    seedSkills(item.attack, item.defend),
			CreatedAt: seedTime,
			UpdatedAt: seedTime,
		})
	}
	return out
}

func seedSkills(attack, defend int) skill.Vector {
	v := skill.Uniform((attack + defend) / 2)
	v[skill.Shooting] = attack
	v[skill.Dribbling] = attack
	v[skill.Speed] = attack
	v[skill.Marking] = defend
	v[skill.Interception] = defend
	v[skill.Physical] = defend
	return v
}
