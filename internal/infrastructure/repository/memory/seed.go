package memory

import (
	"context"
	"fmt"

	"github.com/riftlabs/fantasy-esports/internal/domain/player"
)

// SeedPlayers loads a starter player pool so a memory-backed instance is
// usable without a stats provider run.
func SeedPlayers(ctx context.Context, repo *PlayerRepository) error {
	pool := []player.Player{
		{ID: "lck-t1-top", Handle: "Zeus", RealName: "Choi Woo-je", ProTeam: "T1", ProLeague: "LCK", Role: player.RoleTop},
		{ID: "lck-t1-jng", Handle: "Oner", RealName: "Mun Hyeon-jun", ProTeam: "T1", ProLeague: "LCK", Role: player.RoleJungle},
		{ID: "lck-t1-mid", Handle: "Faker", RealName: "Lee Sang-hyeok", ProTeam: "T1", ProLeague: "LCK", Role: player.RoleMid},
		{ID: "lck-t1-adc", Handle: "Gumayusi", RealName: "Lee Min-hyeong", ProTeam: "T1", ProLeague: "LCK", Role: player.RoleADC},
		{ID: "lck-t1-sup", Handle: "Keria", RealName: "Ryu Min-seok", ProTeam: "T1", ProLeague: "LCK", Role: player.RoleSupport},
		{ID: "lck-gen-mid", Handle: "Chovy", RealName: "Jeong Ji-hoon", ProTeam: "GEN", ProLeague: "LCK", Role: player.RoleMid},
		{ID: "lck-gen-adc", Handle: "Peyz", RealName: "Kim Su-hwan", ProTeam: "GEN", ProLeague: "LCK", Role: player.RoleADC},
		{ID: "lpl-blg-top", Handle: "Bin", RealName: "Chen Ze-bin", ProTeam: "BLG", ProLeague: "LPL", Role: player.RoleTop},
		{ID: "lpl-blg-mid", Handle: "knight", RealName: "Zhuo Ding", ProTeam: "BLG", ProLeague: "LPL", Role: player.RoleMid},
		{ID: "lpl-blg-adc", Handle: "Elk", RealName: "Zhao Jia-hao", ProTeam: "BLG", ProLeague: "LPL", Role: player.RoleADC},
		{ID: "lec-g2-jng", Handle: "Yike", RealName: "Martin Sundelin", ProTeam: "G2", ProLeague: "LEC", Role: player.RoleJungle},
		{ID: "lec-g2-mid", Handle: "Caps", RealName: "Rasmus Winther", ProTeam: "G2", ProLeague: "LEC", Role: player.RoleMid},
		{ID: "lec-fnc-adc", Handle: "Noah", RealName: "Oh Hyeon-taek", ProTeam: "FNC", ProLeague: "LEC", Role: player.RoleADC},
		{ID: "lcs-tl-top", Handle: "Impact", RealName: "Jeong Eon-yeong", ProTeam: "TL", ProLeague: "LCS", Role: player.RoleTop},
		{ID: "lcs-tl-sup", Handle: "CoreJJ", RealName: "Jo Yong-in", ProTeam: "TL", ProLeague: "LCS", Role: player.RoleSupport},
		{ID: "lcs-c9-jng", Handle: "Blaber", RealName: "Robert Huang", ProTeam: "C9", ProLeague: "LCS", Role: player.RoleJungle},
		{ID: "cblol-lll-mid", Handle: "tinowns", RealName: "Thiago Sartori", ProTeam: "LLL", ProLeague: "CBLOL", Role: player.RoleMid},
		{ID: "lla-est-adc", Handle: "Ceo", RealName: "Lorenzo Tevez", ProTeam: "EST", ProLeague: "LLA", Role: player.RoleADC},
		{ID: "pcs-psg-mid", Handle: "Maple", RealName: "Huang Yi-tang", ProTeam: "PSG", ProLeague: "PCS", Role: player.RoleMid},
		{ID: "vcs-gam-jng", Handle: "Levi", RealName: "Do Duy Khanh", ProTeam: "GAM", ProLeague: "VCS", Role: player.RoleJungle},
		{ID: "ljl-dfm-mid", Handle: "Aria", RealName: "Lee Ga-eul", ProTeam: "DFM", ProLeague: "LJL", Role: player.RoleMid},
	}

	for _, item := range pool {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("seed player %s: %w", item.ID, err)
		}
	}
	return repo.UpsertMany(ctx, pool)
}
