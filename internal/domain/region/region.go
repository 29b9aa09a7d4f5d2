package region

import "strings"

// Pro league codes carried by the player pool.
const (
	LeagueLCK   = "LCK"
	LeagueLPL   = "LPL"
	LeagueLEC   = "LEC"
	LeagueLCS   = "LCS"
	LeagueCBLOL = "CBLOL"
	LeagueLLA   = "LLA"
	LeaguePCS   = "PCS"
	LeagueVCS   = "VCS"
	LeagueLJL   = "LJL"
)

// aliases is the single lookup table for region resolution. Continental
// groupings expand to their member pro leagues; bare league codes resolve
// to themselves through the exact-match fallback in Resolve.
var aliases = map[string][]string{
	"AMERICAS": {LeagueLCS, LeagueCBLOL, LeagueLLA},
	"NA":       {LeagueLCS},
	"EMEA":     {LeagueLEC},
	"EU":       {LeagueLEC},
	"KR":       {LeagueLCK},
	"CN":       {LeagueLPL},
	"APAC":     {LeaguePCS, LeagueVCS, LeagueLJL},
}

var knownLeagues = map[string]struct{}{
	LeagueLCK:   {},
	LeagueLPL:   {},
	LeagueLEC:   {},
	LeagueLCS:   {},
	LeagueCBLOL: {},
	LeagueLLA:   {},
	LeaguePCS:   {},
	LeagueVCS:   {},
	LeagueLJL:   {},
}

// Resolve maps a requested region to the pro leagues it covers. Lookups are
// case-insensitive; an unknown alias falls back to an exact league-code
// match, and a fully unknown input yields nil.
func Resolve(input string) []string {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	if normalized == "" {
		return nil
	}

	if leagues, ok := aliases[normalized]; ok {
		return append([]string(nil), leagues...)
	}
	if _, ok := knownLeagues[normalized]; ok {
		return []string{normalized}
	}

	return nil
}

// Known reports whether the input resolves to at least one pro league.
func Known(input string) bool {
	return len(Resolve(input)) > 0
}

// AllLeagues returns every pro league code in the pool.
func AllLeagues() []string {
	out := make([]string, 0, len(knownLeagues))
	for code := range knownLeagues {
		out = append(out, code)
	}
	return out
}
