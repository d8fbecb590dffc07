package analysis

import (
	"fmt"
	"strings"

	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
)

// Heroes with heavy disables, used to judge whether a late BKB mattered.
var disableHeroNames = func() map[string]bool {
	names := []string{
		"Axe", "Bane", "Beastmaster", "Centaur Warrunner", "Chaos Knight", "Crystal Maiden",
		"Dark Seer", "Doom", "Dragon Knight", "Earth Spirit", "Earthshaker", "Elder Titan",
		"Enigma", "Faceless Void", "Grimstroke", "Invoker", "Kunkka", "Legion Commander",
		"Lion", "Magnus", "Mars", "Medusa", "Mirana", "Nyx Assassin", "Ogre Magi",
		"Pudge", "Puck", "Riki", "Sand King", "Shadow Shaman", "Slardar", "Snapfire",
		"Spirit Breaker", "Storm Spirit", "Sven", "Tidehunter", "Tiny", "Treant Protector",
		"Tusk", "Underlord", "Vengeful Spirit", "Warlock", "Windranger", "Winter Wyvern",
		"Witch Doctor", "Zeus", "Primal Beast", "Ringmaster", "Marci", "Muerta",
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[strings.ToLower(n)] = true
	}
	return set
}()

// mistakeInput is everything the detector consumes.
type mistakeInput struct {
	match           *opendota.RecentMatch
	player          *opendota.PlayerDetail
	enemyHeroes     []string
	laneDiff10      int
	laneContext     *laningContext
	teamTowerDamage int
}

// ruleFacts are the derived values the rule predicates compare.
type ruleFacts struct {
	match           *opendota.RecentMatch
	laneDiff10      int
	ctx             *laningContext
	csPerMin        float64
	isSupport       bool
	laneRole        int
	towerDamage     int
	teamTowerDamage int
	disableCount    int
	bkbTime         int
}

// mistakeRule pairs one independent predicate with its mistake and suggestion
// texts. Rules never short-circuit each other, so several can fire per match.
type mistakeRule struct {
	applies    func(f *ruleFacts) bool
	mistake    func(f *ruleFacts) string
	suggestion string
}

var mistakeRules = []mistakeRule{
	{
		applies: func(f *ruleFacts) bool {
			return f.laneDiff10 <= -700 && f.match.GoldPerMin < 450
		},
		mistake: func(f *ruleFacts) string {
			return "Economy kept falling behind after losing the lane"
		},
		suggestion: "After 10 minutes rotate earlier, farm the jungle or push the enemy safe lane instead of staying in a lost lane",
	},
	{
		applies: func(f *ruleFacts) bool {
			return f.ctx.netWorthDiff5 <= -350 && f.ctx.netWorthDiff10 <= -700
		},
		mistake: func(f *ruleFacts) string {
			return fmt.Sprintf("Suppressed in the first 5 minutes of the lane (net worth %d at 5 min)", f.ctx.netWorthDiff5)
		},
		suggestion: "Start with more regen and safer positioning, pull camps or call for help to stabilize the lane",
	},
	{
		applies: func(f *ruleFacts) bool {
			return f.ctx.netWorthDiff5 >= 400 && f.ctx.netWorthDiff10 <= -300
		},
		mistake: func(f *ruleFacts) string {
			return "Lane advantage thrown away between 5 and 10 minutes"
		},
		suggestion: "When ahead, play less aggressively and watch for enemy rotations and TP counters",
	},
	{
		applies: func(f *ruleFacts) bool {
			return f.ctx.lastHitsDiff10 <= -8 && f.ctx.xpDiff10 <= -400
		},
		mistake: func(f *ruleFacts) string {
			return "Behind on both last hits and experience during the lane"
		},
		suggestion: "Prioritize securing last hits and staying in experience range, pull or trade lanes to stop the bleeding",
	},
	{
		applies: func(f *ruleFacts) bool {
			return f.match.Deaths >= 6 && f.csPerMin < 4
		},
		mistake: func(f *ruleFacts) string {
			return "Too many deaths broke the key farming windows"
		},
		suggestion: "Stay alive and keep farming first, then look for safe windows to join fights",
	},
	{
		applies: func(f *ruleFacts) bool {
			return f.match.HeroDamage < f.match.Duration*300
		},
		mistake: func(f *ruleFacts) string {
			return "Low damage contribution in fights"
		},
		suggestion: "Watch for the key mid-game fights and avoid being disconnected from the team for long stretches",
	},
	{
		applies: lowPushContribution,
		mistake: func(f *ruleFacts) string {
			return "Not enough push contribution"
		},
		suggestion: "In the mid and late game actively pressure lanes and towers to extend a lead or claw back tempo",
	},
	{
		applies: func(f *ruleFacts) bool {
			return f.bkbTime > 1500 && f.disableCount >= 2
		},
		mistake: func(f *ruleFacts) string {
			return fmt.Sprintf("BKB came too late (minute %d)", f.bkbTime/60)
		},
		suggestion: "Against a control-heavy lineup, build the BKB earlier",
	},
}

// detectMistakes evaluates the rule table and returns the paired mistake and
// suggestion lists. When nothing fires a single neutral pair comes back.
func detectMistakes(in *mistakeInput) ([]string, []string) {
	facts := &ruleFacts{
		match:           in.match,
		laneDiff10:      in.laneDiff10,
		ctx:             in.laneContext,
		csPerMin:        float64(in.match.LastHits) / float64(matchMinutes(in.match.Duration)),
		isSupport:       isSupportLike(in.player, in.match),
		laneRole:        laneRoleOrUnknown(in.player),
		towerDamage:     in.player.TowerDamage,
		teamTowerDamage: in.teamTowerDamage,
		disableCount:    countDisableHeroes(in.enemyHeroes),
		bkbTime:         itemPurchaseTime(in.player, "black_king_bar"),
	}

	var mistakes, suggestions []string
	for _, rule := range mistakeRules {
		if rule.applies(facts) {
			mistakes = append(mistakes, rule.mistake(facts))
			suggestions = append(suggestions, rule.suggestion)
		}
	}

	if len(mistakes) == 0 {
		mistakes = append(mistakes, "No significant mistakes")
		suggestions = append(suggestions, "Keep up the current pace and decision making")
	}
	return mistakes, suggestions
}

// isSupportLike guesses a support game from the role or the economy shape.
func isSupportLike(player *opendota.PlayerDetail, match *opendota.RecentMatch) bool {
	if player.LaneRole != nil && (*player.LaneRole == 4 || *player.LaneRole == 5) {
		return true
	}

	csPerMin := float64(match.LastHits) / float64(matchMinutes(match.Duration))
	total := match.Kills + match.Assists
	assistShare := 0.0
	if total > 0 {
		assistShare = float64(match.Assists) / float64(total)
	}

	return match.GoldPerMin < 420 && csPerMin < 3.5 && assistShare >= 0.6
}

// lowPushContribution flags a tower damage share below the role threshold,
// gated so short games, low team pressure and sacrificial supports don't trip
// false positives.
func lowPushContribution(f *ruleFacts) bool {
	if f.match.Duration < 25*60 {
		return false
	}
	if f.teamTowerDamage < 2500 {
		return false
	}

	share := float64(f.towerDamage) / float64(f.teamTowerDamage)
	var threshold float64
	switch f.laneRole {
	case 1:
		threshold = 0.12
	case 2:
		threshold = 0.10
	case 3:
		threshold = 0.08
	case 4, 5:
		threshold = 0.05
	default:
		threshold = 0.08
		if f.isSupport {
			threshold = 0.05
		}
	}
	if share >= threshold {
		return false
	}

	minutes := matchMinutes(f.match.Duration)
	if f.isSupport {
		assistFloor := minutes / 2
		if assistFloor < 6 {
			assistFloor = 6
		}
		return f.match.HeroDamage < f.match.Duration*200 && f.match.Assists < assistFloor
	}

	// A poor-economy core already gets flagged by the farm rules.
	if f.match.GoldPerMin < 420 && f.csPerMin < 4 {
		return false
	}
	return true
}

// countDisableHeroes counts enemies from the disable-heavy roster.
func countDisableHeroes(enemyHeroes []string) int {
	count := 0
	for _, name := range enemyHeroes {
		if disableHeroNames[strings.ToLower(name)] {
			count++
		}
	}
	return count
}

// itemPurchaseTime returns the earliest purchase time of the item key, or -1
// when it was never bought.
func itemPurchaseTime(player *opendota.PlayerDetail, itemKey string) int {
	earliest := -1
	for _, entry := range player.PurchaseLog {
		if !strings.EqualFold(entry.Key, itemKey) {
			continue
		}
		if earliest < 0 || entry.Time < earliest {
			earliest = entry.Time
		}
	}
	return earliest
}
