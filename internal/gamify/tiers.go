package gamify

// Tier groups levels into named bands.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
	TierDiamond  Tier = "diamond"
)

// defaultTierName is returned when a tier has no name list.
const defaultTierName = "Fitness Enthusiast"

// tierStart maps each tier to its first level.
var tierStart = map[Tier]int{
	TierBronze:   1,
	TierSilver:   6,
	TierGold:     11,
	TierPlatinum: 16,
	TierDiamond:  21,
}

// tierColors are the display colours per tier, hex equivalents of the
// original HSL palette.
var tierColors = map[Tier]string{
	TierBronze:   "#CC8533",
	TierSilver:   "#A6A6A6",
	TierGold:     "#E6B219",
	TierPlatinum: "#A3B8C2",
	TierDiamond:  "#66CCFF",
}

// tierNames lists one name per level within a tier; the last name repeats
// for any levels past the end of the list.
var tierNames = map[Tier][]string{
	TierBronze:   {"Fitness Rookie", "Beginner", "Starter", "Learner", "Novice"},
	TierSilver:   {"Gym Regular", "Consistent", "Dedicated", "Focused", "Committed"},
	TierGold:     {"Iron Warrior", "Strong", "Powerful", "Mighty", "Champion"},
	TierPlatinum: {"Elite Athlete", "Pro", "Expert", "Master", "Legend"},
	TierDiamond:  {"Fitness Titan", "Ultimate", "Supreme", "Immortal", "Divine"},
}

// MotivationalQuotes are shown by the client between sessions.
var MotivationalQuotes = []string{
	"Every rep counts. Every message brings you closer to your goals.",
	"Consistency beats intensity. Keep showing up.",
	"The only bad workout is the one that didn't happen.",
	"Your body can stand almost anything. It's your mind you need to convince.",
	"Progress, not perfection.",
	"Small steps lead to big changes.",
	"You're stronger than you think.",
	"The pain you feel today will be the strength you feel tomorrow.",
	"Don't wish for it. Work for it.",
	"Success starts with self-discipline.",
}

// WelcomeMessage greets a fresh conversation.
const WelcomeMessage = `Hello! I'm your personal fitness coach. I'm here to help you with:

- Workout planning: weightlifting, cardio, yoga, and more
- Nutrition guidance: balanced eating and protein intake
- Recovery tips: sleep, stretching, and injury prevention
- Motivation: staying consistent with your fitness journey

What would you like to work on today?`

// TierFor returns the tier a level belongs to.
func TierFor(level int) Tier {
	switch {
	case level <= 5:
		return TierBronze
	case level <= 10:
		return TierSilver
	case level <= 15:
		return TierGold
	case level <= 20:
		return TierPlatinum
	default:
		return TierDiamond
	}
}

// TierColor returns the display colour for a level's tier.
func TierColor(level int) string {
	return tierColors[TierFor(level)]
}

// TierName returns the display name for a level, indexed within its tier's
// name list and clamped to the final entry for deep levels.
func TierName(level int) string {
	tier := TierFor(level)
	names := tierNames[tier]
	if len(names) == 0 {
		return defaultTierName
	}
	idx := level - tierStart[tier]
	if idx >= len(names) {
		idx = len(names) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return names[idx]
}
