package domain

// StreakTier classifies consecutive engaged days.
type StreakTier string

const (
	StreakBronze  StreakTier = "bronze"
	StreakSilver  StreakTier = "silver"
	StreakGold    StreakTier = "gold"
	StreakDiamond StreakTier = "diamond"
)

const pointsPerLevel = 100

// StreakTierFor maps a consecutive-day count onto its tier.
func StreakTierFor(days int) StreakTier {
	switch {
	case days >= 10:
		return StreakDiamond
	case days >= 7:
		return StreakGold
	case days >= 2:
		return StreakSilver
	default:
		return StreakBronze
	}
}

// Rank orders tiers from bronze (0) to diamond (3).
func (t StreakTier) Rank() int {
	switch t {
	case StreakSilver:
		return 1
	case StreakGold:
		return 2
	case StreakDiamond:
		return 3
	default:
		return 0
	}
}

// Label returns the localized tier name.
func (t StreakTier) Label() string {
	switch t {
	case StreakSilver:
		return "Gümüş"
	case StreakGold:
		return "Qızıl"
	case StreakDiamond:
		return "Almaz"
	default:
		return "Bronz"
	}
}

// StreakTier is derived from StreakDays on every call.
func (w *WorkerProfile) StreakTier() StreakTier {
	return StreakTierFor(w.StreakDays)
}

// Level starts at 1 and grows every 100 points.
func (w *WorkerProfile) Level() int {
	if w.Points < 0 {
		return 1
	}
	return w.Points/pointsPerLevel + 1
}

// PointsToNextLevel is the remaining distance to the next level.
func (w *WorkerProfile) PointsToNextLevel() int {
	if w.Points < 0 {
		return pointsPerLevel
	}
	return pointsPerLevel - w.Points%pointsPerLevel
}
