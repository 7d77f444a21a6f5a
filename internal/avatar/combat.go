package avatar

import "math"

// PhysicalDamage is the damage of a basic attack, never less than 1.
func PhysicalDamage(attack, targetDefensePercent float64) int {
	return max(1, int(math.Round(attack*defenseFactor(targetDefensePercent))))
}

// AbilityDamage is the damage of an mp based ability, never less than 2.
func AbilityDamage(mp, targetDefensePercent float64) int {
	return max(2, int(math.Round(mp*2*defenseFactor(targetDefensePercent))))
}

func defenseFactor(targetDefensePercent float64) float64 {
	return 1 - math.Min(MaxPercentStat, targetDefensePercent)/100
}
