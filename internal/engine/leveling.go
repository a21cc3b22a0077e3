package engine

import "math"

// Curve is the leveling growth curve. Every constant is tunable so the
// economy can be rebalanced from config without code changes.
type Curve struct {
	BaseExp      int
	GrowthFactor float64

	PercentDefault float64
	PercentLow     float64
	PercentMedium  float64
	PercentHigh    float64
}

func DefaultCurve() Curve {
	return Curve{
		BaseExp:        234,
		GrowthFactor:   1.5,
		PercentDefault: 0.10,
		PercentLow:     0.15,
		PercentMedium:  0.25,
		PercentHigh:    0.40,
	}
}

// XPForNextLevel returns the XP required to clear the given level:
// floor(baseExp * growth^(level-1)). Levels below 1 are treated as 1.
func (c Curve) XPForNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	req := float64(c.BaseExp) * math.Pow(c.GrowthFactor, float64(level-1))
	return int(math.Floor(req))
}

func (c Curve) percentFor(intensity Intensity) float64 {
	switch intensity {
	case IntensityLow:
		return c.PercentLow
	case IntensityMedium:
		return c.PercentMedium
	case IntensityHigh:
		return c.PercentHigh
	default:
		return c.PercentDefault
	}
}

// TaskXPReward returns the XP a task of the given intensity is worth for a
// player at the given level. The reward scales with the level threshold so a
// late-game task grants proportionally more XP than an early-game one of the
// same intensity. The value is frozen at task creation time.
func (c Curve) TaskXPReward(level int, intensity Intensity) int {
	reward := math.Floor(float64(c.XPForNextLevel(level)) * c.percentFor(intensity))
	if reward < 0 {
		return 0
	}
	return int(reward)
}
