package transition

import "github.com/jonathan/fairpath/internal/types"

// Skill classification cutoffs on occupation skill levels in [0,1]
const (
	// RelevantTargetLevel is the minimum target level for a skill to be classified at all
	RelevantTargetLevel = 0.1
	// TransferLevel is the minimum level in both occupations for a direct transfer
	TransferLevel = 0.3
	// LearnTargetLevel is the minimum target level for a skill that must be learned
	LearnTargetLevel = 0.4
	// LearnSourceCeiling is the exclusive source level below which a skill counts as missing
	LearnSourceCeiling = 0.2
	// OptionalTargetFloor is the inclusive lower bound of the optional band
	OptionalTargetFloor = 0.2
)

// List caps for the transfer map. Counts are reported uncapped.
const (
	MaxTransfers = 20
	MaxToLearn   = 20
	MaxOptional  = 15
)

// Difficulty cutoffs
const (
	LowDifficultyOverlap     = 70.0
	LowDifficultyMaxLearn    = 5
	HighDifficultyOverlap    = 40.0
	HighDifficultyMinLearn   = 15
	MediumDifficultyOverlap  = 50.0
	MediumDifficultyMaxLearn = 10
)

// Transition time model, in months
const (
	MonthsPerSkill      = 0.5
	OverlapDivisor      = 20.0
	MaxSpreadMultiplier = 1.5
	MinMonthsCap        = 36
	MaxMonthsCap        = 48
)

type monthRange struct{ min, max float64 }

var baseMonths = map[types.Difficulty]monthRange{
	types.DifficultyLow:    {3, 6},
	types.DifficultyMedium: {6, 12},
	types.DifficultyHigh:   {12, 24},
}

// Success and risk factor thresholds
const (
	StrongOverlap       = 60.0
	WeakOverlap         = 30.0
	FewSkillsToLearn    = 5
	ManySkillsToLearn   = 15
	EducationGapLevels  = 1.0
	StrongGrowthRate    = 10.0
	DecliningGrowthRate = -5.0
	WageIncreasePct     = 20.0
	WageDecreasePct     = -10.0
	VerdictRatio        = 1.5
)

// TimeEstimateNote accompanies every time estimate
const TimeEstimateNote = "These are rough estimates. Actual time depends on learning pace, available resources, and job market conditions."
