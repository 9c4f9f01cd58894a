// Package domain contains the core business entities for hormone imbalance
// assessment and research-backed recommendation matching.
//
// The engine scores self-reported symptoms (plus optional lab values) across
// six hormone axes and matches the derived profile against a static corpus of
// research studies.
package domain

// Hormone identifies one of the six tracked hormone axes.
type Hormone string

const (
	HormoneAndrogens    Hormone = "androgens"
	HormoneProgesterone Hormone = "progesterone"
	HormoneEstrogen     Hormone = "estrogen"
	HormoneThyroid      Hormone = "thyroid"
	HormoneCortisol     Hormone = "cortisol"
	HormoneInsulin      Hormone = "insulin"
)

// CanonicalHormones returns the six hormone axes in their canonical order.
// This order is also the tie-break order for primary/secondary imbalances,
// so every iteration over scores must use it rather than ranging over a map.
func CanonicalHormones() []Hormone {
	return []Hormone{
		HormoneAndrogens,
		HormoneProgesterone,
		HormoneEstrogen,
		HormoneThyroid,
		HormoneCortisol,
		HormoneInsulin,
	}
}

// IsValid reports whether the hormone is one of the six tracked axes.
func (h Hormone) IsValid() bool {
	switch h {
	case HormoneAndrogens, HormoneProgesterone, HormoneEstrogen,
		HormoneThyroid, HormoneCortisol, HormoneInsulin:
		return true
	default:
		return false
	}
}

// String returns the string representation of the hormone axis.
func (h Hormone) String() string {
	return string(h)
}

// CyclePhase is the categorical position within the menstrual cycle.
// PhaseUnknown is a real input to scoring, not a post-hoc label: it is used
// whenever cycle data is absent or the cycle is irregular.
type CyclePhase string

const (
	PhaseMenstrual  CyclePhase = "menstrual"
	PhaseFollicular CyclePhase = "follicular"
	PhaseOvulation  CyclePhase = "ovulation"
	PhaseLuteal     CyclePhase = "luteal"
	PhaseUnknown    CyclePhase = "unknown"
)

// IsValid reports whether the cycle phase is a known value.
func (p CyclePhase) IsValid() bool {
	switch p {
	case PhaseMenstrual, PhaseFollicular, PhaseOvulation, PhaseLuteal, PhaseUnknown:
		return true
	default:
		return false
	}
}

// String returns the string representation of the cycle phase.
func (p CyclePhase) String() string {
	return string(p)
}

// ConfidenceLevel expresses how much trust to place in an analysis result.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// IsValid reports whether the confidence level is a known value.
func (c ConfidenceLevel) IsValid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	default:
		return false
	}
}

// String returns the string representation of the confidence level.
func (c ConfidenceLevel) String() string {
	return string(c)
}

// Downgrade returns the confidence level one step lower; low stays low.
func (c ConfidenceLevel) Downgrade() ConfidenceLevel {
	switch c {
	case ConfidenceHigh:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Upgrade returns the confidence level one step higher; high stays high.
func (c ConfidenceLevel) Upgrade() ConfidenceLevel {
	switch c {
	case ConfidenceLow:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}

// StudyType classifies a research study's subject population.
type StudyType string

const (
	StudyHuman  StudyType = "human"
	StudyAnimal StudyType = "animal"
	StudyReview StudyType = "review"
)

// IsValid reports whether the study type is a known value.
func (s StudyType) IsValid() bool {
	switch s {
	case StudyHuman, StudyAnimal, StudyReview:
		return true
	default:
		return false
	}
}

// InterventionType is the behavioral category a study's intervention falls in.
// CategoryCombined studies are eligible for ranking in every category.
type InterventionType string

const (
	CategoryFood        InterventionType = "food"
	CategoryMovement    InterventionType = "movement"
	CategoryMindfulness InterventionType = "mindfulness"
	CategoryCombined    InterventionType = "combined"
)

// RecommendationCategories returns the three categories recommendations are
// grouped into. Combined is an intervention type, never an output category.
func RecommendationCategories() []InterventionType {
	return []InterventionType{CategoryFood, CategoryMovement, CategoryMindfulness}
}

// IsValid reports whether the intervention type is a known value.
func (i InterventionType) IsValid() bool {
	switch i {
	case CategoryFood, CategoryMovement, CategoryMindfulness, CategoryCombined:
		return true
	default:
		return false
	}
}

// String returns the string representation of the intervention type.
func (i InterventionType) String() string {
	return string(i)
}

// Priority expresses how strongly a recommendation applies to a user.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// IsValid reports whether the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// Survey answer enums. These mirror the fixed answer sets of the intake form;
// the intake layer validates free-form input before it reaches the engine.

// CycleRegularity is the answer to "are your cycles regular?".
type CycleRegularity string

const (
	CycleRegular   CycleRegularity = "regular"
	CycleIrregular CycleRegularity = "irregular"
	CycleNoPeriod  CycleRegularity = "no_period"
)

// FlowType is the answer describing menstrual flow.
type FlowType string

const (
	FlowHeavy    FlowType = "heavy"
	FlowLight    FlowType = "light"
	FlowPainful  FlowType = "painful"
	FlowModerate FlowType = "moderate"
	FlowNone     FlowType = "none"
)

// EnergyPattern is the answer describing daily energy.
type EnergyPattern string

const (
	EnergyMorningFatigue  EnergyPattern = "morning_fatigue"
	EnergyAfternoonCrash  EnergyPattern = "afternoon_crash"
	EnergyConstantFatigue EnergyPattern = "constant_fatigue"
	EnergyStable          EnergyPattern = "stable"
)

// MoodPattern is the answer describing dominant mood.
type MoodPattern string

const (
	MoodRage      MoodPattern = "rage"
	MoodIrritable MoodPattern = "irritable"
	MoodSad       MoodPattern = "sad"
	MoodStable    MoodPattern = "stable"
)

// StressLevel is the self-reported stress level.
type StressLevel string

const (
	StressHigh     StressLevel = "high"
	StressModerate StressLevel = "moderate"
	StressLow      StressLevel = "low"
)

// BirthControlStatus is the answer describing hormonal birth control use.
type BirthControlStatus string

const (
	BirthControlNone            BirthControlStatus = "none"
	BirthControlCurrent         BirthControlStatus = "current"
	BirthControlRecentlyStopped BirthControlStatus = "recently_stopped"
)
