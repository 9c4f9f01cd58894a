package service

import (
	"strings"

	"github.com/hormone-insights-server/internal/domain"
)

// scoreEffect is one fixed additive contribution to a hormone axis.
type scoreEffect struct {
	Hormone domain.Hormone
	Points  int
}

// symptomRule is one entry in the declarative scoring table. Rules are
// additive and independent; table order drives explanation order only.
type symptomRule struct {
	Name        string
	Applies     func(r *domain.SurveyResponses, phase domain.CyclePhase) bool
	Effects     []scoreEffect
	Explanation string
}

// normalizeKey lowercases and strips all whitespace. Relevance map keys and
// free-form survey set entries go through the same normalization so lookups
// are insensitive to casing and spacing.
func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

func hasEntry(set []string, candidates ...string) bool {
	for _, raw := range set {
		key := normalizeKey(raw)
		for _, c := range candidates {
			if key == c {
				return true
			}
		}
	}
	return false
}

func hasEntryPrefix(set []string, prefix string) bool {
	for _, raw := range set {
		if strings.HasPrefix(normalizeKey(raw), prefix) {
			return true
		}
	}
	return false
}

// symptomRules returns the ordered scoring table. Order follows the intake
// question order (cycle, flow, symptoms, energy, mood, cravings, stress,
// birth control, conditions) so explanation output is reproducible.
func symptomRules() []symptomRule {
	return []symptomRule{
		{
			Name: "irregular_cycles",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.CycleRegularity == domain.CycleIrregular
			},
			Effects:     []scoreEffect{{domain.HormoneProgesterone, 2}},
			Explanation: "Irregular cycles suggest low progesterone",
		},
		{
			Name: "no_period",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.CycleRegularity == domain.CycleNoPeriod
			},
			Effects:     []scoreEffect{{domain.HormoneAndrogens, 3}, {domain.HormoneEstrogen, 2}},
			Explanation: "Absent periods point to androgen excess or low estrogen",
		},
		{
			Name: "heavy_flow",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.FlowType == domain.FlowHeavy
			},
			Effects:     []scoreEffect{{domain.HormoneEstrogen, 3}},
			Explanation: "Heavy flow is associated with estrogen dominance",
		},
		{
			Name: "light_flow",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.FlowType == domain.FlowLight
			},
			Effects:     []scoreEffect{{domain.HormoneEstrogen, 2}},
			Explanation: "Light flow can indicate low estrogen",
		},
		{
			Name: "painful_flow",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.FlowType == domain.FlowPainful
			},
			Effects:     []scoreEffect{{domain.HormoneProgesterone, 2}, {domain.HormoneEstrogen, 1}},
			Explanation: "Painful periods suggest a progesterone to estrogen imbalance",
		},
		{
			Name: "acne",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return hasEntry(r.Symptoms, "acne")
			},
			Effects:     []scoreEffect{{domain.HormoneAndrogens, 3}},
			Explanation: "Acne is a common sign of elevated androgens",
		},
		{
			Name: "hair_loss",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return hasEntry(r.Symptoms, "hairloss", "hairthinning", "hairloss/thinning")
			},
			Effects:     []scoreEffect{{domain.HormoneAndrogens, 2}, {domain.HormoneThyroid, 1}},
			Explanation: "Hair loss or thinning can reflect androgens or thyroid function",
		},
		{
			// Luteal bloating is expected premenstrual physiology, so the
			// rule is suppressed in that phase.
			Name: "bloating",
			Applies: func(r *domain.SurveyResponses, phase domain.CyclePhase) bool {
				return hasEntry(r.Symptoms, "bloating") && phase != domain.PhaseLuteal
			},
			Effects:     []scoreEffect{{domain.HormoneEstrogen, 2}},
			Explanation: "Bloating outside the luteal phase suggests estrogen excess",
		},
		{
			Name: "breast_tenderness",
			Applies: func(r *domain.SurveyResponses, phase domain.CyclePhase) bool {
				return hasEntry(r.Symptoms, "breasttenderness") && phase != domain.PhaseLuteal
			},
			Effects:     []scoreEffect{{domain.HormoneEstrogen, 2}},
			Explanation: "Breast tenderness outside the luteal phase suggests estrogen excess",
		},
		{
			Name: "morning_fatigue",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.EnergyPattern == domain.EnergyMorningFatigue
			},
			Effects:     []scoreEffect{{domain.HormoneCortisol, 3}},
			Explanation: "Morning fatigue points to a disrupted cortisol rhythm",
		},
		{
			Name: "afternoon_crash",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.EnergyPattern == domain.EnergyAfternoonCrash
			},
			Effects:     []scoreEffect{{domain.HormoneInsulin, 2}, {domain.HormoneCortisol, 1}},
			Explanation: "Afternoon energy crashes suggest blood sugar swings",
		},
		{
			Name: "constant_fatigue",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.EnergyPattern == domain.EnergyConstantFatigue
			},
			Effects:     []scoreEffect{{domain.HormoneThyroid, 3}, {domain.HormoneCortisol, 3}},
			Explanation: "Constant fatigue is characteristic of low thyroid function",
		},
		{
			Name: "mood_rage",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.MoodPattern == domain.MoodRage
			},
			Effects:     []scoreEffect{{domain.HormoneProgesterone, 3}},
			Explanation: "Rage or anger episodes suggest low progesterone",
		},
		{
			Name: "mood_irritable",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.MoodPattern == domain.MoodIrritable
			},
			Effects:     []scoreEffect{{domain.HormoneProgesterone, 2}},
			Explanation: "Irritability suggests low progesterone",
		},
		{
			Name: "mood_sad",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.MoodPattern == domain.MoodSad
			},
			Effects:     []scoreEffect{{domain.HormoneThyroid, 2}, {domain.HormoneProgesterone, 1}},
			Explanation: "Low mood can reflect thyroid function and progesterone",
		},
		{
			Name: "craving_sugar",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return hasEntry(r.Cravings, "sugar")
			},
			Effects:     []scoreEffect{{domain.HormoneInsulin, 3}},
			Explanation: "Sugar cravings point to insulin resistance",
		},
		{
			Name: "craving_chocolate",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return hasEntry(r.Cravings, "chocolate")
			},
			Effects:     []scoreEffect{{domain.HormoneProgesterone, 2}},
			Explanation: "Chocolate cravings are associated with low progesterone",
		},
		{
			Name: "craving_salt",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return hasEntry(r.Cravings, "salt", "salty")
			},
			Effects:     []scoreEffect{{domain.HormoneCortisol, 2}},
			Explanation: "Salt cravings suggest adrenal stress",
		},
		{
			Name: "stress_high",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.StressLevel == domain.StressHigh
			},
			Effects:     []scoreEffect{{domain.HormoneCortisol, 3}, {domain.HormoneProgesterone, 1}},
			Explanation: "High stress elevates cortisol and depletes progesterone",
		},
		{
			Name: "stress_moderate",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.StressLevel == domain.StressModerate
			},
			Effects:     []scoreEffect{{domain.HormoneCortisol, 1}},
			Explanation: "Moderate stress adds a mild cortisol load",
		},
		{
			Name: "birth_control_stopped",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return r.BirthControl == domain.BirthControlRecentlyStopped
			},
			Effects:     []scoreEffect{{domain.HormoneAndrogens, 2}, {domain.HormoneEstrogen, 1}},
			Explanation: "Recently stopping hormonal birth control can cause a temporary androgen rebound",
		},
		{
			Name: "condition_pcos",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return hasEntry(r.Conditions, "pcos")
			},
			Effects:     []scoreEffect{{domain.HormoneAndrogens, 4}, {domain.HormoneInsulin, 3}},
			Explanation: "PCOS strongly indicates androgen excess with insulin resistance",
		},
		{
			Name: "condition_pmdd",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return hasEntry(r.Conditions, "pmdd")
			},
			Effects:     []scoreEffect{{domain.HormoneProgesterone, 3}},
			Explanation: "PMDD indicates progesterone sensitivity",
		},
		{
			Name: "condition_hashimotos",
			Applies: func(r *domain.SurveyResponses, _ domain.CyclePhase) bool {
				return hasEntryPrefix(r.Conditions, "hashimoto")
			},
			Effects:     []scoreEffect{{domain.HormoneThyroid, 4}},
			Explanation: "Hashimoto's indicates autoimmune thyroid dysfunction",
		},
	}
}
