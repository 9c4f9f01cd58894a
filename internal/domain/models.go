package domain

import (
	"fmt"
	"time"
)

// SurveyResponses is the fixed-shape intake answer set. It is created by the
// intake flow and consumed read-only by the engine; required-field validation
// is the intake layer's contract, the engine only defends optional fields.
type SurveyResponses struct {
	CycleRegularity CycleRegularity    `json:"cycle_regularity"`
	CycleLength     int                `json:"cycle_length,omitempty"` // days, 21-45; 0 means absent
	LastPeriodDate  *time.Time         `json:"last_period_date,omitempty"`
	FlowType        FlowType           `json:"flow_type"`
	Symptoms        []string           `json:"symptoms,omitempty"`
	EnergyPattern   EnergyPattern      `json:"energy_pattern"`
	MoodPattern     MoodPattern        `json:"mood_pattern"`
	Cravings        []string           `json:"cravings,omitempty"`
	StressLevel     StressLevel        `json:"stress_level"`
	BirthControl    BirthControlStatus `json:"birth_control"`
	Conditions      []string           `json:"conditions,omitempty"`
	Age             int                `json:"age,omitempty"`
	Ethnicity       string             `json:"ethnicity,omitempty"`
	LabValues       LabValues          `json:"lab_values,omitempty"`
}

// LabValues carries the optional lab panel. Each field is either a parseable
// decimal string or empty; unparseable values are treated as absent, never as
// errors, and absence never contributes a zero-valued score adjustment.
type LabValues struct {
	FreeTestosterone string `json:"free_testosterone,omitempty"`
	DHEA             string `json:"dhea,omitempty"`
	LH               string `json:"lh,omitempty"`
	FSH              string `json:"fsh,omitempty"`
	TSH              string `json:"tsh,omitempty"`
	T3               string `json:"t3,omitempty"`
	FastingInsulin   string `json:"fasting_insulin,omitempty"`
	HbA1c            string `json:"hba1c,omitempty"`
}

// All returns the raw lab fields in a fixed order for counting and iteration.
func (l LabValues) All() []string {
	return []string{
		l.FreeTestosterone, l.DHEA, l.LH, l.FSH,
		l.TSH, l.T3, l.FastingInsulin, l.HbA1c,
	}
}

// HormoneScores maps each of the six hormone axes to a non-negative integer
// score. Scores are integers by design; any negative value indicates a rule
// table bug and is clamped defensively.
type HormoneScores map[Hormone]int

// NewHormoneScores returns a score map with all six axes initialized to zero.
func NewHormoneScores() HormoneScores {
	scores := make(HormoneScores, 6)
	for _, h := range CanonicalHormones() {
		scores[h] = 0
	}
	return scores
}

// Add increases the score for a hormone axis by the given amount.
func (s HormoneScores) Add(h Hormone, points int) {
	s[h] += points
}

// Total returns the sum of all six axis scores.
func (s HormoneScores) Total() int {
	total := 0
	for _, h := range CanonicalHormones() {
		total += s[h]
	}
	return total
}

// Clamp floors every axis score at zero. Current rules never subtract, so
// this is the invariant guard, not a correction path.
func (s HormoneScores) Clamp() {
	for _, h := range CanonicalHormones() {
		if s[h] < 0 {
			s[h] = 0
		}
	}
}

// Clone returns an independent copy of the score map.
func (s HormoneScores) Clone() HormoneScores {
	out := make(HormoneScores, len(s))
	for h, v := range s {
		out[h] = v
	}
	return out
}

// AnalysisResult is the output of a full scoring pass over one survey
// submission. Explanations are append-only and follow rule evaluation order
// so identical inputs always produce identical output.
type AnalysisResult struct {
	PrimaryImbalance    Hormone         `json:"primary_imbalance,omitempty"` // empty when all scores are zero
	SecondaryImbalances []Hormone       `json:"secondary_imbalances,omitempty"`
	Confidence          ConfidenceLevel `json:"confidence"`
	Explanations        []string        `json:"explanations"`
	Conflicts           []string        `json:"conflicts,omitempty"` // symptom/lab disagreements, no score effect
	HormoneScores       HormoneScores   `json:"hormone_scores"`
	TotalScore          int             `json:"total_score"`
	CyclePhase          CyclePhase      `json:"cycle_phase"`
}

// UserProfile is a projection of an AnalysisResult plus raw survey context,
// used only as lookup keys into a study's relevance maps. It is derived per
// ranking run and never stored independently.
type UserProfile struct {
	PrimaryImbalance    Hormone            `json:"primary_imbalance,omitempty"`
	SecondaryImbalances []Hormone          `json:"secondary_imbalances,omitempty"`
	HormoneScores       HormoneScores      `json:"hormone_scores,omitempty"`
	Conditions          []string           `json:"conditions,omitempty"`
	Symptoms            []string           `json:"symptoms,omitempty"`
	CyclePhase          CyclePhase         `json:"cycle_phase"`
	BirthControl        BirthControlStatus `json:"birth_control"`
	Cravings            []string           `json:"cravings,omitempty"`
	Age                 int                `json:"age,omitempty"`
	Ethnicity           string             `json:"ethnicity,omitempty"`
}

// ProfileFromResult builds a UserProfile from an analysis result and the
// survey it was computed from.
func ProfileFromResult(result *AnalysisResult, responses *SurveyResponses) *UserProfile {
	return &UserProfile{
		PrimaryImbalance:    result.PrimaryImbalance,
		SecondaryImbalances: result.SecondaryImbalances,
		HormoneScores:       result.HormoneScores,
		Conditions:          responses.Conditions,
		Symptoms:            responses.Symptoms,
		CyclePhase:          result.CyclePhase,
		BirthControl:        responses.BirthControl,
		Cravings:            responses.Cravings,
		Age:                 responses.Age,
		Ethnicity:           responses.Ethnicity,
	}
}

// ResearchStudy is one read-only corpus entry. The five relevance maps are
// keyed by normalized strings (lowercase, internal whitespace removed); a
// missing key contributes zero weight, never an error.
type ResearchStudy struct {
	ID               string           `json:"id" yaml:"id"`
	Title            string           `json:"title" yaml:"title"`
	Authors          string           `json:"authors,omitempty" yaml:"authors"`
	Journal          string           `json:"journal,omitempty" yaml:"journal"`
	PublicationYear  int              `json:"publication_year" yaml:"publication_year"`
	StudyType        StudyType        `json:"study_type" yaml:"study_type"`
	ParticipantCount int              `json:"participant_count" yaml:"participant_count"`
	RiskBiasScore    int              `json:"risk_bias_score" yaml:"risk_bias_score"` // 1-10, lower is better
	CitationCount    int              `json:"citation_count" yaml:"citation_count"`
	InterventionType InterventionType `json:"intervention_type" yaml:"intervention_type"`

	// Recommendation synthesis fields.
	Intervention      string   `json:"intervention" yaml:"intervention"` // short intervention name, used as title
	Protocol          string   `json:"protocol" yaml:"protocol"`         // the specific action studied
	Results           string   `json:"results" yaml:"results"`           // findings summary
	Contraindications []string `json:"contraindications,omitempty" yaml:"contraindications"`

	// Relevance weight maps, one per matching dimension.
	HormoneRelevance      map[Hormone]float64     `json:"hormone_relevance,omitempty" yaml:"hormone_relevance"`
	ConditionRelevance    map[string]float64      `json:"condition_relevance,omitempty" yaml:"condition_relevance"`
	SymptomRelevance      map[string]float64      `json:"symptom_relevance,omitempty" yaml:"symptom_relevance"`
	CyclePhaseRelevance   map[CyclePhase]float64  `json:"cycle_phase_relevance,omitempty" yaml:"cycle_phase_relevance"`
	BirthControlRelevance map[string]float64      `json:"birth_control_relevance,omitempty" yaml:"birth_control_relevance"`
	CravingRelevance      map[string]float64      `json:"craving_relevance,omitempty" yaml:"craving_relevance"` // optional
}

// Validate enforces the corpus schema contract at load time.
func (s *ResearchStudy) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("study validation: %w", ErrStudyMissingID)
	}
	if !s.InterventionType.IsValid() {
		return fmt.Errorf("study %s validation: %w: %q", s.ID, ErrInvalidInterventionType, s.InterventionType)
	}
	if !s.StudyType.IsValid() {
		return fmt.Errorf("study %s validation: %w: %q", s.ID, ErrInvalidStudyType, s.StudyType)
	}
	if s.RiskBiasScore < 1 || s.RiskBiasScore > 10 {
		return fmt.Errorf("study %s validation: %w: %d", s.ID, ErrRiskBiasOutOfRange, s.RiskBiasScore)
	}
	return nil
}

// StudyReference is the bibliographic slice of a study carried inside a
// recommendation for display and audit.
type StudyReference struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Journal          string `json:"journal,omitempty"`
	PublicationYear  int    `json:"publication_year"`
	ParticipantCount int    `json:"participant_count"`
}

// Reference projects a study to its bibliographic reference.
func (s *ResearchStudy) Reference() StudyReference {
	return StudyReference{
		ID:               s.ID,
		Title:            s.Title,
		Journal:          s.Journal,
		PublicationYear:  s.PublicationYear,
		ParticipantCount: s.ParticipantCount,
	}
}

// Recommendation is one ranked, evidence-backed behavioral suggestion.
// Recommendations are created per ranking run and not persisted by the engine.
type Recommendation struct {
	Category          InterventionType `json:"category"`
	Title             string           `json:"title"`
	SpecificAction    string           `json:"specific_action"`
	Frequency         string           `json:"frequency"`
	Duration          string           `json:"duration,omitempty"`
	Intensity         string           `json:"intensity,omitempty"`
	ExpectedTimeline  string           `json:"expected_timeline"`
	Priority          Priority         `json:"priority"`
	Contraindications []string         `json:"contraindications,omitempty"`
	ResearchSummary   string           `json:"research_summary"`
	BackingStudies    []StudyReference `json:"backing_studies"`
	RelevanceScore    float64          `json:"relevance_score"`
}

// AnalysisRecord is a stored analysis run: the submitted survey plus the
// computed result, kept for audit. Persistence lives outside the engine.
type AnalysisRecord struct {
	ID         string          `json:"id"`
	Responses  SurveyResponses `json:"responses"`
	Result     AnalysisResult  `json:"result"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Configuration models, unmarshaled by the config manager.

// Config is the main application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Engine   EngineConfig   `mapstructure:"engine"`
	Corpus   CorpusConfig   `mapstructure:"corpus"`
	Feedback FeedbackConfig `mapstructure:"feedback"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RateLimitRPS   float64       `mapstructure:"rate_limit_rps"`
	RateLimitBurst int           `mapstructure:"rate_limit_burst"`
}

// DatabaseConfig configures the optional Postgres store.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsPath  string        `mapstructure:"migrations_path"`
}

// CacheConfig configures the optional Redis analysis cache.
type CacheConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	RedisURL    string        `mapstructure:"redis_url"`
	DefaultTTL  time.Duration `mapstructure:"default_ttl"`
	MaxRetries  int           `mapstructure:"max_retries"`
	PoolSize    int           `mapstructure:"pool_size"`
	PoolTimeout time.Duration `mapstructure:"pool_timeout"`
}

// EngineConfig configures scoring behavior that is environmental rather than
// rule-table content.
type EngineConfig struct {
	// CurrentYear anchors study recency scoring; 0 means derive from the clock.
	CurrentYear int `mapstructure:"current_year"`
	// QualityCacheSize bounds the per-study quality score memo cache.
	QualityCacheSize int `mapstructure:"quality_cache_size"`
}

// CorpusConfig configures research corpus loading.
type CorpusConfig struct {
	// Path to a YAML corpus file; empty means use the embedded default corpus.
	Path string `mapstructure:"path"`
}

// FeedbackConfig configures recommendation feedback storage.
type FeedbackConfig struct {
	// Backend is "sqlite" or "postgres".
	Backend    string `mapstructure:"backend"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

// LoggingConfig configures logging output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
