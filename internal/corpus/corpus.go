// Package corpus loads and validates the immutable research study corpus the
// recommendation ranker matches against. A default corpus ships embedded in
// the binary; deployments can point config at a YAML file to replace it.
package corpus

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hormone-insights-server/internal/domain"
)

//go:embed default_corpus.yaml
var defaultCorpusYAML []byte

// corpusFile is the on-disk YAML shape.
type corpusFile struct {
	Studies []*domain.ResearchStudy `yaml:"studies"`
}

// Corpus is the validated, read-only study set. Nothing writes to it after
// Load, so concurrent reads need no locking.
type Corpus struct {
	studies []*domain.ResearchStudy
	byID    map[string]*domain.ResearchStudy
}

// Load reads the corpus from path, or from the embedded default when path is
// empty. Every study is validated and its relevance map keys normalized
// before the corpus is usable.
func Load(path string, logger *logrus.Logger) (*Corpus, error) {
	data := defaultCorpusYAML
	source := "embedded"
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading corpus file %s: %w", path, err)
		}
		source = path
	}

	var file corpusFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing corpus YAML: %w", err)
	}

	c, err := New(file.Studies)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"source":  source,
		"studies": c.Len(),
	}).Info("Research corpus loaded")
	return c, nil
}

// New validates and indexes a study set.
func New(studies []*domain.ResearchStudy) (*Corpus, error) {
	if len(studies) == 0 {
		return nil, fmt.Errorf("loading corpus: %w", domain.ErrEmptyCorpus)
	}

	byID := make(map[string]*domain.ResearchStudy, len(studies))
	for _, study := range studies {
		if err := study.Validate(); err != nil {
			return nil, fmt.Errorf("loading corpus: %w", err)
		}
		if _, exists := byID[study.ID]; exists {
			return nil, fmt.Errorf("loading corpus: %w: %s", domain.ErrDuplicateStudyID, study.ID)
		}
		normalizeStudyKeys(study)
		byID[study.ID] = study
	}

	return &Corpus{studies: studies, byID: byID}, nil
}

// Studies returns all studies in corpus order. Callers must not mutate the
// returned slice or its entries.
func (c *Corpus) Studies() []*domain.ResearchStudy {
	return c.studies
}

// Get returns a study by ID.
func (c *Corpus) Get(id string) (*domain.ResearchStudy, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// Len returns the number of studies.
func (c *Corpus) Len() int {
	return len(c.studies)
}

// normalizeStudyKeys rewrites the string-keyed relevance maps with lowercased,
// whitespace-stripped keys so profile lookups match regardless of authoring
// style.
func normalizeStudyKeys(study *domain.ResearchStudy) {
	study.ConditionRelevance = normalizeMap(study.ConditionRelevance)
	study.SymptomRelevance = normalizeMap(study.SymptomRelevance)
	study.BirthControlRelevance = normalizeMap(study.BirthControlRelevance)
	study.CravingRelevance = normalizeMap(study.CravingRelevance)
}

func normalizeMap(m map[string]float64) map[string]float64 {
	if len(m) == 0 {
		return m
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[strings.Join(strings.Fields(strings.ToLower(k)), "")] = v
	}
	return out
}
