// Package catalog holds the read-only reference data shared by every request:
// careers with their required skills, the quiz bank and the mock interview script.
//
// A Catalog is built once at start-up and never mutated afterwards, so it can be
// shared across goroutines without locking. Slices returned by its accessors are
// owned by the catalog and must not be modified.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultDocument []byte

// Career is one entry of the career catalog.
type Career struct {
	Name           string   `yaml:"name"`
	RequiredSkills []string `yaml:"required_skills"`
	Roadmap        []string `yaml:"roadmap"`
	SalaryEstimate string   `yaml:"salary_estimate"`
}

// Question is a quiz bank entry, including its correct answer.
type Question struct {
	Question string   `yaml:"q"`
	Options  []string `yaml:"options"`
	Answer   string   `yaml:"a"`
}

// KeywordGroup labels a set of words looked for in interview answers.
type KeywordGroup struct {
	Label string   `yaml:"label"`
	Words []string `yaml:"words"`
}

type document struct {
	Careers []Career `yaml:"careers"`
	Quiz    []struct {
		Topic     string     `yaml:"topic"`
		Questions []Question `yaml:"questions"`
	} `yaml:"quiz"`
	Interview struct {
		DefaultQuestions []string `yaml:"default_questions"`
		Careers          []struct {
			Career    string   `yaml:"career"`
			Questions []string `yaml:"questions"`
		} `yaml:"careers"`
		Keywords []KeywordGroup `yaml:"keywords"`
	} `yaml:"interview"`
}

// Catalog is the immutable reference data set.
type Catalog struct {
	careers     []Career
	careerIndex map[string]int

	topics    []string
	quizBank  map[string][]Question
	interview map[string][]string

	defaultInterview []string
	keywords         []KeywordGroup
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// Load reads a catalog from a YAML file. An empty path yields the built-in catalog.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		careerIndex: make(map[string]int, len(doc.Careers)),
		quizBank:    make(map[string][]Question, len(doc.Quiz)),
		interview:   make(map[string][]string, len(doc.Interview.Careers)),
	}

	for _, career := range doc.Careers {
		name := strings.TrimSpace(career.Name)
		if name == "" {
			return nil, fmt.Errorf("career name is required")
		}
		if _, dup := c.careerIndex[name]; dup {
			return nil, fmt.Errorf("duplicate career %q", name)
		}
		career.Name = name
		c.careerIndex[name] = len(c.careers)
		c.careers = append(c.careers, career)
	}

	for _, topic := range doc.Quiz {
		name := strings.TrimSpace(topic.Topic)
		if name == "" {
			return nil, fmt.Errorf("quiz topic name is required")
		}
		if _, dup := c.quizBank[name]; dup {
			return nil, fmt.Errorf("duplicate quiz topic %q", name)
		}
		for i, q := range topic.Questions {
			if strings.TrimSpace(q.Question) == "" || q.Answer == "" {
				return nil, fmt.Errorf("quiz topic %q question %d: question and answer are required", name, i)
			}
		}
		c.topics = append(c.topics, name)
		c.quizBank[name] = topic.Questions
	}

	for _, set := range doc.Interview.Careers {
		c.interview[strings.TrimSpace(set.Career)] = set.Questions
	}
	c.defaultInterview = doc.Interview.DefaultQuestions
	c.keywords = doc.Interview.Keywords

	return c, nil
}

// Careers returns every career in catalog order.
func (c *Catalog) Careers() []Career {
	return c.careers
}

// Career looks a career up by its exact name.
func (c *Catalog) Career(name string) (Career, bool) {
	idx, ok := c.careerIndex[name]
	if !ok {
		return Career{}, false
	}
	return c.careers[idx], true
}

// Skills returns every distinct required skill across the catalog, in first-seen order.
func (c *Catalog) Skills() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, career := range c.careers {
		for _, skill := range career.RequiredSkills {
			if _, ok := seen[skill]; ok {
				continue
			}
			seen[skill] = struct{}{}
			out = append(out, skill)
		}
	}
	return out
}

// Topics lists the quiz topics in catalog order.
func (c *Catalog) Topics() []string {
	return c.topics
}

// Questions returns the canonical, ordered question bank for a topic.
func (c *Catalog) Questions(topic string) ([]Question, bool) {
	qs, ok := c.quizBank[topic]
	return qs, ok
}

// InterviewQuestions returns the scripted questions for a career, falling back
// to the generic script for careers without one.
func (c *Catalog) InterviewQuestions(career string) []string {
	if qs, ok := c.interview[career]; ok {
		return qs
	}
	return c.defaultInterview
}

func (c *Catalog) InterviewKeywords() []KeywordGroup {
	return c.keywords
}
