// Package matcher scores a free-text skill list against the career catalog.
package matcher

import (
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"career-advisor/internal/catalog"
	"career-advisor/internal/domain"
)

// Match parses rawSkills as a comma separated list and ranks every catalog
// career by the share of its required skills present in that list.
// Careers with equal scores keep their catalog order.
func Match(rawSkills string, c *catalog.Catalog) []domain.CareerMatch {
	have := SkillSet(rawSkills)

	careers := c.Careers()
	results := make([]domain.CareerMatch, 0, len(careers))
	for _, career := range careers {
		required := make(map[string]struct{}, len(career.RequiredSkills))
		for _, s := range career.RequiredSkills {
			if n := Normalize(s); n != "" {
				required[n] = struct{}{}
			}
		}

		matched := make([]string, 0, len(required))
		missing := make([]string, 0, len(required))
		for skill := range required {
			if _, ok := have[skill]; ok {
				matched = append(matched, skill)
			} else {
				missing = append(missing, skill)
			}
		}
		sort.Strings(matched)
		sort.Strings(missing)

		results = append(results, domain.CareerMatch{
			Career:        career.Name,
			MatchScore:    score(len(matched), len(required)),
			MatchedSkills: matched,
			MissingSkills: missing,
			Roadmap:       career.Roadmap,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
	return results
}

// SkillSet splits comma separated text into a set of normalized skill names.
func SkillSet(raw string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		if n := Normalize(part); n != "" {
			out[n] = struct{}{}
		}
	}
	return out
}

// Normalize trims a skill name and upper-cases its first letter while
// lower-casing the rest, so "machine LEARNING" becomes "Machine learning".
func Normalize(skill string) string {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(skill)
	return string(unicode.ToUpper(first)) + strings.ToLower(skill[size:])
}

func score(matched, required int) float64 {
	if required == 0 {
		return 0
	}
	return math.Round(float64(matched)/float64(required)*100*100) / 100
}
