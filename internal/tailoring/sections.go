package tailoring

import (
	"regexp"
	"strings"

	"github.com/cvitae/cvitae/internal/types"
)

// SectionNames is the labeled-section order the tailoring prompt asks for.
var SectionNames = []string{"SUMMARY", "EXPERIENCE", "EDUCATION", "PROJECTS", "SKILLS", "LEADERSHIP", "CERTIFICATIONS", "VOLUNTEERING"}

// sectionDefaults are substituted when a section is missing entirely.
// Sections with an empty default are simply omitted when absent.
var sectionDefaults = map[string]string{
	"SUMMARY":    "Experienced professional seeking to apply relevant skills to this role.",
	"EXPERIENCE": "See attached resume for full work history.",
	"EDUCATION":  "Education details available on request.",
}

// SectionToggles select which resume sections a tailoring run may emit.
// A disabled section is omitted entirely, never emitted empty.
type SectionToggles struct {
	Experience     bool
	Education      bool
	Projects       bool
	Skills         bool
	Leadership     bool
	Certifications bool
	Volunteering   bool
}

// AllSections enables every section.
func AllSections() SectionToggles {
	return SectionToggles{
		Experience:     true,
		Education:      true,
		Projects:       true,
		Skills:         true,
		Leadership:     true,
		Certifications: true,
		Volunteering:   true,
	}
}

// enabled reports whether the named section may be emitted. Names without
// a toggle (the summary has its own option) are always allowed.
func (t SectionToggles) enabled(name string) bool {
	switch name {
	case "EXPERIENCE":
		return t.Experience
	case "EDUCATION":
		return t.Education
	case "PROJECTS":
		return t.Projects
	case "SKILLS":
		return t.Skills
	case "LEADERSHIP":
		return t.Leadership
	case "CERTIFICATIONS":
		return t.Certifications
	case "VOLUNTEERING":
		return t.Volunteering
	}
	return true
}

// filterSections drops sections whose toggle is off.
func filterSections(sections []types.Section, toggles SectionToggles) []types.Section {
	out := sections[:0]
	for _, s := range sections {
		if toggles.enabled(s.Name) {
			out = append(out, s)
		}
	}
	return out
}

// applyToggles clears disabled sections from extracted structured content
// so the builder never typesets them.
func applyToggles(content *types.ResumeContent, toggles SectionToggles) {
	if !toggles.Experience {
		content.Experience = nil
	}
	if !toggles.Education {
		content.Education = nil
	}
	if !toggles.Projects {
		content.Projects = nil
	}
	if !toggles.Skills {
		content.Skills = types.Skills{}
	}
}

// sectionPatterns match "NAME:" headed blocks running to the next
// all-caps header or end of text.
var sectionPatterns = buildSectionPatterns()

func buildSectionPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(SectionNames))
	for _, name := range SectionNames {
		patterns[name] = regexp.MustCompile(`(?ms)^` + name + `:\s*(.*?)(?:^[A-Z_]+:|\z)`)
	}
	return patterns
}

// ExtractSections splits tailored prose into named sections, tagging each
// with how it was obtained: parsed from a labeled block, recovered
// heuristically from unlabeled text, or defaulted. Sections whose default
// is empty are omitted when absent.
func ExtractSections(prose string) []types.Section {
	sections := make([]types.Section, 0, len(SectionNames))
	anyParsed := false

	for _, name := range SectionNames {
		match := sectionPatterns[name].FindStringSubmatch(prose)
		if match != nil {
			content := strings.TrimSpace(match[1])
			if content != "" {
				sections = append(sections, types.Section{Name: name, Content: content, Source: types.SectionParsed})
				anyParsed = true
				continue
			}
		}
		if def := sectionDefaults[name]; def != "" {
			sections = append(sections, types.Section{Name: name, Content: def, Source: types.SectionDefaulted})
		}
	}

	// Unlabeled response: treat the whole text as the experience section
	// rather than discarding it.
	if !anyParsed && strings.TrimSpace(prose) != "" {
		for i := range sections {
			if sections[i].Name == "EXPERIENCE" {
				sections[i] = types.Section{
					Name:    "EXPERIENCE",
					Content: strings.TrimSpace(prose),
					Source:  types.SectionHeuristic,
				}
				break
			}
		}
	}

	return sections
}

// experienceEntries pulls the headline line of each blank-line-separated
// block in the experience section, used for the selected-experience list
// when no structured extraction is available.
func experienceEntries(sections []types.Section) []string {
	for _, s := range sections {
		if s.Name != "EXPERIENCE" {
			continue
		}
		var out []string
		for _, block := range strings.Split(s.Content, "\n\n") {
			lines := strings.Split(strings.TrimSpace(block), "\n")
			if len(lines) == 0 {
				continue
			}
			head := strings.TrimSpace(strings.TrimLeft(lines[0], "-*• \t"))
			if head != "" {
				out = append(out, head)
			}
		}
		return out
	}
	return nil
}

// JoinSections renders sections back into labeled prose.
func JoinSections(sections []types.Section) string {
	var sb strings.Builder
	for i, s := range sections {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(s.Name)
		sb.WriteString(":\n")
		sb.WriteString(s.Content)
	}
	return sb.String()
}
