package types

// ResumeContent is the structured form of a tailored resume, extracted from
// LLM output and consumed by the LaTeX builder. Field names mirror the JSON
// the extraction prompt asks for.
type ResumeContent struct {
	PersonalInfo PersonalInfo `json:"personalInfo"`
	Summary      string       `json:"summary,omitempty"`
	Education    []Education  `json:"education"`
	Experience   []Experience `json:"experience"`
	Projects     []Project    `json:"projects"`
	Skills       Skills       `json:"skills"`
}

// PersonalInfo is the resume header block.
type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Institution string `json:"institution"`
	Location    string `json:"location,omitempty"`
	Degree      string `json:"degree"`
	Dates       string `json:"dates,omitempty"`
}

// Experience is a single work-experience entry.
type Experience struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location,omitempty"`
	Dates    string   `json:"dates,omitempty"`
	Bullets  []string `json:"bullets"`
}

// Project is a single project entry.
type Project struct {
	Name         string   `json:"name"`
	Technologies string   `json:"technologies,omitempty"`
	Dates        string   `json:"dates,omitempty"`
	Bullets      []string `json:"bullets"`
}

// Skills groups technical skills by category.
type Skills struct {
	Languages  []string `json:"languages,omitempty"`
	Frameworks []string `json:"frameworks,omitempty"`
	Tools      []string `json:"tools,omitempty"`
	Libraries  []string `json:"libraries,omitempty"`
}

// Empty reports whether the content has no renderable sections.
func (c *ResumeContent) Empty() bool {
	return len(c.Education) == 0 && len(c.Experience) == 0 && len(c.Projects) == 0
}
