// Package careers holds the career catalog and matches users against it.
package careers

import "fmt"

// ResourceType classifies a learning resource.
type ResourceType string

const (
	ResourceCourse        ResourceType = "course"
	ResourceArticle       ResourceType = "article"
	ResourceTool          ResourceType = "tool"
	ResourceCertification ResourceType = "certification"
)

// Valid reports whether t is a known resource type.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceCourse, ResourceArticle, ResourceTool, ResourceCertification:
		return true
	}
	return false
}

// Resource is a learning link attached to a career.
type Resource struct {
	Title string       `json:"title" yaml:"title"`
	URL   string       `json:"url" yaml:"url"`
	Type  ResourceType `json:"type" yaml:"type"`
}

// Career is one catalog entry.
type Career struct {
	ID               string     `json:"id" yaml:"id"`
	Title            string     `json:"title" yaml:"title"`
	Description      string     `json:"description" yaml:"description"`
	RequiredSkills   []string   `json:"requiredSkills" yaml:"required_skills"`
	AverageSalary    string     `json:"averageSalary" yaml:"average_salary"`
	GrowthProjection string     `json:"growthProjection" yaml:"growth_projection"`
	NextSkills       []string   `json:"nextSkills" yaml:"next_skills"`
	Resources        []Resource `json:"resources" yaml:"resources"`
}

// Catalog is an ordered list of careers. Order breaks ties in matching.
type Catalog []Career

// Get returns the career with the given ID.
func (c Catalog) Get(id string) (Career, bool) {
	for _, career := range c {
		if career.ID == id {
			return career, true
		}
	}
	return Career{}, false
}

// Default returns the built-in catalog.
func Default() Catalog {
	out := make(Catalog, len(builtin))
	for i, c := range builtin {
		out[i] = c.clone()
	}
	return out
}

func (c Career) clone() Career {
	c.RequiredSkills = append([]string(nil), c.RequiredSkills...)
	c.NextSkills = append([]string(nil), c.NextSkills...)
	c.Resources = append([]Resource(nil), c.Resources...)
	return c
}

var builtin = Catalog{
	{
		ID:               "ai-engineer",
		Title:            "AI/ML Engineer",
		Description:      "Design and develop AI systems, machine learning models, and intelligent applications.",
		RequiredSkills:   []string{"Logic", "Problem-Solving", "Analytical Thinking", "Intro to ML", "Applied AI"},
		AverageSalary:    "$120k - $200k",
		GrowthProjection: "+40% by 2030",
		NextSkills:       []string{"Deep Learning", "Python Programming", "Statistics", "Computer Vision"},
		Resources: []Resource{
			{Title: "Machine Learning Course", URL: "https://coursera.org/ml", Type: ResourceCourse},
			{Title: "TensorFlow Certification", URL: "https://tensorflow.org/certificate", Type: ResourceCertification},
		},
	},
	{
		ID:               "content-creator",
		Title:            "AI Content Creator",
		Description:      "Create engaging content using AI tools, focusing on education and entertainment.",
		RequiredSkills:   []string{"Creativity", "Communication", "Media Literacy", "Prompt Engineering"},
		AverageSalary:    "$50k - $150k",
		GrowthProjection: "+30% by 2030",
		NextSkills:       []string{"Video Production", "Social Media Marketing", "Brand Strategy"},
		Resources: []Resource{
			{Title: "Content Strategy Guide", URL: "https://example.com/content", Type: ResourceArticle},
			{Title: "AI Content Tools", URL: "https://example.com/tools", Type: ResourceTool},
		},
	},
	{
		ID:               "ai-ethicist",
		Title:            "AI Ethics Specialist",
		Description:      "Ensure responsible AI development and deployment, addressing bias and ethical concerns.",
		RequiredSkills:   []string{"Ethical Decision-Making", "Critical Thinking", "Communication", "Research"},
		AverageSalary:    "$90k - $160k",
		GrowthProjection: "+50% by 2030",
		NextSkills:       []string{"Policy Analysis", "Legal Knowledge", "Philosophy", "Risk Assessment"},
		Resources: []Resource{
			{Title: "AI Ethics Certificate", URL: "https://example.com/ethics", Type: ResourceCertification},
			{Title: "Ethics in AI Research", URL: "https://example.com/research", Type: ResourceArticle},
		},
	},
	{
		ID:               "data-scientist",
		Title:            "Data Scientist",
		Description:      "Analyze complex data to extract insights and drive business decisions.",
		RequiredSkills:   []string{"Analytical Thinking", "Logic", "Research", "Problem-Solving"},
		AverageSalary:    "$100k - $180k",
		GrowthProjection: "+35% by 2030",
		NextSkills:       []string{"Statistics", "R/Python", "Data Visualization", "SQL"},
		Resources: []Resource{
			{Title: "Data Science Bootcamp", URL: "https://example.com/ds", Type: ResourceCourse},
			{Title: "Tableau Certification", URL: "https://example.com/tableau", Type: ResourceCertification},
		},
	},
}

// String implements fmt.Stringer.
func (c Career) String() string {
	return fmt.Sprintf("%s (%s)", c.Title, c.ID)
}
