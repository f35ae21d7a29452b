package domain

// Personality tunes the voice of generated posts. Weights are 0..1 and are
// passed to the provider as textual guidance; only Enthusiasm also drives
// post-processing.
type Personality struct {
	Formality       float64                `yaml:"formality"        json:"formality"`
	Enthusiasm      float64                `yaml:"enthusiasm"       json:"enthusiasm"`
	Humor           float64                `yaml:"humor"            json:"humor"`
	Expertise       float64                `yaml:"expertise_level"  json:"expertise_level"`
	PreferredTopics []string               `yaml:"preferred_topics" json:"preferred_topics"`
	Templates       map[ContentType]string `yaml:"response_templates" json:"response_templates"`
}

// Template returns the response template for a content type, or "".
func (p Personality) Template(t ContentType) string {
	return p.Templates[t]
}

// UserContext holds facts about the author that are merged into prompts.
type UserContext struct {
	EducationLevel       string   `yaml:"education_level"       json:"education_level"`
	Major                string   `yaml:"major"                 json:"major"`
	University           string   `yaml:"university"            json:"university"`
	AcademicInterests    []string `yaml:"academic_interests"    json:"academic_interests"`
	Skills               []string `yaml:"skills"                json:"skills"`
	CareerGoals          []string `yaml:"career_goals"          json:"career_goals"`
	TargetCompanies      []string `yaml:"target_companies"      json:"target_companies"`
	InternshipExperience []string `yaml:"internship_experience" json:"internship_experience"`
	PersonalBrand        string   `yaml:"personal_brand"        json:"personal_brand"`
	WritingStyle         string   `yaml:"writing_style"         json:"writing_style"`
	ContentFocus         []string `yaml:"content_focus"         json:"content_focus"`
	Tone                 string   `yaml:"tone"                  json:"tone"`
	RecentTopics         []string `yaml:"recent_topics"         json:"recent_topics"`
	PreferredHashtags    []string `yaml:"preferred_hashtags"    json:"preferred_hashtags"`
}

// DefaultPersonality is used when no personality file is configured.
func DefaultPersonality() Personality {
	return Personality{
		Formality:  0.7,
		Enthusiasm: 0.8,
		Humor:      0.5,
		Expertise:  0.8,
		PreferredTopics: []string{
			"technology",
			"artificial intelligence",
			"software development",
			"data science",
			"entrepreneurship",
		},
		Templates: map[ContentType]string{
			ContentArticle: "I found this article fascinating because {reason}.\n" +
				"The key insights that stood out to me are:\n{key_points}\n\n" +
				"What are your thoughts on {topic}? I'd love to hear your perspective!",
			ContentVideo: "Just watched this incredible video about {topic}.\n" +
				"The most impactful moment was when {highlight}.\n\n" +
				"This really made me think about {reflection}.\n" +
				"Has anyone else had similar experiences?",
		},
	}
}

// DefaultUserContext is used when no user context file is configured.
func DefaultUserContext() UserContext {
	return UserContext{
		EducationLevel:       "Undergraduate",
		Major:                "Computer Science",
		University:           "University of Technology",
		AcademicInterests:    []string{"Artificial Intelligence", "Machine Learning", "Software Engineering"},
		Skills:               []string{"Python", "Machine Learning", "Data Structures", "Algorithms"},
		CareerGoals:          []string{"AI Research", "Software Development", "Tech Innovation"},
		TargetCompanies:      []string{"Meta", "Google", "OpenAI"},
		InternshipExperience: []string{"Software Engineering Intern", "AI Research Assistant"},
		PersonalBrand:        "Tech-Savvy Student and AI Enthusiast",
		WritingStyle:         "Clear, concise, and technically accurate",
		ContentFocus: []string{
			"AI and Machine Learning Developments",
			"Tech Industry Insights",
			"Student Perspective on Tech",
			"Learning and Growth in Tech",
		},
		Tone:              "Professional yet approachable",
		RecentTopics:      []string{"AI Models", "Open Source", "Tech Innovation"},
		PreferredHashtags: []string{"#AI", "#MachineLearning", "#TechStudent", "#Innovation"},
	}
}
