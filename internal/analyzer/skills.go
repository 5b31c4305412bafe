package analyzer

import (
	"math"
	"sort"
	"strings"
)

// Skill dictionaries used for local, deterministic matching. Detection
// is case-insensitive presence with word-boundary checks, so multi-word
// terms like "spring boot" match as written while single-letter entries
// like "r" don't match inside other words.

type skillCategory struct {
	name   string
	skills []string
}

var technicalSkillCategories = []skillCategory{
	{"Programming Languages", []string{
		"python", "java", "javascript", "typescript", "c++", "c#", "go",
		"rust", "php", "ruby", "swift", "kotlin", "scala", "r", "matlab", "perl",
	}},
	{"Web Technologies", []string{
		"html", "css", "react", "angular", "vue.js", "node.js", "express.js",
		"django", "flask", "spring boot", "laravel", "asp.net", "bootstrap",
	}},
	{"Databases", []string{
		"mysql", "postgresql", "mongodb", "redis", "sqlite", "oracle",
		"sql server", "cassandra", "elasticsearch", "neo4j",
	}},
	{"Cloud Platforms", []string{
		"aws", "azure", "google cloud", "gcp", "heroku", "digitalocean",
		"kubernetes", "docker", "terraform", "ansible",
	}},
	{"Data Science & Analytics", []string{
		"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "keras",
		"tableau", "power bi", "jupyter", "spark", "hadoop",
	}},
	{"Development Tools", []string{
		"git", "github", "gitlab", "jira", "confluence", "jenkins", "ci/cd",
		"visual studio", "intellij", "eclipse", "postman", "swagger",
	}},
	{"Testing", []string{
		"junit", "pytest", "selenium", "cypress", "jest", "mocha",
		"unit testing", "integration testing", "automation testing",
	}},
	{"Mobile Development", []string{
		"android", "ios", "react native", "flutter", "xamarin", "cordova",
	}},
}

var softSkillCategories = []skillCategory{
	{"Communication", []string{
		"communication", "presentation", "public speaking", "writing",
		"documentation", "storytelling", "active listening",
	}},
	{"Leadership", []string{
		"leadership", "team management", "mentoring", "coaching",
		"delegation", "decision making", "strategic thinking",
	}},
	{"Collaboration", []string{
		"teamwork", "collaboration", "cross-functional",
		"stakeholder management", "conflict resolution", "negotiation",
		"interpersonal skills",
	}},
	{"Problem Solving", []string{
		"problem solving", "analytical thinking", "critical thinking",
		"troubleshooting", "debugging", "innovation", "creativity",
	}},
	{"Project Management", []string{
		"project management", "agile", "scrum", "kanban", "waterfall",
		"planning", "organization", "time management", "prioritization",
	}},
	{"Adaptability", []string{
		"adaptability", "flexibility", "learning agility", "resilience",
		"change management", "continuous learning",
	}},
}

// DetectSkillGroups finds dictionary skills present in text, grouped by
// category. Categories with no hits are omitted.
func DetectSkillGroups(text string) (technical, soft []SkillGroup) {
	lower := strings.ToLower(text)
	return detectGroups(lower, technicalSkillCategories), detectGroups(lower, softSkillCategories)
}

func detectGroups(lowerText string, categories []skillCategory) []SkillGroup {
	var groups []SkillGroup
	for _, cat := range categories {
		var found []string
		for _, skill := range cat.skills {
			if containsSkill(lowerText, skill) {
				found = append(found, skill)
			}
		}
		if len(found) > 0 {
			groups = append(groups, SkillGroup{GroupName: cat.name, Skills: found})
		}
	}
	return groups
}

// containsSkill reports whether skill occurs in lowerText bounded by
// non-alphanumeric characters on both sides.
func containsSkill(lowerText, skill string) bool {
	for from := 0; ; {
		idx := strings.Index(lowerText[from:], skill)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(skill)
		if boundaryAt(lowerText, start-1) && boundaryAt(lowerText, end) {
			return true
		}
		from = start + 1
	}
}

func boundaryAt(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9')
}

// detectTechnicalSkills flattens the dictionary hits across all
// technical categories.
func detectTechnicalSkills(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, cat := range technicalSkillCategories {
		for _, skill := range cat.skills {
			if containsSkill(lower, skill) {
				found = append(found, skill)
			}
		}
	}
	return found
}

// MatchSkills compares dictionary skills found in the resume against
// those required by the job description. matched is the intersection,
// missing is what the job description wants but the resume lacks, and
// percent is |matched| / |jd skills| * 100 rounded to 2 decimals.
// An empty job description yields empty lists and 0.0.
func MatchSkills(resumeText, jobDescription string) (matched, missing []string, percent float64) {
	matched = []string{}
	missing = []string{}
	if strings.TrimSpace(jobDescription) == "" {
		return matched, missing, 0.0
	}

	resumeSkills := make(map[string]struct{})
	for _, s := range detectTechnicalSkills(resumeText) {
		resumeSkills[s] = struct{}{}
	}
	jdSkills := detectTechnicalSkills(jobDescription)

	for _, s := range jdSkills {
		if _, ok := resumeSkills[s]; ok {
			matched = append(matched, s)
		} else {
			missing = append(missing, s)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)

	if len(jdSkills) == 0 {
		return matched, missing, 0.0
	}
	percent = round2(float64(len(matched)) / float64(len(jdSkills)) * 100)
	return matched, missing, percent
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
