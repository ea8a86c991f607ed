package templates

import (
	"strings"

	"github.com/jonathan/lift/internal/fields"
	"github.com/jonathan/lift/internal/types"
)

// MaxSkills caps the expanded skill list
const MaxSkills = 25

// minPartialKeyLen keeps short keys like "go" from matching inside unrelated words
const minPartialKeyLen = 3

type skillExpansion struct {
	key     string
	related []string
}

// skillTable maps a lowercase skill keyword to related skills. Order matters for partial matches.
var skillTable = []skillExpansion{
	{"python", []string{"Pandas", "NumPy", "Data Analysis", "Automation"}},
	{"javascript", []string{"ES6+", "DOM Manipulation", "Asynchronous Programming", "Node.js"}},
	{"typescript", []string{"Static Typing", "JavaScript", "Type-safe APIs"}},
	{"java", []string{"Spring Boot", "Object-Oriented Design", "Maven", "JUnit"}},
	{"go", []string{"Concurrency", "REST APIs", "Microservices"}},
	{"c++", []string{"Memory Management", "STL", "Performance Optimization"}},
	{"sql", []string{"Joins", "Query optimization", "Schema design", "Database Management"}},
	{"excel", []string{"Pivot Tables", "VLOOKUP", "Data Visualization", "Spreadsheet Modeling"}},
	{"react", []string{"Hooks", "Component Design", "State Management", "JSX"}},
	{"node", []string{"Express", "REST APIs", "npm", "Event-driven Architecture"}},
	{"html", []string{"Semantic Markup", "Accessibility", "CSS"}},
	{"css", []string{"Responsive Design", "Flexbox", "Grid Layout"}},
	{"aws", []string{"EC2", "S3", "Lambda", "Cloud Architecture"}},
	{"docker", []string{"Containerization", "Docker Compose", "Image Optimization"}},
	{"kubernetes", []string{"Container Orchestration", "Helm", "Cluster Management"}},
	{"git", []string{"Version Control", "Branching Strategies", "Code Review"}},
	{"linux", []string{"Shell Scripting", "System Administration", "Bash"}},
	{"machine learning", []string{"Model Training", "Feature Engineering", "scikit-learn", "Model Evaluation"}},
	{"data analysis", []string{"Data Cleaning", "Statistical Analysis", "Reporting", "Data Visualization"}},
	{"tableau", []string{"Dashboards", "Data Visualization", "Business Intelligence"}},
	{"statistics", []string{"Hypothesis Testing", "Regression", "Probability"}},
	{"project management", []string{"Scheduling", "Risk Management", "Stakeholder Communication", "Budgeting"}},
	{"agile", []string{"Scrum", "Sprint Planning", "Kanban", "Retrospectives"}},
	{"leadership", []string{"Team Building", "Mentoring", "Decision Making", "Strategic Planning"}},
	{"communication", []string{"Public Speaking", "Written Communication", "Active Listening"}},
	{"teamwork", []string{"Collaboration", "Conflict Resolution", "Cross-functional Coordination"}},
	{"customer service", []string{"Client Relations", "Problem Resolution", "Empathy", "CRM Software"}},
	{"sales", []string{"Lead Generation", "Negotiation", "Closing", "Pipeline Management"}},
	{"marketing", []string{"Campaign Planning", "Market Research", "Content Strategy", "Analytics"}},
	{"seo", []string{"Keyword Research", "On-page Optimization", "Link Building"}},
	{"writing", []string{"Editing", "Copywriting", "Proofreading", "Storytelling"}},
	{"design", []string{"Visual Design", "Typography", "Prototyping", "User Research"}},
	{"photoshop", []string{"Photo Editing", "Image Compositing", "Adobe Creative Suite"}},
	{"figma", []string{"Wireframing", "Prototyping", "Design Systems"}},
	{"accounting", []string{"Bookkeeping", "Financial Reporting", "Reconciliation", "Tax Preparation"}},
	{"finance", []string{"Financial Analysis", "Forecasting", "Budgeting", "Risk Assessment"}},
	{"research", []string{"Literature Review", "Data Collection", "Critical Analysis"}},
}

type skillCategory struct {
	marker string
	bundle []string
}

// skillCategories is consulted when a skill matches nothing in skillTable
var skillCategories = []skillCategory{
	{"soft", []string{"Communication", "Teamwork", "Empathy", "Active Listening", "Conflict Resolution"}},
	{"data", []string{"Data Analysis", "Data Visualization", "Reporting", "Spreadsheets", "Statistics"}},
	{"manage", []string{"Planning", "Organization", "Delegation", "Stakeholder Management", "Prioritization"}},
	{"creat", []string{"Creativity", "Brainstorming", "Visual Design", "Storytelling", "Content Creation"}},
	{"tech", []string{"Troubleshooting", "Technical Documentation", "Software Tools", "Systems Thinking", "Debugging"}},
	{"customer", []string{"Customer Support", "Client Relations", "Problem Resolution", "Patience", "Service Orientation"}},
}

var (
	universalBundle = []string{"Communication", "Problem Solving", "Teamwork", "Adaptability"}
	baselineSkills  = []string{"Communication", "Problem Solving", "Teamwork", "Time Management", "Adaptability"}
	topUpSkills     = []string{"Critical Thinking", "Attention to Detail", "Collaboration"}
)

// minSkillsBeforeTopUp is the size below which topUpSkills are appended
const minSkillsBeforeTopUp = 8

// skillSet is an insertion-ordered, case-sensitive set of trimmed skills
type skillSet struct {
	seen  map[string]bool
	items []string
}

func (s *skillSet) add(skills ...string) {
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" || s.seen[skill] {
			continue
		}
		s.seen[skill] = true
		s.items = append(s.items, skill)
	}
}

// ExpandSkills returns the user's skills followed by related skills, capped at MaxSkills.
func ExpandSkills(raw types.FlexList) []string {
	set := &skillSet{seen: make(map[string]bool)}

	userSkills := fields.Values(raw)
	if len(userSkills) == 0 {
		set.add(baselineSkills...)
	}
	for _, skill := range userSkills {
		set.add(skill)
		set.add(relatedSkills(skill)...)
	}

	if len(set.items) < minSkillsBeforeTopUp {
		set.add(topUpSkills...)
	}

	if len(set.items) > MaxSkills {
		return set.items[:MaxSkills]
	}
	return set.items
}

// relatedSkills resolves a skill by exact key, then partial key overlap, then category
func relatedSkills(skill string) []string {
	lower := strings.ToLower(strings.TrimSpace(skill))

	for _, entry := range skillTable {
		if entry.key == lower {
			return entry.related
		}
	}

	var partial []string
	for _, entry := range skillTable {
		if len(entry.key) < minPartialKeyLen || len(lower) < minPartialKeyLen {
			continue
		}
		if strings.Contains(lower, entry.key) || strings.Contains(entry.key, lower) {
			partial = append(partial, entry.related...)
		}
	}
	if len(partial) > 0 {
		return partial
	}

	for _, category := range skillCategories {
		if strings.Contains(lower, category.marker) {
			return category.bundle
		}
	}
	return universalBundle
}
