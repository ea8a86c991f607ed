package templates

import (
	"regexp"
	"strings"
)

// ObjectiveTheme is a career theme an objective is classified into
type ObjectiveTheme string

// Objective themes, in match priority order
const (
	ThemeLeadership      ObjectiveTheme = "leadership"
	ThemeTechnical       ObjectiveTheme = "technical"
	ThemeCreative        ObjectiveTheme = "creative"
	ThemeData            ObjectiveTheme = "data"
	ThemeCustomerService ObjectiveTheme = "customer-service"
	ThemeMarketing       ObjectiveTheme = "marketing"
	ThemeFinance         ObjectiveTheme = "finance"
	ThemeHR              ObjectiveTheme = "hr"
	ThemeGeneric         ObjectiveTheme = "generic"
)

type objectiveRule struct {
	theme   ObjectiveTheme
	pattern *regexp.Regexp
}

// Leadership is checked before technical so "lead engineering teams" is a leadership objective.
var objectiveRules = []objectiveRule{
	{ThemeLeadership, regexp.MustCompile(`(?i)\b(lead|manag|team|director|supervis|mentor|head of)`)},
	{ThemeTechnical, regexp.MustCompile(`(?i)\b(engineer|develop|software|program|code|coding|tech|devops|cloud)`)},
	{ThemeCreative, regexp.MustCompile(`(?i)\b(design|creative|art|write|writing|content|video|ux|ui\b)`)},
	{ThemeData, regexp.MustCompile(`(?i)\b(data|analy|machine learning|ml\b|statistic|research|insight)`)},
	{ThemeCustomerService, regexp.MustCompile(`(?i)\b(customer|client|support|service|help)`)},
	{ThemeMarketing, regexp.MustCompile(`(?i)\b(market|brand|social media|seo|campaign|growth)`)},
	{ThemeFinance, regexp.MustCompile(`(?i)\b(financ|account|budget|invest|audit|bank)`)},
	{ThemeHR, regexp.MustCompile(`(?i)\b(hr\b|human resources|recruit|talent|hiring|people operations)`)},
}

var objectiveParagraphs = map[ObjectiveTheme]string{
	ThemeLeadership: "Results-driven leader seeking to guide high-performing teams toward ambitious goals. " +
		"Experienced in mentoring colleagues, aligning people around a clear direction, and delivering outcomes through collaboration. " +
		"Committed to building an environment where every team member can grow.",
	ThemeTechnical: "Detail-oriented technical professional seeking to build reliable, well-engineered solutions. " +
		"Brings hands-on experience designing, developing, and maintaining systems that solve real problems. " +
		"Eager to contribute strong problem-solving skills to a collaborative engineering team.",
	ThemeCreative: "Creative professional seeking to craft compelling work that connects with its audience. " +
		"Combines a strong eye for design with clear storytelling and a disciplined creative process. " +
		"Excited to bring fresh ideas to a team that values originality.",
	ThemeData: "Analytical professional seeking to turn data into clear, actionable insight. " +
		"Experienced in gathering, cleaning, and interpreting information to support confident decisions. " +
		"Motivated to help an organization measure what matters and act on it.",
	ThemeCustomerService: "Customer-focused professional seeking to deliver friendly, dependable support. " +
		"Skilled at listening carefully, resolving issues quickly, and leaving every client with a positive experience. " +
		"Dedicated to building lasting relationships built on trust.",
	ThemeMarketing: "Marketing professional seeking to grow brand awareness and drive measurable engagement. " +
		"Experienced in planning campaigns, crafting messaging, and learning from performance data. " +
		"Ready to help a team reach new audiences.",
	ThemeFinance: "Finance professional seeking to support sound financial decisions through careful analysis. " +
		"Brings accuracy, strong organizational skills, and a solid grasp of budgeting and reporting. " +
		"Committed to protecting and growing an organization's resources.",
	ThemeHR: "People-focused professional seeking to help an organization attract, develop, and retain great talent. " +
		"Experienced in supporting recruitment, onboarding, and employee engagement. " +
		"Dedicated to building a fair and supportive workplace.",
	ThemeGeneric: "Motivated professional seeking an opportunity to contribute skills and grow within a forward-thinking organization. " +
		"Known for a strong work ethic, reliability, and a willingness to learn. " +
		"Eager to add value from day one.",
}

// ClassifyObjective returns the first theme whose keywords appear in the objective
func ClassifyObjective(objective string) ObjectiveTheme {
	for _, rule := range objectiveRules {
		if rule.pattern.MatchString(objective) {
			return rule.theme
		}
	}
	return ThemeGeneric
}

// BuildObjective returns the templated objective paragraph, or "" for a blank objective
func BuildObjective(objective string) string {
	if strings.TrimSpace(objective) == "" {
		return ""
	}
	return objectiveParagraphs[ClassifyObjective(objective)]
}
