package quiz

// tagKind says which tag set an answer feeds.
type tagKind int

const (
	skillTags tagKind = iota
	personalityTags
)

// categoryKinds lists the categories that describe personality rather than skills.
var categoryKinds = map[string]tagKind{
	CategoryMotivation:     personalityTags,
	CategorySuccessMeasure: personalityTags,
	CategoryWorkSchedule:   personalityTags,
}

// answerTags maps category -> option -> tags.
var answerTags = map[string]map[string][]string{
	CategoryWorkStyle: {
		"Team collaboration": {"communication", "teamwork", "collaboration"},
		"Independent work":   {"self-motivation", "time management", "autonomy"},
		"Leadership role":    {"leadership", "decision making", "mentoring"},
		"Creative freedom":   {"creativity", "innovation", "problem solving"},
	},
	CategoryInterests: {
		"Solving complex problems": {"analytical thinking", "problem solving", "critical thinking"},
		"Helping others":           {"empathy", "communication", "interpersonal skills"},
		"Creating new things":      {"creativity", "innovation", "design thinking"},
		"Analyzing data":           {"data analysis", "statistics", "research"},
	},
	CategoryLearningStyle: {
		"Hands-on experience":  {"practical skills", "experimentation", "learning by doing"},
		"Reading and research": {"research skills", "information literacy", "critical reading"},
		"Visual learning":      {"visual thinking", "design skills", "spatial awareness"},
		"Group discussions":    {"communication", "active listening", "group facilitation"},
	},
	CategoryStressManagement: {
		"Plan ahead and organize": {"planning", "organization", "time management"},
		"Work under pressure":     {"stress management", "adaptability", "resilience"},
		"Adapt and adjust":        {"flexibility", "adaptability", "change management"},
		"Seek support":            {"communication", "collaboration", "emotional intelligence"},
	},
	CategoryMotivation: {
		"Financial rewards":   {"goal-oriented", "results-driven", "achievement-focused"},
		"Making a difference": {"altruistic", "purpose-driven", "socially conscious"},
		"Personal growth":     {"growth mindset", "continuous learning", "self-improvement"},
		"Recognition":         {"achievement-oriented", "recognition-seeking", "performance-driven"},
	},
	CategoryProblemSolving: {
		"Technical/Mathematical": {"analytical thinking", "mathematical skills", "technical problem solving", "logical reasoning"},
		"Human/Emotional":        {"emotional intelligence", "empathy", "interpersonal skills", "conflict resolution"},
		"Creative/Artistic":      {"creative thinking", "artistic skills", "innovation", "design thinking"},
		"Strategic/Business":     {"strategic thinking", "business acumen", "market analysis", "competitive intelligence"},
	},
	CategoryCommunicationStyle: {
		"Written communication":  {"writing skills", "documentation", "report writing", "email communication"},
		"Verbal presentations":   {"public speaking", "presentation skills", "verbal communication", "persuasion"},
		"Visual demonstrations":  {"visual communication", "presentation design", "demonstration skills", "visual storytelling"},
		"One-on-one discussions": {"active listening", "interpersonal communication", "mentoring", "coaching"},
	},
	CategoryChallengeApproach: {
		"Research and plan thoroughly": {"research skills", "planning", "analysis", "methodical approach"},
		"Jump in and learn by doing":   {"adaptability", "hands-on learning", "experimentation", "risk-taking"},
		"Seek expert advice":           {"networking", "mentorship seeking", "collaboration", "learning from others"},
		"Collaborate with others":      {"teamwork", "collaboration", "facilitation", "group dynamics"},
	},
	CategoryTeamRole: {
		"Leader/Coordinator":   {"leadership", "project coordination", "team management", "decision making"},
		"Creative contributor": {"creativity", "innovation", "idea generation", "artistic skills"},
		"Technical specialist": {"technical expertise", "specialized knowledge", "problem solving", "analytical skills"},
		"Support/Helper":       {"support skills", "helping others", "patience", "service orientation"},
	},
	CategorySuccessMeasure: {
		"Achieving goals and targets": {"goal-oriented", "results-driven", "achievement-focused", "performance-oriented"},
		"Helping others succeed":      {"altruistic", "supportive", "mentoring", "team-oriented"},
		"Learning new skills":         {"growth mindset", "continuous learning", "curious", "self-improvement"},
		"Recognition from peers":      {"recognition-seeking", "social validation", "peer appreciation", "team recognition"},
	},
	CategoryWorkSchedule: {
		"Regular 9-5 schedule":    {"structured", "routine-oriented", "time-conscious", "organized"},
		"Flexible hours":          {"flexible", "autonomous", "self-managing", "adaptable"},
		"Project-based deadlines": {"deadline-oriented", "project-focused", "time management", "goal-driven"},
		"Shift work":              {"adaptable", "flexible", "resilient", "schedule-flexible"},
	},
	CategoryLearningApproach: {
		"Reading industry publications": {"research skills", "information literacy", "staying current", "analytical reading"},
		"Attending conferences":         {"networking", "professional development", "industry knowledge", "presentation skills"},
		"Online courses":                {"e-learning", "self-directed learning", "digital literacy", "continuous education"},
		"Networking with professionals": {"networking", "relationship building", "professional communication", "industry connections"},
	},
}
