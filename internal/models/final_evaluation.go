package models

type FinalSource string

const (
	FinalByModel   FinalSource = "model"
	FinalDefault   FinalSource = "default"
	FinalNoAttempt FinalSource = "no_attempt"
)

type FinalEvaluation struct {
	OverallScore        float64            `bson:"overall_score" json:"overallScore"`
	SkillAssessment     SkillAssessment    `bson:"skill_assessment" json:"skillAssessment"`
	Strengths           []string           `bson:"strengths" json:"strengths"`
	AreasForImprovement []string           `bson:"areas_for_improvement" json:"areasForImprovement"`
	DetailedFeedback    string             `bson:"detailed_feedback" json:"detailedFeedback"`
	CareerReadiness     CareerReadiness    `bson:"career_readiness" json:"careerReadiness"`
	QuestionAnalysis    []QuestionAnalysis `bson:"question_analysis" json:"questionAnalysis"`
	Source              FinalSource        `bson:"source" json:"source"`
}

type SkillAssessment struct {
	TechnicalKnowledge  float64 `bson:"technical_knowledge" json:"technicalKnowledge"`
	CommunicationSkills float64 `bson:"communication_skills" json:"communicationSkills"`
	ProblemSolving      float64 `bson:"problem_solving" json:"problemSolving"`
}

type CareerReadiness struct {
	Level          string `bson:"level" json:"level"`
	Recommendation string `bson:"recommendation" json:"recommendation"`
}

type QuestionAnalysis struct {
	QuestionNumber int     `bson:"question_number" json:"questionNumber"`
	Question       string  `bson:"question" json:"question"`
	Score          float64 `bson:"score" json:"score"`
	Performance    string  `bson:"performance" json:"performance"`
	Feedback       string  `bson:"feedback" json:"feedback"`
}
