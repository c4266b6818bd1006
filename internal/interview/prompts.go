package interview

import (
	"fmt"
	"strings"

	"github.com/AtharvaKhot17/QuickHireAI/internal/models"
)

func questionPrompt(skill string, previous []string) string {
	prev := "none"
	if len(previous) > 0 {
		prev = "\n- " + strings.Join(previous, "\n- ")
	}
	return fmt.Sprintf(`Generate a unique technical interview question for %[1]s that:
1. Tests fundamental understanding
2. Can be answered verbally in 1-2 minutes
3. Is suitable for entry to mid-level developers
4. Avoids questions requiring detailed code implementation
5. Is COMPLETELY DIFFERENT from these previous questions: %[2]s

Return only the JSON object without markdown:
{
  "question": "brief, clear question that can be answered verbally (max 2 sentences)",
  "topic": "specific topic within %[1]s",
  "difficulty": "easy or medium",
  "expectedDuration": "1-2 minutes",
  "category": "fundamentals/concepts/principles",
  "expectedKeyPoints": ["2-3 key discussion points"]
}`, skill, prev)
}

func evaluationPrompt(question, answer string) string {
	return fmt.Sprintf(`Evaluate this interview answer.
Question: %s
Answer: %s

Return only the JSON object without markdown:
{
  "score": number between 0-10,
  "feedback": "detailed feedback on the answer",
  "technicalAccuracy": number between 0-10,
  "communication": number between 0-10,
  "improvements": ["specific areas for improvement"]
}`, question, answer)
}

func finalPrompt(answers []models.Answer) string {
	var b strings.Builder
	b.WriteString("Based on these interview answers and their evaluations:\n")
	for i, a := range answers {
		transcript := a.Transcript
		if a.Skipped {
			transcript = "(skipped)"
		}
		fmt.Fprintf(&b, "\nQuestion %d: %s\nAnswer: %s\nTechnical Score: %.1f/10\nCommunication Score: %.1f/10\nFeedback: %s\n",
			i+1, a.Question, transcript, a.Evaluation.TechnicalAccuracy, a.Evaluation.Communication, a.Evaluation.Feedback)
	}
	b.WriteString(`
Return only the JSON object without markdown:
{
  "strengths": ["list of key strengths"],
  "areasForImprovement": ["list of areas needing improvement"],
  "detailedFeedback": "one paragraph summary for the candidate",
  "careerReadiness": {
    "level": "entry/mid/senior",
    "recommendation": "specific career advice"
  }
}`)
	return b.String()
}
