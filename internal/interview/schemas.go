package interview

import "github.com/AtharvaKhot17/QuickHireAI/internal/providers/llm"

var nonEmptyString = map[string]any{"type": "string", "minLength": 1}

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

var scale = map[string]any{"type": "number", "minimum": 0, "maximum": 10}

var questionSchema = &llm.Schema{
	Name: "interview_question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question":          nonEmptyString,
			"topic":             nonEmptyString,
			"difficulty":        nonEmptyString,
			"expectedDuration":  map[string]any{"type": "string"},
			"category":          map[string]any{"type": "string"},
			"expectedKeyPoints": stringList,
		},
		"required": []string{"question", "topic", "difficulty"},
	},
}

var evaluationSchema = &llm.Schema{
	Name: "answer_evaluation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score":             scale,
			"technicalAccuracy": scale,
			"communication":     scale,
			"clarity":           scale,
			"feedback":          nonEmptyString,
			"improvements":      stringList,
		},
		"required": []string{"score", "feedback"},
	},
}

var finalSchema = &llm.Schema{
	Name: "final_evaluation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"strengths":           stringList,
			"areasForImprovement": stringList,
			"detailedFeedback":    map[string]any{"type": "string"},
			"careerReadiness": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"level":          map[string]any{"type": "string"},
					"recommendation": map[string]any{"type": "string"},
				},
			},
		},
		"required": []string{"strengths", "areasForImprovement"},
	},
}
