package gateway

// questionListSchema is the structural contract handed to the generation
// endpoint. It requires an object with a questions array whose items match
// the Question shape, enum-constrained on type and difficulty.
func questionListSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"questions": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"prompt": map[string]interface{}{
							"type":        "string",
							"description": "The question text shown to the learner",
						},
						"type": map[string]interface{}{
							"type": "string",
							"enum": []interface{}{"mcq", "short", "long"},
						},
						"difficulty": map[string]interface{}{
							"type": "string",
							"enum": []interface{}{"easy", "medium", "hard"},
						},
						"answer": map[string]interface{}{
							"type":        "string",
							"description": "The correct or model answer",
						},
						"options": map[string]interface{}{
							"type":        "array",
							"items":       map[string]interface{}{"type": "string"},
							"description": "Answer options. Non-empty only for mcq questions, empty otherwise.",
						},
					},
					"required": []interface{}{"prompt", "type", "difficulty", "answer", "options"},
				},
			},
		},
		"required": []interface{}{"questions"},
	}
}
