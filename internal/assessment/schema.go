package assessment

import "github.com/slggamerTrue/languageLearning/internal/llm"

// assessmentTurnSchema shapes one assistant turn of the assessment chat.
var assessmentTurnSchema = &llm.Schema{
	Name:        "assessment-turn",
	Description: "One teacher turn in the assessment conversation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"speechText": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "The teacher's spoken reply, one sentence per element",
			},
			"displayText": map[string]any{
				"type":        "string",
				"description": "Normally empty; carries the completion mark once enough information is collected",
			},
		},
		"required":             []any{"speechText", "displayText"},
		"additionalProperties": false,
	},
}

// profileSchema shapes the learner profile derived from the conversation.
var profileSchema = &llm.Schema{
	Name:        "learner-profile",
	Description: "Structured learner profile extracted from the assessment conversation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"english_level": map[string]any{
				"type":        "string",
				"enum":        []any{"none", "beginner", "intermediate", "advanced"},
				"description": "The learner's overall proficiency band",
			},
			"interests": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Interests and hobbies, described in detail",
			},
			"learning_goals": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Stated learning goals with their concrete scenarios",
			},
			"study_time_per_day": map[string]any{
				"type":        "integer",
				"description": "Stated or recommended daily study time in minutes",
			},
			"total_study_day": map[string]any{
				"type":        "integer",
				"description": "Stated or estimated total study days",
			},
		},
		"required":             []any{"english_level", "interests", "learning_goals", "study_time_per_day", "total_study_day"},
		"additionalProperties": false,
	},
}

// totalPlanSchema shapes the candidate topic list.
var totalPlanSchema = &llm.Schema{
	Name:        "total-plan",
	Description: "Candidate daily study topics derived from a learner profile",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topics": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"day_number": map[string]any{
							"type":        "integer",
							"description": "Position in the plan, starting at 1",
						},
						"topic": map[string]any{
							"type":        "string",
							"description": "Short topic title",
						},
						"description": map[string]any{
							"type":        "string",
							"description": "What the day covers and why",
						},
					},
					"required":             []any{"day_number", "topic", "description"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"topics"},
		"additionalProperties": false,
	},
}

// weeklyPlanSchema shapes the seven-day curriculum. The days array is wrapped
// in an object because structured-output modes require an object root.
var weeklyPlanSchema = &llm.Schema{
	Name:        "weekly-plan",
	Description: "A seven-day study plan expanded from a selected topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"days": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"day_number": map[string]any{
							"type":        "integer",
							"description": "1 through 7",
						},
						"topic": map[string]any{
							"type":        "string",
							"description": "The day's lesson topic",
						},
						"materials": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"type":    map[string]any{"type": "string"},
									"title":   map[string]any{"type": "string"},
									"segment": map[string]any{"type": "string"},
									"content": map[string]any{"type": "string"},
								},
								"required":             []any{"type", "title", "segment", "content"},
								"additionalProperties": false,
							},
							"description": "Short supporting texts the day's teaching builds on",
						},
						"knowledge_points": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"name": map[string]any{"type": "string"},
									"level": map[string]any{
										"type":        "integer",
										"description": "Difficulty 1-9",
									},
									"examples": map[string]any{
										"type":  "array",
										"items": map[string]any{"type": "string"},
									},
									"exercises": map[string]any{
										"type":  "array",
										"items": map[string]any{"type": "string"},
									},
									"scenario": map[string]any{
										"type":        "string",
										"description": "Where the point applies; may be empty",
									},
								},
								"required":             []any{"name", "level", "examples", "exercises", "scenario"},
								"additionalProperties": false,
							},
						},
						"review_activities": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"point":   map[string]any{"type": "string"},
									"context": map[string]any{"type": "string"},
									"difficulty": map[string]any{
										"type":        "integer",
										"description": "Difficulty 1-9",
									},
								},
								"required":             []any{"point", "context", "difficulty"},
								"additionalProperties": false,
							},
							"description": "Earlier points placed in new situations",
						},
						"estimated_time": map[string]any{
							"type":        "integer",
							"description": "Total study time for the day, in minutes",
						},
					},
					"required":             []any{"day_number", "topic", "materials", "knowledge_points", "review_activities", "estimated_time"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"days"},
		"additionalProperties": false,
	},
}

// lessonTurnSchema shapes one assistant turn inside a lesson, both for the
// opening statement and for every subsequent reply.
var lessonTurnSchema = &llm.Schema{
	Name:        "lesson-turn",
	Description: "One teacher or character turn in a lesson conversation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"speechText": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Spoken content, one sentence per element, no special characters",
			},
			"displayText": map[string]any{
				"type":        "string",
				"description": "Markdown shown alongside speech; empty when nothing needs display",
			},
		},
		"required":             []any{"speechText", "displayText"},
		"additionalProperties": false,
	},
}
