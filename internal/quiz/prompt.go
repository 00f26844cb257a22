package quiz

import (
	"fmt"
	"strings"
)

const promptTemplate = `Generate a quiz from this transcript. Return a JSON object in this exact format:
{
  "quizTitle": "Generated Quiz Title",
  "questions": [
    {
      "question": "Question text here?",
      "options": {
        "A": "Option 1",
        "B": "Option 2",
        "C": "Option 3",
        "D": "Option 4"
      },
      "correctAnswer": "Correct option key (A, B, C, or D)",
      "explanation": "Brief explanation for the correct answer."
    }
  ]
}

Rules:
- Generate exactly %d MCQs
- Questions must be clear and concise
- Each question must have 4 options (A, B, C, D)
- Provide correct answer and explanation
- Select the key concepts of the transcript and build the quiz around them
- Return valid JSON only, no markdown formatting or additional text

Transcript: "%s"`

// BuildPrompt embeds the source text into the fixed generation instruction.
func BuildPrompt(sourceText string, count int) string {
	return fmt.Sprintf(promptTemplate, count, strings.TrimSpace(sourceText))
}
