package interviews

import "math"

// Grade compares answers to the correct answers by exact string equality and
// returns per-question results with the percentage of correct answers.
// questions and answers must have the same length.
func Grade(questions []Question, answers []string) ([]QuestionResult, float64) {
	results := make([]QuestionResult, len(questions))
	correct := 0
	for i, q := range questions {
		ok := q.CorrectAnswer == answers[i]
		if ok {
			correct++
		}
		results[i] = QuestionResult{
			Question:    q.Question,
			Answer:      q.CorrectAnswer,
			UserAnswer:  answers[i],
			IsCorrect:   ok,
			Explanation: q.Explanation,
		}
	}
	if len(questions) == 0 {
		return results, 0
	}
	score := float64(correct) * 100 / float64(len(questions))
	return results, math.Round(score*100) / 100
}

func wrongAnswers(results []QuestionResult) []QuestionResult {
	var wrong []QuestionResult
	for _, r := range results {
		if !r.IsCorrect {
			wrong = append(wrong, r)
		}
	}
	return wrong
}
