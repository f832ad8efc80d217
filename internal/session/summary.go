package session

import "time"

// Summary condenses a session for display.
type Summary struct {
	Duration        time.Duration `json:"duration"`
	TotalQuestions  int           `json:"totalQuestions"`
	TotalCorrect    int           `json:"totalCorrect"`
	Accuracy        float64       `json:"accuracy"`
	AvgResponseTime time.Duration `json:"avgResponseTime"`
}

// Summarize builds a Summary. Duration is zero for an open session.
func Summarize(s *Session) Summary {
	sum := Summary{TotalQuestions: len(s.Answers)}
	var totalMs int
	for _, a := range s.Answers {
		if a.Correct {
			sum.TotalCorrect++
		}
		totalMs += a.ResponseTimeMs
	}
	if sum.TotalQuestions > 0 {
		sum.Accuracy = float64(sum.TotalCorrect) / float64(sum.TotalQuestions)
		sum.AvgResponseTime = time.Duration(totalMs/sum.TotalQuestions) * time.Millisecond
	}
	if s.CompletedAt != nil {
		sum.Duration = s.CompletedAt.Sub(s.StartedAt)
	}
	return sum
}
