package analyzer

// ScoreAssessment computes per-skill and overall assessment scores.
// A skill with zero questions gets a nil score and does not count
// toward the overall average. With no scored skills the overall is 0.0.
func ScoreAssessment(items []AssessmentItem) (overall float64, perSkill []SkillScore) {
	perSkill = make([]SkillScore, 0, len(items))
	var total float64
	scored := 0

	for _, item := range items {
		if item.TotalQuestions == 0 {
			perSkill = append(perSkill, SkillScore{Skill: item.Skill, Score: nil})
			continue
		}
		score := round2(float64(item.CorrectQuestions) / float64(item.TotalQuestions) * 100)
		total += score
		scored++
		perSkill = append(perSkill, SkillScore{Skill: item.Skill, Score: &score})
	}

	if scored == 0 {
		return 0.0, perSkill
	}
	return round2(total / float64(scored)), perSkill
}
