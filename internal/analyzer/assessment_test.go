package analyzer

import "testing"

func TestScoreAssessment(t *testing.T) {
	items := []AssessmentItem{
		{Skill: "python", TotalQuestions: 4, CorrectQuestions: 3},
		{Skill: "sql", TotalQuestions: 3, CorrectQuestions: 1},
		{Skill: "docker", TotalQuestions: 0, CorrectQuestions: 0},
	}

	overall, perSkill := ScoreAssessment(items)

	if len(perSkill) != 3 {
		t.Fatalf("perSkill length = %d", len(perSkill))
	}
	if perSkill[0].Score == nil || *perSkill[0].Score != 75.0 {
		t.Fatalf("python score = %v, want 75.0", perSkill[0].Score)
	}
	if perSkill[1].Score == nil || *perSkill[1].Score != 33.33 {
		t.Fatalf("sql score = %v, want 33.33", perSkill[1].Score)
	}
	if perSkill[2].Score != nil {
		t.Fatalf("docker score = %v, want nil", *perSkill[2].Score)
	}

	// mean of 75 and 33.33, the unattempted skill is excluded
	if overall != 54.17 {
		t.Fatalf("overall = %v, want 54.17", overall)
	}
}

func TestScoreAssessmentAllUnattempted(t *testing.T) {
	overall, perSkill := ScoreAssessment([]AssessmentItem{
		{Skill: "python", TotalQuestions: 0},
		{Skill: "go", TotalQuestions: 0},
	})
	if overall != 0.0 {
		t.Fatalf("overall = %v, want 0.0", overall)
	}
	for _, s := range perSkill {
		if s.Score != nil {
			t.Fatalf("%s score = %v, want nil", s.Skill, *s.Score)
		}
	}
}

func TestScoreAssessmentEmpty(t *testing.T) {
	overall, perSkill := ScoreAssessment(nil)
	if overall != 0.0 || len(perSkill) != 0 {
		t.Fatalf("got %v %v, want 0.0 and empty", overall, perSkill)
	}
}
