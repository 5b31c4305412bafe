package analyzer

import (
	"reflect"
	"testing"
)

func TestMatchSkills(t *testing.T) {
	resume := "Built services in Go and Python, backed by PostgreSQL and Redis, deployed with Docker."
	jd := "Looking for a Python engineer with PostgreSQL, Kubernetes and Terraform experience."

	matched, missing, percent := MatchSkills(resume, jd)

	if !reflect.DeepEqual(matched, []string{"postgresql", "python"}) {
		t.Fatalf("matched = %v", matched)
	}
	if !reflect.DeepEqual(missing, []string{"kubernetes", "terraform"}) {
		t.Fatalf("missing = %v", missing)
	}
	if percent != 50.0 {
		t.Fatalf("percent = %v, want 50.0", percent)
	}
}

func TestMatchSkillsEmptyJobDescription(t *testing.T) {
	matched, missing, percent := MatchSkills("python developer", "")
	if len(matched) != 0 || len(missing) != 0 || percent != 0.0 {
		t.Fatalf("got %v %v %v, want empty results", matched, missing, percent)
	}
}

func TestMatchSkillsNoRecognizedSkillsInJD(t *testing.T) {
	_, _, percent := MatchSkills("python developer", "we need a great person")
	if percent != 0.0 {
		t.Fatalf("percent = %v, want 0.0", percent)
	}
}

func TestMatchSkillsRoundsToTwoDecimals(t *testing.T) {
	// 1 of 3 jd skills matched: 33.333... rounds to 33.33
	resume := "experienced with python"
	jd := "python, kubernetes and terraform required"
	_, _, percent := MatchSkills(resume, jd)
	if percent != 33.33 {
		t.Fatalf("percent = %v, want 33.33", percent)
	}
}

func TestDetectSkillGroups(t *testing.T) {
	text := "Led a team using Python and React, strong communication and mentoring, agile planning."
	technical, soft := DetectSkillGroups(text)

	findGroup := func(groups []SkillGroup, name string) *SkillGroup {
		for i := range groups {
			if groups[i].GroupName == name {
				return &groups[i]
			}
		}
		return nil
	}

	langs := findGroup(technical, "Programming Languages")
	if langs == nil || !contains(langs.Skills, "python") {
		t.Fatalf("expected python in Programming Languages, got %+v", technical)
	}
	if findGroup(technical, "Databases") != nil {
		t.Fatalf("unexpected Databases group: %+v", technical)
	}

	comm := findGroup(soft, "Communication")
	if comm == nil || !contains(comm.Skills, "communication") {
		t.Fatalf("expected communication group, got %+v", soft)
	}
	lead := findGroup(soft, "Leadership")
	if lead == nil || !contains(lead.Skills, "mentoring") {
		t.Fatalf("expected mentoring in Leadership, got %+v", soft)
	}
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
