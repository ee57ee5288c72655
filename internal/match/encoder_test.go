package match

import (
	"reflect"
	"testing"
)

func TestExtractSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "blank", input: "   ", want: nil},
		{name: "simple", input: "python,django", want: []string{"python", "django"}},
		{name: "trims and lowercases", input: " Python , SQL ", want: []string{"python", "sql"}},
		{name: "drops empty entries", input: "go,,rust,", want: []string{"go", "rust"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractSkills(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractSkills(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExperienceOrdinal(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"entry", 1},
		{"Intern", 1},
		{"junior", 2},
		{"associate", 2},
		{"mid", 3},
		{"MID-LEVEL", 3},
		{"middle", 3},
		{"senior", 4},
		{"lead", 4},
		{"expert", 5},
		{"principal", 5},
		{"director", 5},
		{"", 3},
		{"unicorn", 3},
	}
	for _, tt := range tests {
		if got := experienceOrdinal(tt.input); got != tt.want {
			t.Errorf("experienceOrdinal(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestJobTypeOrdinal(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"full_time", 1},
		{"full-time", 1},
		{"Full Time", 1},
		{"part_time", 2},
		{"contract", 3},
		{"internship", 4},
		{"temporary", 5},
		{"freelance", 6},
		{"remote", 7},
		{"", 1},
		{"gig", 1},
	}
	for _, tt := range tests {
		if got := jobTypeOrdinal(tt.input); got != tt.want {
			t.Errorf("jobTypeOrdinal(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestCleanSalary(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name     string
		min, max *float64
		want     float64
	}{
		{name: "both", min: f(50000), max: f(70000), want: 60000},
		{name: "only min", min: f(40000), max: nil, want: 40000},
		{name: "only max", min: nil, max: f(90000), want: 90000},
		{name: "zero min ignored", min: f(0), max: f(80000), want: 80000},
		{name: "neither", min: nil, max: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanSalary(tt.min, tt.max); got != tt.want {
				t.Errorf("cleanSalary = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRemoteFlag(t *testing.T) {
	for _, truthy := range []string{"true", "yes", "Yes", "1"} {
		if remoteFlag(truthy) != 1 {
			t.Errorf("remoteFlag(%q) should be 1", truthy)
		}
	}
	for _, falsy := range []string{"", "no", "0", "false"} {
		if remoteFlag(falsy) != 0 {
			t.Errorf("remoteFlag(%q) should be 0", falsy)
		}
	}
}

func TestJobIsRemote(t *testing.T) {
	if !jobIsRemote(JobRecord{Title: "Remote Backend Engineer", JobType: "full_time"}) {
		t.Error("remote in title should flag job as remote")
	}
	if !jobIsRemote(JobRecord{Title: "Backend Engineer", JobType: "remote"}) {
		t.Error("remote job type should flag job as remote")
	}
	if jobIsRemote(JobRecord{Title: "Backend Engineer", JobType: "full_time"}) {
		t.Error("onsite job flagged remote")
	}
}
