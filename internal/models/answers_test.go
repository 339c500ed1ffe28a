package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnswerSetIsComplete(t *testing.T) {
	required := []string{"desiredSalary", "relocation", "workFormat", "workSchedule"}

	tests := []struct {
		name     string
		answers  AnswerSet
		expected bool
	}{
		{
			name: "all keys filled",
			answers: AnswerSet{
				"desiredSalary": "120000",
				"relocation":    "yes",
				"workFormat":    "remote",
				"workSchedule":  "full",
			},
			expected: true,
		},
		{
			name: "missing key",
			answers: AnswerSet{
				"desiredSalary": "120000",
				"relocation":    "yes",
				"workFormat":    "remote",
			},
			expected: false,
		},
		{
			name: "whitespace-only value",
			answers: AnswerSet{
				"desiredSalary": "120000",
				"relocation":    "   ",
				"workFormat":    "remote",
				"workSchedule":  "full",
			},
			expected: false,
		},
		{
			name:     "empty set with empty requirements",
			answers:  AnswerSet{},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := required
			if tt.name == "empty set with empty requirements" {
				req = nil
			}
			assert.Equal(t, tt.expected, tt.answers.IsComplete(req))
		})
	}
}

func TestAnswerSetCloneIsIndependent(t *testing.T) {
	original := AnswerSet{"workFormat": "office"}
	clone := original.Clone()

	clone.Set("workFormat", "remote")

	assert.Equal(t, "office", original.Get("workFormat"))
	assert.Equal(t, "remote", clone.Get("workFormat"))
}
