package models

import "strings"

// AnswerSet maps a question key to the user's answer. Field types
// (numeric vs. categorical) only affect input rendering; storage is
// always a string.
type AnswerSet map[string]string

func (a AnswerSet) Set(key, value string) {
	a[key] = value
}

func (a AnswerSet) Get(key string) string {
	return a[key]
}

// IsComplete reports whether every required key maps to a value whose
// trimmed form is non-empty. This is the sole gate for leaving the
// questionnaire.
func (a AnswerSet) IsComplete(required []string) bool {
	for _, key := range required {
		if strings.TrimSpace(a[key]) == "" {
			return false
		}
	}
	return true
}

func (a AnswerSet) Clone() AnswerSet {
	clone := make(AnswerSet, len(a))
	for key, value := range a {
		clone[key] = value
	}
	return clone
}
