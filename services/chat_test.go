package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleReplyMatchesKeywords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		fragment string
	}{
		{"scrum", "¿Qué es Scrum?", "marco de trabajo ágil"},
		{"kanban", "explícame KANBAN por favor", "método visual"},
		{"planning poker", "¿cómo funciona el planning poker?", "técnica colaborativa"},
		{"velocity in spanish", "¿qué mide la velocidad del equipo?", "puntos completados"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, matched := RuleReply(tt.text)
			assert.True(t, matched)
			assert.True(t, strings.Contains(reply, tt.fragment), "reply %q should contain %q", reply, tt.fragment)
		})
	}
}

func TestRuleReplyFirstRuleWins(t *testing.T) {
	// "sprint backlog" also contains "sprint"; the artefactos rule comes
	// first in the list so it must win.
	reply, matched := RuleReply("¿qué es el sprint backlog?")

	assert.True(t, matched)
	assert.Contains(t, reply, "artefactos de Scrum")

	// plain "sprint" falls through to the sprint rule
	reply, matched = RuleReply("¿cuánto dura un sprint?")
	assert.True(t, matched)
	assert.Contains(t, reply, "ciclo de tiempo fijo")
}

func TestRuleReplyCaseInsensitive(t *testing.T) {
	lower, matchedLower := RuleReply("háblame de kanban")
	upper, matchedUpper := RuleReply("HÁBLAME DE KANBAN")

	assert.True(t, matchedLower)
	assert.True(t, matchedUpper)
	assert.Equal(t, lower, upper)
}

func TestRuleReplyFallback(t *testing.T) {
	reply, matched := RuleReply("¿cuál es la capital de Francia?")

	assert.False(t, matched)
	assert.Equal(t, tutorFallback, reply)
}
