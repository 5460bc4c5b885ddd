package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agile-academy/academy_api/dto"
)

func scenarioWithScores(stepScores ...[]int) *dto.CaseScenario {
	scenario := &dto.CaseScenario{}
	for _, scores := range stepScores {
		step := dto.CaseStep{}
		for _, s := range scores {
			step.Options = append(step.Options, dto.CaseOption{Score: s})
		}
		scenario.Steps = append(scenario.Steps, step)
	}
	return scenario
}

func TestMaxScenarioScore(t *testing.T) {
	scenario := scenarioWithScores([]int{0, 7, 10}, []int{8, 9, 2}, []int{1, 10, 7})

	assert.Equal(t, 29, MaxScenarioScore(scenario))
}

func TestCaseScore(t *testing.T) {
	scenario := scenarioWithScores([]int{0, 10}, []int{0, 10})

	tests := []struct {
		name   string
		earned int
		want   int
	}{
		{"perfect", 20, 100},
		{"zero", 0, 0},
		{"rounds", 17, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CaseScore(scenario, tt.earned))
		})
	}
}

func TestCaseScoreZeroMax(t *testing.T) {
	scenario := scenarioWithScores([]int{0, 0})

	assert.Equal(t, 0, CaseScore(scenario, 0))
}

func TestStepViewHidesOutcomes(t *testing.T) {
	scenario := &dto.CaseScenario{
		Steps: []dto.CaseStep{
			{
				Situation: "El PO pide cambios a mitad del Sprint",
				Question:  "¿Qué haces?",
				Options: []dto.CaseOption{
					{Text: "Opción A", Feedback: "mal", Consequence: "caos", Score: 0},
					{Text: "Opción B", Feedback: "bien", Consequence: "orden", Score: 10},
				},
			},
		},
	}

	view := stepView(scenario, 0)

	assert.Equal(t, 0, view.Index)
	assert.Equal(t, "¿Qué haces?", view.Question)
	assert.Equal(t, []string{"Opción A", "Opción B"}, view.Options)
}
