package reformulate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathforge/curator/internal/config"
)

type mockLLM struct {
	queue []string
	calls int
}

func (m *mockLLM) Generate(ctx context.Context, prompt string) (string, error) {
	m.calls++
	resp := m.queue[0]
	if len(m.queue) > 1 {
		m.queue = m.queue[1:]
	}
	return resp, nil
}

const reformulationJSON = `{
	"reformulation_process": {
		"core_mathematical_concept": "Geometry - concentric squares",
		"key_information_extraction": ["three squares", "3 unit gaps", "largest side 22"],
		"problem_structure_analysis": "direct question",
		"multiple_choice_removal_strategy": ["drop labelled options"],
		"rephrasing_approach": ["ask for the perimeter directly"],
		"problem_integrity_preservation": ["keep all values"],
		"answer_format_specification": ["whole number of units"],
		"is_multiple_choice": true
	},
	"reformulated_problem": "Find the perimeter of the smallest square. Express your answer in units as a whole number."
}`

const judgeJSON = `{
	"verdict": "pass",
	"issues": [],
	"suggestions": [],
	"corrected_reformulated_problem": "",
	"reasoning": "faithful rewrite"
}`

func TestReformulateMultipleChoice(t *testing.T) {
	llm := &mockLLM{queue: []string{reformulationJSON, judgeJSON}}
	r := NewReformulator(llm, config.ReformulationPrompts{})

	result, err := r.Reformulate(context.Background(), "What is the perimeter? (A) 40 (B) 64", "40")
	require.NoError(t, err)

	assert.Equal(t, 2, llm.calls)
	assert.True(t, result.Process.IsMultipleChoice)
	assert.Contains(t, result.ReformulatedProblem, "perimeter")
	require.NotNil(t, result.Judge)
	assert.Equal(t, "pass", result.Judge.Verdict)
	assert.True(t, result.ValidationPassed)
	assert.True(t, result.ValidationDetails["no_mc_options"])
	assert.True(t, result.ValidationDetails["process_complete"])
}

func TestReformulateSkipsJudgeWhenNotMultipleChoice(t *testing.T) {
	notMC := `{
		"reformulation_process": {
			"core_mathematical_concept": "number theory",
			"key_information_extraction": ["13 cards"],
			"problem_structure_analysis": "logic puzzle",
			"is_multiple_choice": false
		},
		"reformulated_problem": "N/A"
	}`
	llm := &mockLLM{queue: []string{notMC}}
	r := NewReformulator(llm, config.ReformulationPrompts{})

	result, err := r.Reformulate(context.Background(), "A logic puzzle with no options.", "26")
	require.NoError(t, err)

	assert.Equal(t, 1, llm.calls, "judge pass must be skipped")
	assert.Nil(t, result.Judge)
	assert.Equal(t, "N/A", result.ReformulatedProblem)
}

func TestReformulateFlagsLeftoverOptions(t *testing.T) {
	leftover := `{
		"reformulation_process": {
			"core_mathematical_concept": "geometry",
			"key_information_extraction": ["squares"],
			"problem_structure_analysis": "direct",
			"is_multiple_choice": true
		},
		"reformulated_problem": "Find the perimeter. (A) 40 (B) 64"
	}`
	llm := &mockLLM{queue: []string{leftover, judgeJSON}}
	r := NewReformulator(llm, config.ReformulationPrompts{})

	result, err := r.Reformulate(context.Background(), "problem", "40")
	require.NoError(t, err)

	assert.False(t, result.ValidationPassed)
	assert.False(t, result.ValidationDetails["no_mc_options"])
}

func TestReformulateToleratesMarkdownFences(t *testing.T) {
	fenced := "Here is the JSON you asked for:\n```json\n" + reformulationJSON + "\n```"
	llm := &mockLLM{queue: []string{fenced, judgeJSON}}
	r := NewReformulator(llm, config.ReformulationPrompts{})

	result, err := r.Reformulate(context.Background(), "problem", "40")
	require.NoError(t, err)
	assert.True(t, result.Process.IsMultipleChoice)
}
