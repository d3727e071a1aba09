// Package reformulate rewrites multiple-choice math problems into
// open-ended ones graded via \boxed{} answers. A first LLM pass produces a
// structured reformulation-process analysis plus the rewrite; a second pass
// judges the rewrite and may supply a corrected version.
package reformulate

import (
	"context"
	"fmt"
	"strings"

	"github.com/mathforge/curator/internal/config"
	"github.com/mathforge/curator/internal/core/common"
	"github.com/mathforge/curator/internal/core/model"
	"github.com/mathforge/curator/internal/llm"
)

const defaultReformulatePrompt = `You transform multiple-choice math problems into open-ended, solvable questions suitable for automatic grading via regex matching inside \boxed{}.

Rules:
- Never turn problems into proofs; the answer must stay machine-verifiable.
- The reformulated problem must have the same final answer as the original.
- The expected content of \boxed{final_answer} must be unambiguous; specify the answer format (units, number type) without giving the answer away.
- If the problem is NOT multiple choice, do not reformulate it: return "N/A" as the reformulated problem and set is_multiple_choice to false.

Problem:
%s

Correct answer:
%s

Return a JSON object with exactly these keys:
{
  "reformulation_process": {
    "core_mathematical_concept": "...",
    "key_information_extraction": ["..."],
    "problem_structure_analysis": "...",
    "multiple_choice_removal_strategy": ["..."],
    "rephrasing_approach": ["..."],
    "problem_integrity_preservation": ["..."],
    "answer_format_specification": ["..."],
    "is_multiple_choice": true
  },
  "reformulated_problem": "..."
}`

const defaultJudgePrompt = `You are reviewing a reformulation of a multiple-choice math problem into an open-ended one.

Original problem:
%s

Correct answer:
%s

Reformulated problem:
%s

Check that the reformulation preserves the problem, keeps the same final answer, removes every option label, and specifies an unambiguous \boxed{} answer format. Be strict.

Return a JSON object:
{
  "verdict": "pass" or "fail",
  "issues": ["..."],
  "suggestions": ["..."],
  "corrected_reformulated_problem": "only when a small fix makes it pass, else empty",
  "reasoning": "..."
}`

type Reformulator struct {
	LLM     llm.LLMClient
	Prompts config.ReformulationPrompts
}

func NewReformulator(llmClient llm.LLMClient, prompts config.ReformulationPrompts) *Reformulator {
	return &Reformulator{LLM: llmClient, Prompts: prompts}
}

type reformulationResponse struct {
	Process             model.ReformulationProcess `json:"reformulation_process"`
	ReformulatedProblem string                     `json:"reformulated_problem"`
}

// Reformulate runs the two-pass pipeline for one problem. The judge pass is
// skipped when the first pass decides the problem was never multiple choice.
func (r *Reformulator) Reformulate(ctx context.Context, problem, correctAnswer string) (*model.Reformulation, error) {
	template := r.Prompts.Reformulate
	if template == "" {
		template = defaultReformulatePrompt
	}

	response, err := r.LLM.Generate(ctx, fmt.Sprintf(template, problem, correctAnswer))
	if err != nil {
		return nil, fmt.Errorf("failed to generate reformulation: %w", err)
	}

	parsed, err := common.ParseJSON[reformulationResponse](response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse reformulation: %w", err)
	}

	result := &model.Reformulation{
		ReformulatedProblem: parsed.ReformulatedProblem,
		Process:             parsed.Process,
	}
	result.ValidationPassed, result.ValidationDetails = validate(parsed)

	if !parsed.Process.IsMultipleChoice || strings.TrimSpace(parsed.ReformulatedProblem) == "N/A" {
		return result, nil
	}

	judgeTemplate := r.Prompts.Judge
	if judgeTemplate == "" {
		judgeTemplate = defaultJudgePrompt
	}

	judgeResponse, err := r.LLM.Generate(ctx, fmt.Sprintf(judgeTemplate, problem, correctAnswer, parsed.ReformulatedProblem))
	if err != nil {
		return nil, fmt.Errorf("failed to generate judgment: %w", err)
	}

	judge, err := common.ParseJSON[model.JudgeResult](judgeResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to parse judgment: %w", err)
	}
	result.Judge = &judge

	return result, nil
}

// validate runs the cheap local checks: the rewrite must not carry option
// labels, and the process analysis must be filled in.
func validate(resp reformulationResponse) (bool, map[string]bool) {
	details := map[string]bool{
		"no_mc_options":    !hasOptionLabels(resp.ReformulatedProblem),
		"process_complete": processComplete(resp.Process),
	}
	passed := true
	for _, ok := range details {
		passed = passed && ok
	}
	return passed, details
}

var optionLabelMarkers = []string{"(A)", "(B)", "(C)", "(D)", "(E)", "A)", "B)", "C)", "D)"}

func hasOptionLabels(problem string) bool {
	for _, m := range optionLabelMarkers {
		if strings.Contains(problem, m) {
			return true
		}
	}
	return false
}

func processComplete(p model.ReformulationProcess) bool {
	return p.CoreMathematicalConcept != "" &&
		len(p.KeyInformationExtraction) > 0 &&
		p.ProblemStructureAnalysis != ""
}
