package model

// ReformulationProcess is the structured analysis the model produces before
// rewriting a problem. Keys mirror the reformulation prompt contract.
type ReformulationProcess struct {
	CoreMathematicalConcept       string   `json:"core_mathematical_concept"`
	KeyInformationExtraction      []string `json:"key_information_extraction"`
	ProblemStructureAnalysis      string   `json:"problem_structure_analysis"`
	MultipleChoiceRemovalStrategy []string `json:"multiple_choice_removal_strategy"`
	RephrasingApproach            []string `json:"rephrasing_approach"`
	ProblemIntegrityPreservation  []string `json:"problem_integrity_preservation"`
	AnswerFormatSpecification     []string `json:"answer_format_specification"`
	IsMultipleChoice              bool     `json:"is_multiple_choice"`
}

// JudgeResult is the second-pass critique of a reformulation.
type JudgeResult struct {
	Verdict                string   `json:"verdict"`
	Issues                 []string `json:"issues"`
	Suggestions            []string `json:"suggestions"`
	CorrectedReformulation string   `json:"corrected_reformulated_problem"`
	Reasoning              string   `json:"reasoning"`
}

// Reformulation is the full outcome for one problem: the rewrite, the
// process analysis, the judge pass, and local validation.
type Reformulation struct {
	ReformulatedProblem string               `json:"reformulated_problem"`
	Process             ReformulationProcess `json:"reformulation_process"`
	Judge               *JudgeResult         `json:"judge,omitempty"`
	ValidationPassed    bool                 `json:"validation_passed"`
	ValidationDetails   map[string]bool      `json:"validation_details"`
}
