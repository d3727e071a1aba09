package model

// Signals are per-record quality annotations used to filter the corpus.
type Signals struct {
	IsMultipleChoice bool   `json:"is_multiple_choice"`
	IsMathProof      bool   `json:"is_math_proof"`
	IsYesNoQuestion  bool   `json:"is_yes_no_question"`
	IsTrueFalse      bool   `json:"is_true_false_question"`
	IsMultiPart      bool   `json:"is_multi_part_q_regex"`
	HasHyperlink     bool   `json:"has_hyperlink"`
	IsBoxedEmpty     bool   `json:"is_boxed_empty"`
	Language         string `json:"language"`
}

// ProblemRow carries the fields the signal detectors inspect. Source rows
// may have more columns; those round-trip through the dataset layer untouched.
type ProblemRow struct {
	Problem     string `json:"problem"`
	Solution    string `json:"solution"`
	FinalAnswer string `json:"final_answer"`
	Source      string `json:"source"`
}
