// Package signals computes per-record quality annotations used to filter a
// math-problem corpus: multiple-choice, proof, yes/no, true/false,
// multi-part, hyperlink and empty-boxed detection plus language
// identification. Every detector is a pure function over the record fields.
package signals

import (
	"sync"

	"github.com/mathforge/curator/internal/core/model"
)

type Annotator struct {
	Workers int
}

func NewAnnotator(workers int) *Annotator {
	if workers <= 0 {
		workers = 1
	}
	return &Annotator{Workers: workers}
}

// Annotate computes all signals for one record.
func (a *Annotator) Annotate(row model.ProblemRow) model.Signals {
	return model.Signals{
		IsMultipleChoice: IsMultipleChoice(row.Problem),
		IsMathProof:      IsProof(row.Problem, row.Source),
		IsYesNoQuestion:  IsYesNo(row.Problem, row.FinalAnswer, row.Solution),
		IsTrueFalse:      IsTrueFalse(row.FinalAnswer, row.Solution),
		IsMultiPart:      IsMultiPart(row.Problem),
		HasHyperlink:     HasHyperlink(row.Problem) || HasHyperlink(row.Solution),
		IsBoxedEmpty:     IsBoxedEmpty(row.Solution),
		Language:         DetectLanguage(row.Problem),
	}
}

// AnnotateAll fans the rows out over a fixed worker pool. Results come back
// in input order; rows are independent so no coordination beyond the index
// shard is needed.
func (a *Annotator) AnnotateAll(rows []model.ProblemRow) []model.Signals {
	out := make([]model.Signals, len(rows))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < a.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i] = a.Annotate(rows[i])
			}
		}()
	}
	for i := range rows {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return out
}
