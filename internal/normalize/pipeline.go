// Package normalize implements the post-parse normalization pipeline:
// an ordered (or conditional) sequence of Steps that each rewrite one
// record, plus the built-in steps for timestamp, level, field-name,
// hostname, and geo normalization.
package normalize

import "github.com/loglens/loglens/internal/record"

// Step normalizes one record, returning the result or an error describing
// why it could not.
type Step interface {
	Normalize(r record.Record) (record.Record, error)
}

// StepFunc adapts a plain function to Step.
type StepFunc func(record.Record) (record.Record, error)

func (f StepFunc) Normalize(r record.Record) (record.Record, error) { return f(r) }

// Pipeline applies an ordered list of steps to each record in turn.
type Pipeline struct {
	Steps       []Step
	StopOnError bool

	processed int
	errored   int
}

// NewPipeline builds a Pipeline from steps in application order.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{Steps: steps}
}

// ProcessOne applies every step in order. When StopOnError is true, the
// first step error aborts and is returned; otherwise the record entering
// the failed step is annotated with a normalization_error entry in Extra
// and the pipeline continues with the remaining steps.
func (p *Pipeline) ProcessOne(r record.Record) (record.Record, error) {
	for _, step := range p.Steps {
		next, err := step.Normalize(r)
		if err != nil {
			if p.StopOnError {
				return r, err
			}
			r.Extra["normalization_error"] = err.Error()
			p.errored++
			continue
		}
		r = next
	}
	return r, nil
}

// Process applies ProcessOne across stream, returning the normalized
// records and tallying processed/errored counts. With StopOnError, the
// first error aborts and is returned alongside whatever was normalized so
// far.
func (p *Pipeline) Process(stream []record.Record) ([]record.Record, error) {
	out := make([]record.Record, 0, len(stream))
	for _, r := range stream {
		p.processed++
		normalized, err := p.ProcessOne(r)
		if err != nil {
			return out, err
		}
		out = append(out, normalized)
	}
	return out, nil
}

// Processed returns the running count of records passed to ProcessOne.
func (p *Pipeline) Processed() int { return p.processed }

// Errored returns the running count of records a step failed to normalize.
func (p *Pipeline) Errored() int { return p.errored }

// CondStep pairs a step with a predicate controlling whether it runs.
type CondStep struct {
	Predicate func(record.Record) bool
	Step      Step
}

// ConditionalPipeline applies an unconditional prefix of "always" steps,
// then each conditional step whose predicate matches the record as it
// stands after every prior step has run.
type ConditionalPipeline struct {
	Always      []Step
	Conditional []CondStep
	StopOnError bool

	processed int
	errored   int
}

// NewConditionalPipeline builds a ConditionalPipeline from always-run
// steps and predicate-gated steps.
func NewConditionalPipeline(always []Step, conditional []CondStep) *ConditionalPipeline {
	return &ConditionalPipeline{Always: always, Conditional: conditional}
}

// ProcessOne applies every always-step, then every conditional step whose
// predicate currently holds. A panicking predicate is treated as false.
func (cp *ConditionalPipeline) ProcessOne(r record.Record) (record.Record, error) {
	for _, step := range cp.Always {
		next, err := cp.runStep(step, r)
		if err != nil {
			return r, err
		}
		r = next
	}
	for _, cs := range cp.Conditional {
		if !cp.predicateHolds(cs.Predicate, r) {
			continue
		}
		next, err := cp.runStep(cs.Step, r)
		if err != nil {
			return r, err
		}
		r = next
	}
	return r, nil
}

func (cp *ConditionalPipeline) runStep(step Step, r record.Record) (record.Record, error) {
	next, err := step.Normalize(r)
	if err != nil {
		if cp.StopOnError {
			return r, err
		}
		r.Extra["normalization_error"] = err.Error()
		cp.errored++
		return r, nil
	}
	return next, nil
}

func (cp *ConditionalPipeline) predicateHolds(pred func(record.Record) bool, r record.Record) (holds bool) {
	defer func() {
		if recover() != nil {
			holds = false
		}
	}()
	return pred(r)
}

// Process applies ProcessOne across stream, tallying processed/errored.
func (cp *ConditionalPipeline) Process(stream []record.Record) ([]record.Record, error) {
	out := make([]record.Record, 0, len(stream))
	for _, r := range stream {
		cp.processed++
		normalized, err := cp.ProcessOne(r)
		if err != nil {
			return out, err
		}
		out = append(out, normalized)
	}
	return out, nil
}

func (cp *ConditionalPipeline) Processed() int { return cp.processed }
func (cp *ConditionalPipeline) Errored() int { return cp.errored }
