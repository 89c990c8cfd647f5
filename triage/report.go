package triage

import (
	"github.com/webitel/wlog"
)

type Step string

const (
	StepCreateRoom      Step = "create_room"
	StepAddMember       Step = "add_member"
	StepPostMessage     Step = "post_message"
	StepListMemberships Step = "list_memberships"
	StepDeleteRoom      Step = "delete_room"
)

// StepResult records the outcome of a single external call. Target is the
// value the step acted on: an email for add_member, a room id for
// post_message and delete_room.
type StepResult struct {
	Step   Step
	Target string
	Err    error
}

func (r StepResult) OK() bool {
	return r.Err == nil
}

// Report accumulates per-step outcomes of one orchestration pass. Member
// and message failures do not abort the pass, so the report is the only
// complete record of what actually happened.
type Report struct {
	Steps []StepResult
}

func (r *Report) add(step Step, target string, err error) {
	r.Steps = append(r.Steps, StepResult{Step: step, Target: target, Err: err})
}

// Count returns how many times the given step was attempted.
func (r *Report) Count(step Step) int {
	var n int
	for _, s := range r.Steps {
		if s.Step == step {
			n++
		}
	}

	return n
}

// Failed returns the steps that reported an error.
func (r *Report) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if !s.OK() {
			failed = append(failed, s)
		}
	}

	return failed
}

// Log emits one summary line for the pass plus a line per failed step.
func (r *Report) Log(log *wlog.Logger) {
	failed := r.Failed()
	log.Info("orchestration pass finished", wlog.Int("steps", len(r.Steps)), wlog.Int("failed", len(failed)))

	for _, s := range failed {
		log.Error("step failed", wlog.String("step", string(s.Step)), wlog.String("target", s.Target), wlog.Err(s.Err))
	}
}
