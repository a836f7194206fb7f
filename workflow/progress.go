package workflow

import (
	"fmt"

	"wepub/logutil"
)

// Stage identifies one step of the publish workflow.
type Stage string

const (
	StageAcquireToken  Stage = "acquire_token"
	StageUploadCover   Stage = "upload_cover"
	StageProcessImages Stage = "process_images"
	StageCreateDraft   Stage = "create_draft"
	StagePublish       Stage = "publish"
	StageComplete      Stage = "complete"
)

// progress is a request-scoped trail of stage transitions. Unlike a shared
// state manager, one trail exists per request and dies with it; nothing is
// shared between concurrent requests.
type progress struct {
	requestID string
	stages    []Stage
}

func newProgress(requestID string) *progress {
	return &progress{requestID: requestID}
}

// enter records a stage transition.
func (p *progress) enter(s Stage) {
	p.stages = append(p.stages, s)
	logutil.Infof("[%s] stage %s", p.requestID, s)
}

// log records a stage-level event.
func (p *progress) log(format string, args ...any) {
	logutil.Infof("[%s] "+format, append([]any{p.requestID}, args...)...)
}

// fail logs the failing stage with the full trail and wraps err with the
// stage name.
func (p *progress) fail(err error) error {
	stage := Stage("validate")
	if n := len(p.stages); n > 0 {
		stage = p.stages[n-1]
	}
	logutil.Errorf("[%s] failed at %s (trail %v): %v", p.requestID, stage, p.stages, err)
	return fmt.Errorf("%s: %w", stage, err)
}
