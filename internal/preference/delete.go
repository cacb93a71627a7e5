package preference

import (
	"context"
	"errors"
)

type DeletePhase string

const (
	DeleteIdle       DeletePhase = "idle"
	DeleteConfirming DeletePhase = "confirming"
	DeleteDeleting   DeletePhase = "deleting"
)

var ErrNoPendingDelete = errors.New("no delete awaiting confirmation")

type Deleter interface {
	DeleteJobProfile(ctx context.Context, id int64) error
}

// DeleteFlow is the confirmation dialog of the list screen.
type DeleteFlow struct {
	Phase      DeletePhase `json:"phase"`
	Target     int64       `json:"target,omitempty"`
	TargetName string      `json:"target_name,omitempty"`
}

func NewDeleteFlow() *DeleteFlow {
	return &DeleteFlow{Phase: DeleteIdle}
}

// Request asks for confirmation before deleting id.
func (d *DeleteFlow) Request(id int64, name string) {
	d.Phase = DeleteConfirming
	d.Target = id
	d.TargetName = name
}

func (d *DeleteFlow) Cancel() {
	d.reset()
}

// Confirm deletes the target. The flow is idle afterwards whatever the outcome;
// a failure is returned once and never retried.
func (d *DeleteFlow) Confirm(ctx context.Context, api Deleter) (int64, error) {
	if d.Phase != DeleteConfirming {
		return 0, ErrNoPendingDelete
	}

	target := d.Target
	d.Phase = DeleteDeleting
	defer d.reset()

	return target, api.DeleteJobProfile(ctx, target)
}

func (d *DeleteFlow) reset() {
	d.Phase = DeleteIdle
	d.Target = 0
	d.TargetName = ""
}
