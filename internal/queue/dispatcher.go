package queue

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fc-landing-bot/internal/responder"
	"fc-landing-bot/internal/types"
)

const createErrorText = "Error processing landing page request. Please try again with the correct format: (Name, Description, Purpose)"

// Dispatcher drains the queue one item per tick from a single
// goroutine. Being the only consumer is what guarantees at most one
// item in flight; a tick that fires mid-processing coalesces into a
// no-op. Items are popped before processing, so a handler failure
// never requeues (at-most-once delivery).
type Dispatcher struct {
	Queue    *Queue
	Interval time.Duration

	ProcessCreate func(ctx context.Context, item types.WorkItem) (types.DeploymentResult, error)
	ProcessUpdate func(ctx context.Context, item types.WorkItem) (types.DeploymentResult, error)
	Respond       func(ctx context.Context, out responder.Outcome) error

	Log *zap.Logger
}

// Run drains the queue until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()
	d.Log.Info("queue dispatcher started", zap.Duration("interval", d.Interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.drainOne(ctx)
		}
	}
}

// drainOne pops and processes at most one item. Handler errors are
// logged and turned into a user-facing error reply; they never stop
// the loop.
func (d *Dispatcher) drainOne(ctx context.Context) {
	item, ok := d.Queue.Pop()
	if !ok {
		return
	}
	d.Log.Info("processing work item",
		zap.Stringer("kind", item.Kind),
		zap.String("cast_id", item.CastID),
		zap.String("author_fid", item.AuthorFID))

	switch item.Kind {
	case types.KindHelp, types.KindGeneralMention, types.KindNotOwnerError:
		if err := d.Respond(ctx, responder.OutcomeFor(item)); err != nil {
			d.Log.Error("failed to send response", zap.Error(err))
		}

	case types.KindUpdateRequest:
		result, err := d.ProcessUpdate(ctx, item)
		if err != nil {
			d.Log.Error("update request failed", zap.Error(err))
			d.respondError(ctx, item, "Error updating site: "+err.Error())
			return
		}
		d.respondSuccess(ctx, item, responder.OutcomeUpdated, result)

	case types.KindCreateRequest:
		result, err := d.ProcessCreate(ctx, item)
		if err != nil {
			d.Log.Error("landing page request failed", zap.Error(err))
			d.respondError(ctx, item, createErrorText)
			return
		}
		d.respondSuccess(ctx, item, responder.OutcomeCreated, result)
	}
}

func (d *Dispatcher) respondSuccess(ctx context.Context, item types.WorkItem, kind responder.OutcomeKind, result types.DeploymentResult) {
	out := responder.Outcome{
		Kind:           kind,
		CastID:         item.CastID,
		AuthorFID:      item.AuthorFID,
		AuthorUsername: item.AuthorUsername,
		LandingName:    result.LandingName,
		URL:            result.URL,
	}
	if err := d.Respond(ctx, out); err != nil {
		d.Log.Error("failed to send response", zap.Error(err))
		return
	}
	d.Log.Info("deployment reply sent", zap.String("url", result.URL))
}

func (d *Dispatcher) respondError(ctx context.Context, item types.WorkItem, text string) {
	out := responder.Outcome{
		Kind:           responder.OutcomeGeneral,
		CastID:         item.CastID,
		AuthorFID:      item.AuthorFID,
		AuthorUsername: item.AuthorUsername,
		MentionText:    text,
	}
	if err := d.Respond(ctx, out); err != nil {
		d.Log.Error("failed to send error response", zap.Error(err))
	}
}
