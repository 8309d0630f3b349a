// Package multistep sequences compound operations that need more than one
// exchange, reporting a single envelope under the id handed to the caller.
package multistep

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/bnema/usergrid-go/internal/domain"
	"github.com/bnema/usergrid-go/internal/transaction"
	log "github.com/sirupsen/logrus"
)

// Sender is the part of the channel pool the orchestrator drives.
type Sender interface {
	NextTransactionID() domain.TransactionID
	Send(ctx context.Context, req transaction.Request) (transaction.Exchange, error)
	SendAsync(ctx context.Context, req transaction.Request, cb transaction.Callback) (domain.TransactionID, error)
	Cancel(id domain.TransactionID) bool
	Trace(id domain.TransactionID) log.FieldLogger
}

// Routes builds the urls of the activity steps.
type Routes interface {
	Activities() string
	UserActivity(userID, activityID string) string
	GroupActivity(groupID, activityID string) string
}

// Deliver receives the terminal envelope of a compound operation.
type Deliver func(domain.Response)

// Plan describes a create-then-post activity operation.
type Plan struct {
	Target   Target
	TargetID string
	Activity domain.Entity
	Token    string
	// Generation ties the operation to a delegate. Abandon drops every
	// record of a generation; zero is never abandoned.
	Generation uint64
}

func (p Plan) validate() error {
	if strings.TrimSpace(p.TargetID) == "" {
		if p.Target == TargetGroup {
			return domain.InvalidInput("group id is required")
		}
		return domain.InvalidInput("user id is required")
	}
	if len(p.Activity) == 0 {
		return domain.InvalidInput("activity is required")
	}
	return nil
}

type Orchestrator struct {
	sender Sender
	routes Routes

	mu      sync.Mutex
	records map[domain.TransactionID]*Record
}

func New(sender Sender, routes Routes) *Orchestrator {
	return &Orchestrator{
		sender:  sender,
		routes:  routes,
		records: map[domain.TransactionID]*Record{},
	}
}

// Start dispatches the first step and returns the Pending envelope carrying
// the outward id. deliver runs exactly once with the terminal envelope unless
// the operation is cancelled or abandoned. A plan that cannot start yields a
// Failure with SyncTransactionID and deliver is never called.
func (o *Orchestrator) Start(ctx context.Context, plan Plan, deliver Deliver) domain.Response {
	if err := plan.validate(); err != nil {
		return domain.NewFailure(domain.SyncTransactionID, err, nil)
	}

	outward := o.sender.NextTransactionID()
	rec := &Record{
		NextAction: plan.Target.createAction(),
		OutwardID:  outward,
		TargetID:   plan.TargetID,
		Activity:   plan.Activity,
		token:      plan.Token,
		generation: plan.Generation,
		deliver:    deliver,
	}

	o.mu.Lock()
	o.records[outward] = rec
	o.mu.Unlock()

	req, err := o.request(rec)
	if err == nil {
		err = o.dispatch(ctx, rec, req)
	}
	if err != nil {
		o.discard(rec)
		return domain.NewFailure(domain.SyncTransactionID, err, nil)
	}

	o.sender.Trace(outward).WithField("action", rec.NextAction).Debug("compound operation started")
	return domain.NewPending(outward)
}

// Run performs every step on the calling goroutine.
func (o *Orchestrator) Run(ctx context.Context, plan Plan) domain.Response {
	if err := plan.validate(); err != nil {
		return domain.NewFailure(domain.SyncTransactionID, err, nil)
	}

	rec := &Record{
		TransactionID: domain.SyncTransactionID,
		NextAction:    plan.Target.createAction(),
		OutwardID:     domain.SyncTransactionID,
		TargetID:      plan.TargetID,
		Activity:      plan.Activity,
		token:         plan.Token,
	}

	for {
		req, err := o.request(rec)
		if err != nil {
			return domain.NewFailure(domain.SyncTransactionID, err, nil)
		}
		exchange, err := o.sender.Send(ctx, req)
		if final := o.advance(rec, exchange, err); final != nil {
			return *final
		}
	}
}

// Cancel drops the compound operation reported under outward. It reports
// false when none is in flight, including when its envelope is already being
// delivered.
func (o *Orchestrator) Cancel(outward domain.TransactionID) bool {
	o.mu.Lock()
	rec, ok := o.records[outward]
	if ok {
		delete(o.records, outward)
	}
	o.mu.Unlock()

	if !ok {
		return false
	}
	o.sender.Cancel(rec.TransactionID)
	return true
}

// Abandon drops every record tied to generation. Their steps still finish
// on the wire but nothing is delivered.
func (o *Orchestrator) Abandon(generation uint64) int {
	if generation == 0 {
		return 0
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	dropped := 0
	for outward, rec := range o.records {
		if rec.generation == generation {
			delete(o.records, outward)
			dropped++
		}
	}
	return dropped
}

// Pending is the number of compound operations in flight.
func (o *Orchestrator) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.records)
}

func (o *Orchestrator) dispatch(ctx context.Context, rec *Record, req transaction.Request) error {
	outward := rec.OutwardID
	o.mu.Lock()
	action := rec.NextAction
	o.mu.Unlock()

	id, err := o.sender.SendAsync(ctx, req, func(exchange transaction.Exchange, err error) {
		o.complete(ctx, outward, exchange, err)
	})
	if err != nil {
		return err
	}

	// The step may already have completed and the next one been sent.
	o.mu.Lock()
	if o.records[outward] == rec && rec.NextAction == action {
		rec.TransactionID = id
	}
	o.mu.Unlock()
	return nil
}

func (o *Orchestrator) complete(ctx context.Context, outward domain.TransactionID, exchange transaction.Exchange, err error) {
	trace := o.sender.Trace(outward)

	o.mu.Lock()
	rec, ok := o.records[outward]
	if !ok {
		o.mu.Unlock()
		trace.Debug("step result dropped, operation no longer tracked")
		return
	}
	final := o.advance(rec, exchange, err)
	if final != nil {
		delete(o.records, outward)
	}
	o.mu.Unlock()

	if final == nil {
		req, reqErr := o.request(rec)
		if reqErr == nil {
			reqErr = o.dispatch(ctx, rec, req)
		}
		if reqErr == nil {
			trace.WithField("action", rec.NextAction).Debug("compound operation advanced")
			return
		}
		if !o.discard(rec) {
			return
		}
		failure := domain.NewFailure(outward, reqErr, nil)
		final = &failure
	}

	if !final.Succeeded() {
		trace.WithError(final.Err).Debug("compound operation failed")
	}
	if rec.ReportToClient && rec.deliver != nil {
		rec.deliver(*final)
	}
}

// discard removes rec and reports whether it was still tracked.
func (o *Orchestrator) discard(rec *Record) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.records[rec.OutwardID] != rec {
		return false
	}
	delete(o.records, rec.OutwardID)
	return true
}

func (o *Orchestrator) request(rec *Record) (transaction.Request, error) {
	switch rec.NextAction {
	case ActionCreateActivity, ActionCreateGroupActivity:
		body, err := json.Marshal(rec.Activity)
		if err != nil {
			return transaction.Request{}, fmt.Errorf("encode activity: %w", err)
		}
		return transaction.Request{URL: o.routes.Activities(), Method: domain.MethodPost, Body: body, Token: rec.token}, nil
	case ActionPostActivity:
		return transaction.Request{URL: o.routes.UserActivity(rec.TargetID, rec.ActivityID), Method: domain.MethodPost, Token: rec.token}, nil
	case ActionPostGroupActivity:
		return transaction.Request{URL: o.routes.GroupActivity(rec.TargetID, rec.ActivityID), Method: domain.MethodPost, Token: rec.token}, nil
	default:
		return transaction.Request{}, fmt.Errorf("no request for action %s", rec.NextAction)
	}
}

// advance applies the result of the outstanding step to rec. It returns the
// terminal envelope, already tagged with the outward id, or nil when another
// step must run.
func (o *Orchestrator) advance(rec *Record, exchange transaction.Exchange, err error) *domain.Response {
	fail := func(err error) *domain.Response {
		rec.NextAction = ActionCleanup
		rec.ReportToClient = true
		failure := domain.NewFailure(rec.OutwardID, err, exchange.Body)
		return &failure
	}

	if err != nil {
		return fail(fmt.Errorf("%s: %w", rec.NextAction, err))
	}

	switch rec.NextAction {
	case ActionCreateActivity, ActionCreateGroupActivity:
		activityID, parseErr := createdActivityID(exchange.Body)
		if parseErr != nil {
			return fail(parseErr)
		}
		rec.ActivityID = activityID
		rec.ReportToClient = true
		if rec.NextAction == ActionCreateGroupActivity {
			rec.NextAction = ActionPostGroupActivity
		} else {
			rec.NextAction = ActionPostActivity
		}
		return nil
	case ActionPostActivity, ActionPostGroupActivity:
		rec.NextAction = ActionCleanup
		var resp domain.APIResponse
		if err := json.Unmarshal(exchange.Body, &resp); err != nil {
			return fail(fmt.Errorf("decode posted activity: %w", err))
		}
		entity, _ := resp.FirstEntity()
		success := domain.NewSuccess(exchange.TransactionID, entity, exchange.Body).WithTransactionID(rec.OutwardID)
		return &success
	default:
		return fail(fmt.Errorf("unexpected step result for action %s", rec.NextAction))
	}
}

func createdActivityID(body []byte) (string, error) {
	var resp domain.APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode created activity: %w", err)
	}
	entity, ok := resp.FirstEntity()
	if !ok || entity.UUID() == "" {
		return "", domain.ErrMissingActivityID
	}
	return entity.UUID(), nil
}
