// Package dispatch applies node graph actions. It is the only writer of the
// node store, the type ownership mapping and the touched set.
package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/grove/internal/core/domain"
	"go.trai.ch/grove/internal/core/ports"
	"go.trai.ch/grove/internal/engine/ownership"
	"go.trai.ch/zerr"
)

var _ ports.Dispatcher = (*Dispatcher)(nil)

// ActionLogSize is the number of recent actions kept for diagnostics.
const ActionLogSize = 1024

// Dispatcher serializes node actions. Each action runs the ownership check,
// the store write and the touched set update as one step.
type Dispatcher struct {
	store    ports.NodeStore
	state    *domain.State
	tracker  *ownership.Tracker
	logger   ports.Logger
	validate *validator.Validate

	mu      sync.Mutex
	actions *actionLog
	now     func() time.Time
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(
	store ports.NodeStore,
	state *domain.State,
	tracker *ownership.Tracker,
	logger ports.Logger,
) *Dispatcher {
	return &Dispatcher{
		store:    store,
		state:    state,
		tracker:  tracker,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		actions:  newActionLog(ActionLogSize),
		now:      time.Now,
	}
}

// CreateNode creates or replaces a node on behalf of plugin.
// The node's owner is always set to the plugin's name. A node whose content
// digest matches the stored node is only touched.
func (d *Dispatcher) CreateNode(ctx context.Context, node *domain.Node, plugin *domain.Plugin) error {
	if plugin == nil {
		return zerr.With(zerr.Wrap(domain.ErrPluginRequired, "cannot create node"), "node_id", node.ID)
	}

	node = node.Clone()
	node.Internal.Owner = plugin.Name
	if err := d.validateNode(node); err != nil {
		return zerr.With(err, "plugin", plugin.Name)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	old, err := d.store.GetNode(ctx, node.ID)
	if err != nil {
		return err
	}

	if err := d.tracker.HandleNodeCreate(old, node, plugin); err != nil {
		return err
	}

	if unchanged(old, node) {
		d.state.Touch(node.ID)
		d.record(domain.ActionTouchNode, node, plugin.Name)
		return nil
	}

	if err := d.store.Upsert(ctx, node); err != nil {
		return err
	}
	d.state.Touch(node.ID)
	d.record(domain.ActionCreateNode, node, plugin.Name)
	return nil
}

// DeleteNode removes a node. A nil plugin is the system actor and bypasses
// ownership checks.
func (d *Dispatcher) DeleteNode(ctx context.Context, node *domain.Node, plugin *domain.Plugin) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	stored, err := d.store.GetNode(ctx, node.ID)
	if err != nil {
		return err
	}
	if stored != nil {
		node = stored
	}

	if err := d.tracker.HandleNodeDelete(node, plugin); err != nil {
		return err
	}

	if err := d.store.Delete(ctx, node.ID); err != nil {
		return err
	}
	d.state.Untouch(node.ID)

	actor := ""
	if plugin != nil {
		actor = plugin.Name
	}
	d.record(domain.ActionDeleteNode, node, actor)
	return nil
}

// TouchNode marks node as still produced by plugin.
func (d *Dispatcher) TouchNode(_ context.Context, node *domain.Node, plugin *domain.Plugin) error {
	if plugin == nil {
		return zerr.With(zerr.Wrap(domain.ErrPluginRequired, "cannot touch node"), "node_id", node.ID)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.tracker.HandleNodeTouch(node.Type(), plugin); err != nil {
		return err
	}
	d.state.Touch(node.ID)
	d.record(domain.ActionTouchNode, node, plugin.Name)
	return nil
}

// APIFinished records that api finished across all plugins.
func (d *Dispatcher) APIFinished(_ context.Context, api string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.actions.add(domain.Action{Type: domain.ActionAPIFinished, API: api, At: d.now()})
	d.logger.Debug(fmt.Sprintf("api %s finished", api))
}

// Restore rebuilds the type ownership mapping from nodes persisted by a
// previous run. Conflicting owners in stored data are reported and skipped.
func (d *Dispatcher) Restore(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	owners := d.tracker.Owners()
	for node, err := range d.store.IterateNodes(ctx) {
		if err != nil {
			return err
		}
		if node.Owner() == "" {
			continue
		}
		if !owners.Claim(node.Type(), node.Owner()) {
			current, _ := owners.OwnerOf(node.Type())
			d.logger.Warn(fmt.Sprintf(
				"stored node %s of type %s is owned by %s but the type belongs to %s",
				node.ID, node.Type(), node.Owner(), current,
			))
		}
	}
	return nil
}

// Actions returns the most recent actions, oldest first.
func (d *Dispatcher) Actions() []domain.Action {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.actions.list()
}

func (d *Dispatcher) validateNode(node *domain.Node) error {
	if err := d.validate.Struct(node); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrInvalidNode, err.Error()), "node_id", node.ID)
	}
	return nil
}

func (d *Dispatcher) record(action domain.ActionType, node *domain.Node, plugin string) {
	d.actions.add(domain.Action{
		Type:     action,
		NodeID:   node.ID,
		NodeType: node.Type(),
		Plugin:   plugin,
		At:       d.now(),
	})
	nodeActions.WithLabelValues(string(action), plugin).Inc()
}

// unchanged reports whether next has the same content as the stored node.
func unchanged(old, next *domain.Node) bool {
	return old != nil &&
		old.Internal.ContentDigest != "" &&
		old.Internal.ContentDigest == next.Internal.ContentDigest &&
		old.Owner() == next.Owner()
}

// actionLog is a fixed-size ring of recent actions.
type actionLog struct {
	entries []domain.Action
	next    int
	full    bool
}

func newActionLog(size int) *actionLog {
	return &actionLog{entries: make([]domain.Action, size)}
}

func (l *actionLog) add(a domain.Action) {
	l.entries[l.next] = a
	l.next = (l.next + 1) % len(l.entries)
	if l.next == 0 {
		l.full = true
	}
}

func (l *actionLog) list() []domain.Action {
	if !l.full {
		return append([]domain.Action(nil), l.entries[:l.next]...)
	}
	out := make([]domain.Action, 0, len(l.entries))
	out = append(out, l.entries[l.next:]...)
	return append(out, l.entries[:l.next]...)
}
