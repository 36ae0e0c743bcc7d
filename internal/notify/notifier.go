package notify

import (
	"log"
	"sync"

	"github.com/adikms/kinetrack/internal/store"
)

// DefaultTimeoutMs is the default per-command execution timeout.
const DefaultTimeoutMs = 5000

// Notifier matches action transitions against alert rules and executes the
// bound commands. Rules are loaded from the store and cached; call Reload
// after rules change.
type Notifier struct {
	rules    *store.AlertRuleRepository
	executor *Executor

	mu     sync.RWMutex
	cached []*store.AlertRule
}

// New creates a Notifier reading rules from the given repository.
func New(rules *store.AlertRuleRepository, timeoutMs int) *Notifier {
	if timeoutMs <= 0 {
		timeoutMs = DefaultTimeoutMs
	}
	return &Notifier{
		rules:    rules,
		executor: NewExecutor(timeoutMs),
	}
}

// Reload refreshes the cached rule set from the store.
func (n *Notifier) Reload() error {
	rules, err := n.rules.ListEnabled()
	if err != nil {
		return err
	}

	n.mu.Lock()
	n.cached = rules
	n.mu.Unlock()

	return nil
}

// ActionChanged dispatches the event to every enabled rule matching its class
// and action. Commands run in their own goroutines so a slow command never
// stalls the detection loop; failures are logged and dropped.
func (n *Notifier) ActionChanged(ev Event) {
	n.mu.RLock()
	rules := n.cached
	n.mu.RUnlock()

	for _, rule := range rules {
		if rule.ClassName != ev.ClassName || rule.Action != ev.Action {
			continue
		}

		go func(rule *store.AlertRule, ev Event) {
			resp, err := n.executor.Execute(rule.Command, &ev)
			if err != nil {
				log.Printf("alert rule %s: %v", rule.ID, err)
				return
			}
			if !resp.Success {
				log.Printf("alert rule %s: command reported failure: %s", rule.ID, resp.Error)
			}
		}(rule, ev)
	}
}
