package plugin

import "fmt"

type Hook string

const (
	HookConfigure Hook = "configure"
	HookStart     Hook = "start"
	HookStop      Hook = "stop"
	HookRecover   Hook = "recover"
	HookCleanup   Hook = "cleanup"
)

// Hooks lists every lifecycle hook.
var Hooks = []Hook{HookConfigure, HookStart, HookStop, HookRecover, HookCleanup}

type State int

const (
	StateConstructed State = iota
	StateBound
	StateConfigured
	StateStarted
	StateStopped
	StateFailed
	StateCleaned
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateBound:
		return "bound"
	case StateConfigured:
		return "configured"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	case StateCleaned:
		return "cleaned"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// origins lists, per hook, the states it may be invoked from.
var origins = map[Hook][]State{
	HookConfigure: {StateBound, StateConfigured, StateStopped, StateFailed},
	HookStart:     {StateConfigured, StateStopped},
	HookStop:      {StateStarted},
	HookRecover:   {StateStopped, StateFailed},
	HookCleanup:   {StateBound, StateConfigured, StateStarted, StateStopped, StateFailed},
}

var targets = map[Hook]State{
	HookConfigure: StateConfigured,
	HookStart:     StateStarted,
	HookStop:      StateStopped,
	HookRecover:   StateConfigured,
	HookCleanup:   StateCleaned,
}

// Next returns the state reached when h succeeds from s.
func Next(s State, h Hook) (State, error) {
	for _, o := range origins[h] {
		if o == s {
			return targets[h], nil
		}
	}
	return s, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, h, s)
}

// Settled reports whether a plugin in s already is where h would take it,
// so the hook has nothing to do. Cleaned plugins are never settled.
func Settled(s State, h Hook) bool {
	switch h {
	case HookStart:
		return s == StateStarted
	case HookStop:
		return s == StateStopped
	case HookRecover:
		return s == StateConfigured || s == StateStarted
	}
	return false
}

// Failed returns the state a plugin lands in when h returns an error.
// Cleanup is final either way.
func Failed(h Hook) State {
	if h == HookCleanup {
		return StateCleaned
	}
	return StateFailed
}
