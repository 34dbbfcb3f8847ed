package options

import (
	"fmt"
	"slices"

	apperrors "github.com/appforge-labs/appforge/internal/errors"
)

// Any matches every value in a Rule column.
const Any = "*"

// Rule is one row of the state-management/middleware decision table. Rows are
// evaluated in order and the first match decides; an empty Reason means the
// pairing is valid.
type Rule struct {
	State      StateManagement
	Middleware Middleware
	Reason     apperrors.Reason
}

// compatibility is total: the last row matches every pairing.
var compatibility = []Rule{
	{State: StateRedux, Middleware: MiddlewareThunk},
	{State: StateRedux, Middleware: MiddlewareSaga},
	{State: StateRedux, Middleware: MiddlewareNone},
	{State: StateRedux, Middleware: Any, Reason: apperrors.ReasonIncompatibleMiddleware},
	{State: StateNone, Middleware: MiddlewareNone},
	{State: Any, Middleware: Any, Reason: apperrors.ReasonIncompatibleStateManagement},
}

// Table returns a copy of the state-management/middleware decision table.
func Table() []Rule {
	return slices.Clone(compatibility)
}

func (r Rule) matches(state StateManagement, mw Middleware) bool {
	return (r.State == Any || r.State == state) && (r.Middleware == Any || r.Middleware == mw)
}

// decide returns the first rule matching the pairing.
func decide(state StateManagement, mw Middleware) Rule {
	for _, r := range compatibility {
		if r.matches(state, mw) {
			return r
		}
	}
	// Unreachable while the last row is a full wildcard.
	return Rule{State: Any, Middleware: Any, Reason: apperrors.ReasonIncompatibleStateManagement}
}

// Validate normalizes raw and checks it against the compatibility grammar.
// It has no side effects; the same input always yields the same verdict.
// Failures are *errors.ValidationError values wrapping errors.ErrValidation.
func Validate(raw Raw) (Config, error) {
	framework := raw.FrameworkVersion
	if framework == "" {
		framework = raw.ReactVersion
	}
	hooks := raw.HooksMode
	if hooks == "" {
		hooks = raw.HooksManagement
	}

	cfg := Config{
		framework:  normalizeFramework(framework),
		hooks:      normalize("hooksMode", hooks),
		state:      StateManagement(normalize("stateManagement", raw.StateManagement)),
		middleware: Middleware(normalize("middleware", raw.Middleware)),
		css:        CSSFramework(normalize("cssFramework", raw.CSSFramework)),
	}

	switch rule := decide(cfg.state, cfg.middleware); rule.Reason {
	case "":
	case apperrors.ReasonIncompatibleMiddleware:
		return Config{}, apperrors.NewValidationError(rule.Reason, "middleware", string(cfg.middleware),
			fmt.Sprintf("middleware %q cannot be used with redux; choose redux-thunk, redux-saga or none", cfg.middleware))
	default:
		return Config{}, apperrors.NewValidationError(rule.Reason, "stateManagement", string(cfg.state),
			fmt.Sprintf("state management %q cannot be combined with middleware %q", cfg.state, cfg.middleware))
	}

	if !knownHooksMode(cfg.hooks) {
		return Config{}, apperrors.NewValidationError(apperrors.ReasonUnsupportedHooksMode, "hooksMode", cfg.hooks,
			fmt.Sprintf("unsupported hooks mode %q", cfg.hooks))
	}
	if cfg.HooksActive() && cfg.state != StateNone {
		return Config{}, apperrors.NewValidationError(apperrors.ReasonIncompatibleHooksSelection, "hooksMode", cfg.hooks,
			fmt.Sprintf("hooks mode %q requires state management and middleware to be none", cfg.hooks))
	}

	if !slices.Contains(FrameworkVersions, cfg.framework) {
		return Config{}, apperrors.NewValidationError(apperrors.ReasonUnsupportedFrameworkVersion, "frameworkVersion", cfg.framework,
			fmt.Sprintf("unsupported framework version %q; supported: %v", cfg.framework, FrameworkVersions))
	}
	switch cfg.css {
	case CSSTailwind, CSSBootstrap, CSSNone:
	default:
		return Config{}, apperrors.NewValidationError(apperrors.ReasonUnsupportedCSSFramework, "cssFramework", string(cfg.css),
			fmt.Sprintf("unsupported CSS framework %q", cfg.css))
	}

	return cfg, nil
}

// MustValidate is like Validate but panics on error. Intended for tests and
// package-level fixtures.
func MustValidate(raw Raw) Config {
	cfg, err := Validate(raw)
	if err != nil {
		panic(fmt.Sprintf("options: MustValidate(%+v): %v", raw, err))
	}
	return cfg
}

func knownHooksMode(mode string) bool {
	if mode == HooksNone || mode == HooksAll {
		return true
	}
	return slices.Contains(AllHooks, Hook(mode))
}
