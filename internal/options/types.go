package options

import (
	"fmt"
	"strings"
)

// Raw is a configuration as received from a caller, before normalization.
// ReactVersion and HooksManagement are the field names older web front ends
// post; they are used only when the canonical field is empty.
type Raw struct {
	FrameworkVersion string `yaml:"frameworkVersion" json:"frameworkVersion"`
	HooksMode        string `yaml:"hooksMode" json:"hooksMode"`
	StateManagement  string `yaml:"stateManagement" json:"stateManagement"`
	Middleware       string `yaml:"middleware" json:"middleware"`
	CSSFramework     string `yaml:"cssFramework" json:"cssFramework"`

	ReactVersion    string `yaml:"reactVersion,omitempty" json:"reactVersion,omitempty"`
	HooksManagement string `yaml:"hooksManagement,omitempty" json:"hooksManagement,omitempty"`
}

// StateManagement is a state-management library choice.
type StateManagement string

const (
	StateRedux      StateManagement = "redux"
	StateContextAPI StateManagement = "context-api"
	StateNone       StateManagement = "none"
)

// Middleware is a Redux middleware choice.
type Middleware string

const (
	MiddlewareThunk Middleware = "redux-thunk"
	MiddlewareSaga  Middleware = "redux-saga"
	MiddlewareNone  Middleware = "none"
)

// CSSFramework is a CSS framework choice.
type CSSFramework string

const (
	CSSTailwind  CSSFramework = "tailwind"
	CSSBootstrap CSSFramework = "bootstrap"
	CSSNone      CSSFramework = "none"
)

// Hook is a custom hook the generator can emit.
type Hook string

const (
	HookState        Hook = "usestate"
	HookEffect       Hook = "useeffect"
	HookLocalStorage Hook = "uselocalstorage"
	HookFetch        Hook = "usefetch"
)

// Hooks modes that are not a single hook.
const (
	HooksNone = "none"
	HooksAll  = "hooks"
)

// AllHooks lists every supported hook in emission order.
var AllHooks = []Hook{HookState, HookEffect, HookLocalStorage, HookFetch}

// FrameworkVersions lists the supported framework majors, oldest first.
var FrameworkVersions = []string{"17", "18"}

// Config is a validated configuration. The zero value is not valid; obtain one
// from Validate.
type Config struct {
	framework  string
	hooks      string
	state      StateManagement
	middleware Middleware
	css        CSSFramework
}

// FrameworkVersion returns the framework major version, e.g. "18".
func (c Config) FrameworkVersion() string { return c.framework }

// HooksMode returns "none", "hooks" or a single Hook value.
func (c Config) HooksMode() string { return c.hooks }

// StateManagement returns the state-management choice.
func (c Config) StateManagement() StateManagement { return c.state }

// Middleware returns the middleware choice.
func (c Config) Middleware() Middleware { return c.middleware }

// CSSFramework returns the CSS framework choice.
func (c Config) CSSFramework() CSSFramework { return c.css }

// Redux reports whether Redux wiring is requested.
func (c Config) Redux() bool { return c.state == StateRedux }

// HooksActive reports whether any custom hook is requested.
func (c Config) HooksActive() bool { return c.hooks != HooksNone && c.hooks != "" }

// Hooks returns the hooks to emit, in emission order.
func (c Config) Hooks() []Hook {
	switch c.hooks {
	case HooksNone, "":
		return nil
	case HooksAll:
		out := make([]Hook, len(AllHooks))
		copy(out, AllHooks)
		return out
	default:
		return []Hook{Hook(c.hooks)}
	}
}

// String renders the configuration for logs.
func (c Config) String() string {
	return fmt.Sprintf("framework=%s hooks=%s state=%s middleware=%s css=%s",
		c.framework, c.hooks, c.state, c.middleware, c.css)
}

// Field describes one configuration field and its accepted values.
type Field struct {
	Name   string
	Values []string
}

// Fields returns every configuration field with its canonical values.
func Fields() []Field {
	hooks := []string{HooksNone, HooksAll}
	for _, h := range AllHooks {
		hooks = append(hooks, string(h))
	}
	return []Field{
		{Name: "frameworkVersion", Values: append([]string(nil), FrameworkVersions...)},
		{Name: "hooksMode", Values: hooks},
		{Name: "stateManagement", Values: []string{string(StateRedux), string(StateContextAPI), string(StateNone)}},
		{Name: "middleware", Values: []string{string(MiddlewareThunk), string(MiddlewareSaga), string(MiddlewareNone)}},
		{Name: "cssFramework", Values: []string{string(CSSTailwind), string(CSSBootstrap), string(CSSNone)}},
	}
}

// aliases maps alternative spellings to canonical values, per field.
var aliases = map[string]map[string]string{
	"stateManagement": {
		"contextapi":  string(StateContextAPI),
		"context api": string(StateContextAPI),
		"context":     string(StateContextAPI),
	},
	"hooksMode": {
		"all": HooksAll,
	},
	"cssFramework": {
		"tailwindcss":  string(CSSTailwind),
		"tailwind css": string(CSSTailwind),
	},
}

// normalize lowercases and trims v, resolves aliases, and maps empty to "none".
func normalize(field, v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return "none"
	}
	if canonical, ok := aliases[field][v]; ok {
		return canonical
	}
	return v
}

// normalizeFramework reduces "v18", "18.0.0" or "17.0.2" to its major.
// Empty selects the newest supported major.
func normalizeFramework(v string) string {
	v = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(v)), "v")
	if v == "" {
		return FrameworkVersions[len(FrameworkVersions)-1]
	}
	if i := strings.IndexByte(v, '.'); i >= 0 {
		v = v[:i]
	}
	return v
}
