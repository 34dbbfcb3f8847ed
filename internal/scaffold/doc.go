// Package scaffold renders React project files from embedded templates and
// assembles them into a complete, internally consistent file tree.
//
// Templates live under templates/<area>/, mirroring the output layout of the
// project root. Files ending in .tmpl are executed with text/template against
// Data; every other file is copied verbatim. Each feature area (shell, styles,
// redux state, store, hooks) has one pure rendering function, and Assemble
// decides which areas a configuration needs.
package scaffold
