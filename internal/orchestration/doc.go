// Package orchestration runs evaluations concurrently, optionally re-checks
// them at a higher iteration count, and summarises the outcome. Presentation
// is reached only through the ProgressReporter and ResultPresenter interfaces.
package orchestration
