// Package notify provides Postable implementations: a one-shot Future for
// callers that wait on a single task, a bounded Channel shared by many tasks,
// and a Dispatcher that splits outcomes between success and error handlers.
package notify
