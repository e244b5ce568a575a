package alert

import (
	"context"
	"errors"
)

// PriorityHigh is the priority hint sent with poller alerts.
const PriorityHigh = 2

// Alert is a transient system notification. A click on it carries only ID.
type Alert struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority int    `json:"priority"`
}

// Alerter shows alerts to the user.
type Alerter interface {
	Show(ctx context.Context, a Alert) error
}

// Func adapts a function to the Alerter interface.
type Func func(ctx context.Context, a Alert) error

// Show calls f.
func (f Func) Show(ctx context.Context, a Alert) error {
	return f(ctx, a)
}

// Multi delivers every alert to all of its sinks.
type Multi []Alerter

// Show delivers a to each sink and joins their errors.
func (m Multi) Show(ctx context.Context, a Alert) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Show(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every alert.
var Discard Alerter = Func(func(context.Context, Alert) error { return nil })
