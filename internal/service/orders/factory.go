package orders

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byStatus map[string]actionFunc
}

func newActionFactory(onCreated, onCancelled, onPaid actionFunc) *actionFactory {
	return &actionFactory{
		byStatus: map[string]actionFunc{
			"created": onCreated,
			// storefront spells it both ways depending on the producer
			"cancelled": onCancelled,
			"canceled":  onCancelled,
			"deleted":   onCancelled,
			"paid":      onPaid,
		},
	}
}

func (f *actionFactory) get(status string) (actionFunc, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	fn, ok := f.byStatus[status]
	return fn, ok
}
