// Package broadcast publishes state snapshots to in-process subscribers.
//
// Fields and forms use it to tell the rendering layer that their state
// changed, so the layer can redraw the error indicator or validity flag.
//
//	b := broadcast.New[field.State](8)
//	defer b.Close()
//
//	updates := b.Subscribe(ctx)
//	b.Publish(field.State{ErrorMessage: "Required", Dirty: true})
//
//	for st := range updates {
//		redraw(st)
//	}
//
// Slow subscribers lose updates instead of blocking the publisher.
package broadcast
