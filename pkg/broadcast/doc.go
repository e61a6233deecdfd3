// Package broadcast fans values out to many subscribers without ever blocking
// the publisher.
//
// Every subscriber holds at most one pending value. Publishing to a
// subscriber that has not consumed the previous value replaces it, so slow
// readers see the latest value instead of a backlog. This fits state
// snapshots such as the plan catalog, where only the newest one matters.
//
//	b := broadcast.New[catalog.State]()
//	defer b.Close()
//
//	ch, cancel := b.Subscribe(ctx)
//	defer cancel()
//	for st := range ch {
//		render(st)
//	}
package broadcast
