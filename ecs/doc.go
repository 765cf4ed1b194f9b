// Package ecs provides ECS adapters for armature's change notifications.
//
// The primary adapter is [NewDonburiNotifier], which queues the changes an
// armature command stack emits (table, frame, part and history updates) into a
// [Donburi] world as typed events. Subscribe to [ChangeEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	stack.SetNotifier(ecs.NewDonburiNotifier(world))
//	ecs.ChangeEventType.Subscribe(world, redrawSystem)
//	// once per tick:
//	ecs.ChangeEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
