package ecs

import (
	"github.com/phanxgames/armature"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ChangeEventType is the Donburi event type for armature change notifications.
var ChangeEventType = events.NewEventType[armature.Change]()

type donburiNotifier struct {
	world donburi.World
	skip  bool
}

// NewDonburiNotifier creates a Notifier backed by a Donburi world. Changes are
// published to ChangeEventType and delivered on the next ProcessEvents.
//
// While a command has asked observers to skip events, everything but history
// updates is dropped; the skip toggles themselves are still published.
func NewDonburiNotifier(world donburi.World) armature.Notifier {
	return &donburiNotifier{world: world}
}

func (n *donburiNotifier) Notify(c armature.Change) {
	switch {
	case c.Type == armature.ChangeSkipEvents:
		n.skip = c.Skip
	case n.skip && c.Type != armature.ChangeHistory:
		return
	}
	ChangeEventType.Publish(n.world, c)
}

// Coalesce returns a subscriber that collects the types of the changes it
// receives into dirty, for systems that redraw once per tick whatever changed.
func Coalesce(dirty map[armature.ChangeType]bool) func(donburi.World, armature.Change) {
	return func(_ donburi.World, c armature.Change) {
		dirty[c.Type] = true
	}
}
