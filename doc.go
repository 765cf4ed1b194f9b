// Package armature is the editing core of a skeletal 2D sprite animation tool.
//
// A project is a hierarchy of rigid image parts. Each [Animation] stores a
// sparse keyframe [Track] per part and reconstructs a continuous pose for any
// frame with [Animation.FrameData]. Every mutation made by an editor goes
// through a [Stack] of reversible [Command] values so it can be undone.
//
// # Keyframes
//
// A [Keyframe] defines any subset of three channels: angle, offset and
// visibility. Channels are resolved independently, so a key that only sets the
// angle does not pin the offset:
//
//	anim := armature.NewAnimation("walk")
//	anim.SetFrameCount(8)
//	anim.SetKeyframe(0, leg, armature.Keyframe{Mode: armature.ModeAngle, Angle: 0})
//	anim.SetKeyframe(4, leg, armature.Keyframe{Mode: armature.ModeAngle, Angle: 90})
//	anim.FrameData(2, leg).Angle // 45
//
// Angles interpolate along the shorter arc. Looping animations wrap the last
// key back onto the first.
//
// # Commands
//
// Editors push commands instead of writing to an animation directly:
//
//	stack := armature.NewStack(project)
//	stack.Push(armature.NewChangeAngle(anim, leg, frame, old, value), true)
//	stack.Undo()
//
// Successive commands of the same kind on the same target merge into one undo
// step (a drag-to-rotate gesture is one step, not hundreds). [Stack.BreakChain]
// stops the next push from merging. [Stack.Begin] and [Stack.End] bundle several
// commands into one atomic [Group].
//
// Canvas gestures such as [RotatePart], [MovePart] and [SetPivot] build the
// right commands, auto-keying the frame when asked to.
//
// Change notifications are delivered to a [Notifier]. The armature/ecs sub-package
// queues them on a [Donburi] world.
//
// # Playback
//
// A [Player] moves a playhead across an animation at its frame rate. Rendered
// frames can be kept per animation with [Animation.CacheFrame]; every edit that
// changes the picture drops the cache.
//
// # Files and scripts
//
// The armature/animfile sub-package reads and writes projects as YAML. An
// [EditScript] replays a JSON list of gestures and history actions through a
// stack, which is how editing sessions are tested end to end.
//
// [Donburi]: https://github.com/yohamta/donburi
package armature
