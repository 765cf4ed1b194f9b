// Command armature inspects and edits armature project files.
//
//	armature new walk.yaml --frames 8
//	armature info walk.yaml
//	armature keys walk.yaml --anim walk
//	armature pose walk.yaml --anim walk --frame 3
//	armature edit walk.yaml gestures.json --history
package main

import (
	"log"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("error during command execution: %v", err)
	}
}
