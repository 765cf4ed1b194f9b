// Package animfile reads and writes armature projects as YAML documents.
//
// A file holds the part tree with its rest data, the IK controllers and every
// animation with its authored keys. Only channels a key defines are written,
// so a loaded key has exactly the mode it was saved with:
//
//	version: "1"
//	parts:
//	  - id: 1
//	    name: body
//	    file: body.png
//	    rest: {x: 0, y: 0}
//	    children:
//	      - id: 2
//	        name: leg
//	animations:
//	  - name: walk
//	    length: 8
//	    fps: 15
//	    loop: true
//	    parts:
//	      - id: 2
//	        frames:
//	          - {number: 0, angle: 0}
//	          - {number: 4, angle: 90, hidden: false}
package animfile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/phanxgames/armature"

	"gopkg.in/yaml.v3"
)

// Version is written into every file.
const Version = "1"

// File is the document root.
type File struct {
	Version     string       `yaml:"version"`
	Parts       []Part       `yaml:"parts,omitempty"`
	Controllers []Controller `yaml:"controllers,omitempty"`
	Animations  []Animation  `yaml:"animations,omitempty"`
}

// Point is a 2D vector.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Part is one node of the part tree.
type Part struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	File     string `yaml:"file,omitempty"`
	Null     bool   `yaml:"null,omitempty"`
	Pivot    Point  `yaml:"pivot,flow"`
	Rest     Point  `yaml:"rest,flow"`
	Z        int    `yaml:"z,omitempty"`
	Hidden   bool   `yaml:"hidden,omitempty"`
	Children []Part `yaml:"children,omitempty"`
}

// Controller is a two-bone IK chain.
type Controller struct {
	ID    int `yaml:"id"`
	PartA int `yaml:"a"`
	PartB int `yaml:"b,omitempty"`
	Head  int `yaml:"head"`
	Goal  int `yaml:"goal"`
}

// Animation holds the timeline settings and keys of one animation.
type Animation struct {
	Name        string       `yaml:"name"`
	Length      int          `yaml:"length"`
	FPS         float64      `yaml:"fps"`
	Loop        bool         `yaml:"loop"`
	Controllers map[int]bool `yaml:"controllers,omitempty"`
	Parts       []Track      `yaml:"parts,omitempty"`
}

// Track is the keys of one part.
type Track struct {
	ID     int     `yaml:"id"`
	Frames []Frame `yaml:"frames,flow"`
}

// Frame is one key. A nil channel is not defined by the key.
type Frame struct {
	Number int      `yaml:"number"`
	Angle  *float64 `yaml:"angle,omitempty"`
	Offset *Point   `yaml:"offset,omitempty,flow"`
	Hidden *bool    `yaml:"hidden,omitempty"`
}

// --- Encode ---

// Encode converts a project into a File. base is the directory part sources
// are made relative to; pass "" to keep them as they are.
func Encode(p *armature.Project, base string) *File {
	f := &File{Version: Version}
	for _, c := range p.Root().Children() {
		f.Parts = append(f.Parts, encodePart(c, base))
	}
	for _, c := range p.Controllers() {
		f.Controllers = append(f.Controllers, Controller{ID: c.ID, PartA: c.PartA, PartB: c.PartB, Head: c.Head, Goal: c.Goal})
	}
	for _, anim := range p.Animations() {
		f.Animations = append(f.Animations, encodeAnimation(p, anim))
	}
	return f
}

func encodePart(part *armature.Part, base string) Part {
	out := Part{
		ID:     part.ID,
		Name:   part.Name,
		File:   part.Source,
		Null:   part.Null,
		Pivot:  Point{part.Pivot.X, part.Pivot.Y},
		Rest:   Point{part.Rest.X, part.Rest.Y},
		Z:      part.Z,
		Hidden: part.Hidden,
	}
	if base != "" && out.File != "" && filepath.IsAbs(out.File) {
		if rel, err := filepath.Rel(base, out.File); err == nil {
			out.File = filepath.ToSlash(rel)
		}
	}
	for _, c := range part.Children() {
		out.Children = append(out.Children, encodePart(c, base))
	}
	return out
}

// encodeAnimation walks frameCount x parts and emits the authored keys of every
// part that is still in the project. Keys beyond the frame count are dropped.
func encodeAnimation(p *armature.Project, anim *armature.Animation) Animation {
	out := Animation{
		Name:   anim.Name(),
		Length: anim.FrameCount(),
		FPS:    anim.FrameRate(),
		Loop:   anim.Loop(),
	}
	for _, c := range p.Controllers() {
		if anim.ControllerState(c.ID) {
			if out.Controllers == nil {
				out.Controllers = make(map[int]bool)
			}
			out.Controllers[c.ID] = true
		}
	}
	for _, part := range p.Parts() {
		var frames []Frame
		for i := 0; i < anim.FrameCount(); i++ {
			if anim.IsKeyframe(i, part) == armature.ModeNone {
				continue
			}
			frames = append(frames, encodeFrame(anim.FrameData(i, part)))
		}
		if len(frames) > 0 {
			out.Parts = append(out.Parts, Track{ID: part.ID, Frames: frames})
		}
	}
	return out
}

func encodeFrame(k armature.Keyframe) Frame {
	out := Frame{Number: k.Frame}
	if k.Mode&armature.ModeAngle != 0 {
		angle := k.Angle
		out.Angle = &angle
	}
	if k.Mode&armature.ModeOffset != 0 {
		out.Offset = &Point{k.Offset.X, k.Offset.Y}
	}
	if k.Mode&armature.ModeVisible != 0 {
		hidden := !k.Visible
		out.Hidden = &hidden
	}
	return out
}

// --- Decode ---

// Decode builds a project from f. Relative part sources are resolved against
// base. Keys of unknown parts are skipped; a frame count below 1 becomes 1 and
// a non-positive rate becomes the default.
func Decode(f *File, base string) (*armature.Project, error) {
	p := armature.NewProject()
	for _, node := range f.Parts {
		if err := decodePart(p, node, nil, base); err != nil {
			return nil, err
		}
	}
	for _, c := range f.Controllers {
		p.SetController(armature.Controller{ID: c.ID, PartA: c.PartA, PartB: c.PartB, Head: c.Head, Goal: c.Goal})
	}
	for _, a := range f.Animations {
		anim := armature.NewAnimation(a.Name)
		anim.SetFrameCount(max(a.Length, 1))
		if a.FPS > 0 {
			anim.SetFrameRate(a.FPS)
		}
		anim.SetLoop(a.Loop)
		for id, on := range a.Controllers {
			anim.SetControllerState(id, on)
		}
		for _, t := range a.Parts {
			part := p.Part(t.ID)
			if part == nil || part == p.Root() {
				armature.Logger().Warn("skipping keys of unknown part", "animation", a.Name, "part", t.ID)
				continue
			}
			for _, fr := range t.Frames {
				anim.SetKeyframe(fr.Number, part, decodeFrame(fr))
			}
		}
		p.AddAnimation(anim, 0)
	}
	return p, nil
}

func decodePart(p *armature.Project, node Part, parent *armature.Part, base string) error {
	if node.ID <= 0 {
		return fmt.Errorf("decode part %q: invalid id %d", node.Name, node.ID)
	}
	if p.Part(node.ID) != nil {
		return fmt.Errorf("decode part %q: duplicate id %d", node.Name, node.ID)
	}
	part := p.NewPart(node.Name, node.ID)
	part.Source = node.File
	if base != "" && part.Source != "" && !filepath.IsAbs(part.Source) {
		part.Source = filepath.Join(base, filepath.FromSlash(part.Source))
	}
	part.Null = node.Null
	part.Pivot = armature.Vec2{X: node.Pivot.X, Y: node.Pivot.Y}
	part.Rest = armature.Vec2{X: node.Rest.X, Y: node.Rest.Y}
	part.Z = node.Z
	part.Hidden = node.Hidden
	p.AddPart(part, parent)
	for _, c := range node.Children {
		if err := decodePart(p, c, part, base); err != nil {
			return err
		}
	}
	return nil
}

func decodeFrame(fr Frame) armature.Keyframe {
	k := armature.Keyframe{Frame: fr.Number, Visible: true}
	if fr.Angle != nil {
		k.Mode |= armature.ModeAngle
		k.Angle = *fr.Angle
	}
	if fr.Offset != nil {
		k.Mode |= armature.ModeOffset
		k.Offset = armature.Vec2{X: fr.Offset.X, Y: fr.Offset.Y}
	}
	if fr.Hidden != nil {
		k.Mode |= armature.ModeVisible
		k.Visible = !*fr.Hidden
	}
	return k
}

// --- I/O ---

// Marshal encodes a project as YAML.
func Marshal(p *armature.Project) ([]byte, error) {
	data, err := yaml.Marshal(Encode(p, ""))
	if err != nil {
		return nil, fmt.Errorf("marshal project: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a project from YAML.
func Unmarshal(data []byte) (*armature.Project, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal project: %w", err)
	}
	return Decode(&f, "")
}

// Save writes a project to a YAML file. Part sources are stored relative to
// the file's directory.
func Save(p *armature.Project, path string) error {
	data, err := yaml.Marshal(Encode(p, filepath.Dir(path)))
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Load reads a project from a YAML file.
func Load(path string) (*armature.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	p, err := Decode(&f, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return p, nil
}
