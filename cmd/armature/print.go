package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/phanxgames/armature"
)

func title(w io.Writer, s string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = fmt.Fprintln(w, t.Sprint(s))
}

func printInfo(w io.Writer, p *armature.Project) {
	faint := color.New(color.Faint)

	title(w, "Parts")
	if p.NumParts() == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint(" none"))
	}
	var walk func(part *armature.Part, depth int)
	walk = func(part *armature.Part, depth int) {
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), part.Name, faint.Sprintf("#%d", part.ID))
		if part.Hidden {
			line += faint.Sprint(" hidden")
		}
		_, _ = fmt.Fprintln(w, line)
		for _, c := range part.Children() {
			walk(c, depth+1)
		}
	}
	for _, c := range p.Root().Children() {
		walk(c, 1)
	}
	_, _ = fmt.Fprintln(w)

	if len(p.Controllers()) > 0 {
		title(w, "Controllers")
		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.AddRow("ID", "A", "B", "HEAD", "GOAL")
		for _, c := range p.Controllers() {
			tbl.AddRow(c.ID, c.PartA, c.PartB, c.Head, c.Goal)
		}
		_, _ = fmt.Fprintln(w, tbl)
		_, _ = fmt.Fprintln(w)
	}

	title(w, "Animations")
	if len(p.Animations()) == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint(" none"))
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("NAME", "FRAMES", "FPS", "LOOP", "KEYS")
	for _, a := range p.Animations() {
		tbl.AddRow(a.Name(), a.FrameCount(), a.FrameRate(), a.Loop(), len(a.Keys()))
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printKeys(w io.Writer, p *armature.Project, anim *armature.Animation) {
	title(w, fmt.Sprintf("%s - %d frames", anim.Name(), anim.FrameCount()))

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("PART", "FRAME", "MODE", "ANGLE", "OFFSET", "VISIBLE")
	for _, pk := range anim.Keys() {
		name := fmt.Sprintf("#%d", pk.Part)
		if part := p.Part(pk.Part); part != nil {
			name = part.Name
		}
		k := pk.Key
		tbl.AddRow(name, k.Frame, modeString(k.Mode),
			channel(k.Mode, armature.ModeAngle, fmt.Sprintf("%.2f", k.Angle)),
			channel(k.Mode, armature.ModeOffset, fmt.Sprintf("%.2f,%.2f", k.Offset.X, k.Offset.Y)),
			channel(k.Mode, armature.ModeVisible, fmt.Sprint(k.Visible)))
	}
	tbl.RightAlign(1)
	_, _ = fmt.Fprintln(w, tbl)
}

func printPose(w io.Writer, p *armature.Project, anim *armature.Animation, frame int) {
	title(w, fmt.Sprintf("%s @ %d", anim.Name(), frame))

	pose := p.Pose(anim, frame)
	key := color.New(color.FgHiYellow)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("PART", "KEY", "ANGLE", "X", "Y", "VISIBLE")
	for _, part := range p.Parts() {
		pp := pose[part.ID]
		mark := ""
		if pp.Local.Mode != armature.ModeNone {
			mark = key.Sprint(modeString(pp.Local.Mode))
		}
		tbl.AddRow(part.Name, mark,
			fmt.Sprintf("%.2f", pp.Angle),
			fmt.Sprintf("%.2f", pp.Position.X),
			fmt.Sprintf("%.2f", pp.Position.Y),
			pp.Visible)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

// modeString renders a key mode as "AOV" with dashes for unset channels.
func modeString(m armature.Mode) string {
	b := []byte("---")
	if m&armature.ModeAngle != 0 {
		b[0] = 'A'
	}
	if m&armature.ModeOffset != 0 {
		b[1] = 'O'
	}
	if m&armature.ModeVisible != 0 {
		b[2] = 'V'
	}
	return string(b)
}

func channel(m, bit armature.Mode, s string) string {
	if m&bit == 0 {
		return ""
	}
	return s
}
