package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phanxgames/armature"
	"github.com/phanxgames/armature/animfile"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "armature",
		Short: "Inspect and edit skeletal animation projects.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				armature.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every command pushed, undone and redone")

	addNew(cmd)
	addInfo(cmd)
	addKeys(cmd)
	addPose(cmd)
	addEdit(cmd)
	return cmd
}

func addNew(topLevel *cobra.Command) {
	var name string
	cmd := &cobra.Command{
		Use:   "new FILE",
		Short: "Create a project with one empty animation.",
		Example: `
armature new walk.yaml --name walk --frames 8
ARMATURE_FPS=24 armature new run.yaml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			p := armature.NewProject()
			stack := armature.NewStack(p)
			add := armature.NewAddAnimation(name)
			stack.Push(add, true)
			anim := p.MustAnimation(add.AnimationID())
			stack.Push(armature.NewSetFrames(anim, cfg.Frames), true)
			stack.Push(armature.NewSetFrameRate(anim, cfg.FPS), true)
			stack.Push(armature.NewSetLoop(anim, cfg.Loop), true)
			if err := animfile.Save(p, args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created %s: %q, %d frames at %g fps\n",
				args[0], anim.Name(), anim.FrameCount(), anim.FrameRate())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "default", "name of the animation")
	bindConfigFlags(cmd)
	topLevel.AddCommand(cmd)
}

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info FILE",
		Short: "Print the part tree, controllers and animations of a project.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := animfile.Load(args[0])
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), p)
			return nil
		},
	}
	topLevel.AddCommand(cmd)
}

func addKeys(topLevel *cobra.Command) {
	var animName string
	cmd := &cobra.Command{
		Use:   "keys FILE",
		Short: "List the authored keys of an animation.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := animfile.Load(args[0])
			if err != nil {
				return err
			}
			anim, err := findAnimation(p, animName)
			if err != nil {
				return err
			}
			printKeys(cmd.OutOrStdout(), p, anim)
			return nil
		},
	}
	cmd.Flags().StringVarP(&animName, "anim", "a", "", "animation name (default first)")
	topLevel.AddCommand(cmd)
}

func addPose(topLevel *cobra.Command) {
	var (
		animName string
		frame    int
	)
	cmd := &cobra.Command{
		Use:   "pose FILE",
		Short: "Print the interpolated pose of every part at one frame.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := animfile.Load(args[0])
			if err != nil {
				return err
			}
			anim, err := findAnimation(p, animName)
			if err != nil {
				return err
			}
			printPose(cmd.OutOrStdout(), p, anim, frame)
			return nil
		},
	}
	cmd.Flags().StringVarP(&animName, "anim", "a", "", "animation name (default first)")
	cmd.Flags().IntVarP(&frame, "frame", "f", 0, "frame to pose")
	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	var (
		animName string
		output   string
		history  bool
	)
	cmd := &cobra.Command{
		Use:   "edit FILE SCRIPT",
		Short: "Replay a JSON edit script against a project and save the result.",
		Example: `
armature edit walk.yaml gestures.json -o walk2.yaml --history
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := animfile.Load(args[0])
			if err != nil {
				return err
			}
			if len(p.Animations()) > 0 {
				anim, err := findAnimation(p, animName)
				if err != nil {
					return err
				}
				p.SetCurrent(anim)
			}
			data, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read edit script: %w", err)
			}
			script, err := armature.LoadEditScript(data)
			if err != nil {
				return err
			}
			stack := armature.NewStack(p)
			if err := script.Run(stack); err != nil {
				return err
			}
			if history {
				_, _ = fmt.Fprint(cmd.OutOrStdout(), stack.Dump())
			}
			if output == "" {
				output = args[0]
			}
			return animfile.Save(p, output)
		},
	}
	cmd.Flags().StringVarP(&animName, "anim", "a", "", "animation made current before the script runs (default first)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to save to (default FILE)")
	cmd.Flags().BoolVar(&history, "history", false, "print the undo history after the script")
	topLevel.AddCommand(cmd)
}

// findAnimation returns the animation called name, or the first one when name
// is empty.
func findAnimation(p *armature.Project, name string) (*armature.Animation, error) {
	anims := p.Animations()
	if len(anims) == 0 {
		return nil, fmt.Errorf("project has no animations")
	}
	if name == "" {
		return anims[0], nil
	}
	for _, a := range anims {
		if a.Name() == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("no animation named %q", name)
}
