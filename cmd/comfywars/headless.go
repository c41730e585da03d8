package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/host"
	"github.com/vovakirdan/comfy-wars/internal/platform/headless"
)

var (
	flagFrames int
	flagScript string
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run frames without a terminal",
	Long: `Run the unit for a number of frames against the recording backend and
print a summary. Useful to check that a build loads and runs, and to
replay inputs.

The script is a list of steps separated by ';', one per frame:
  click X,Y   - point at tile (X,Y) and press the primary button
  right       - press the secondary button
  confirm     - press Enter
  cancel      - press Esc
  end         - end the turn
  wait N      - let N frames pass

Examples:
  comfywars headless --frames 60
  comfywars headless --script "click 2,7; click 4,7; wait 30; confirm"`,
	Args: cobra.NoArgs,
	RunE: runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&flagFrames, "frames", 60, "Frames to run after the script")
	headlessCmd.Flags().StringVar(&flagScript, "script", "", "Input script")
}

// step is one scripted frame input.
type step struct {
	buttons []core.Button
	point   *core.Pos
	wait    int
}

// parseScript turns a script into per-frame steps.
func parseScript(script string) ([]step, error) {
	var steps []step
	for _, raw := range strings.Split(script, ";") {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			continue
		}
		switch verb := fields[0]; verb {
		case "click":
			if len(fields) != 2 {
				return nil, fmt.Errorf("script: click needs X,Y: %q", raw)
			}
			x, y, ok := strings.Cut(fields[1], ",")
			if !ok {
				return nil, fmt.Errorf("script: bad position %q", fields[1])
			}
			px, errX := strconv.Atoi(x)
			py, errY := strconv.Atoi(y)
			if errX != nil || errY != nil {
				return nil, fmt.Errorf("script: bad position %q", fields[1])
			}
			p := core.P(px, py)
			steps = append(steps, step{buttons: []core.Button{core.MouseLeft}, point: &p})
		case "right":
			steps = append(steps, step{buttons: []core.Button{core.MouseRight}})
		case "confirm":
			steps = append(steps, step{buttons: []core.Button{core.ButtonConfirm}})
		case "cancel":
			steps = append(steps, step{buttons: []core.Button{core.ButtonCancel}})
		case "end":
			steps = append(steps, step{buttons: []core.Button{core.ButtonEndTurn}})
		case "wait":
			if len(fields) != 2 {
				return nil, fmt.Errorf("script: wait needs a frame count: %q", raw)
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 0 {
				return nil, fmt.Errorf("script: bad frame count %q", fields[1])
			}
			steps = append(steps, step{wait: n})
		default:
			return nil, fmt.Errorf("script: unknown step %q", verb)
		}
	}
	return steps, nil
}

// playScript runs the steps and then frames more frames.
func playScript(h *host.Host, ctx *headless.Context, steps []step, frames int) {
	frame := func() {
		if _, err := h.PollAndMaybeReload(); err != nil {
			fmt.Printf("frame %d: reload failed: %v\n", ctx.Frames(), err)
		}
		h.InvokeFrame(ctx)
		ctx.EndFrame()
	}

	for _, s := range steps {
		if s.point != nil {
			ctx.PointAt(*s.point)
		}
		if len(s.buttons) > 0 {
			ctx.Press(s.buttons...)
			frame()
		}
		for range s.wait {
			frame()
		}
	}
	for range frames {
		frame()
	}
}

func runHeadless(_ *cobra.Command, _ []string) error {
	logger, closer, err := newLogger(hostCfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	steps, err := parseScript(flagScript)
	if err != nil {
		return err
	}

	journal := openJournal(hostCfg, logger)
	if journal != nil {
		defer journal.Close()
	}

	h, err := newHost(hostCfg, logger, journal)
	if err != nil {
		return fmt.Errorf("cannot start unit: %w", err)
	}
	defer h.Close()

	ctx := headless.New(1 / float64(hostCfg.TickRate))
	playScript(h, ctx, steps, flagFrames)

	counts := make(map[headless.Kind]int)
	var texts []string
	for _, c := range ctx.Commands() {
		counts[c.Kind]++
		if c.Kind == headless.KindText {
			texts = append(texts, c.Text)
		}
	}

	fmt.Printf("Unit:    %s\n", h.Unit().Name())
	fmt.Printf("Frames:  %d\n", ctx.Frames())
	fmt.Printf("Reloads: %d\n", h.Reloads())
	fmt.Printf("Faults:  %d\n", h.Faults())
	if h.Faults() > 0 {
		fmt.Printf("Last:    %s\n", h.LastFault())
	}
	fmt.Printf("Last frame: %d rects, %d textures, %d texts\n",
		counts[headless.KindRect], counts[headless.KindTexture], counts[headless.KindText])
	for _, t := range texts {
		fmt.Printf("  %s\n", t)
	}
	return nil
}
