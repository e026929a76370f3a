package main

import (
	"context"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// promptAnswers asks for every scenario's measurements. Blank fields fall
// back to the demonstration values.
func promptAnswers(ctx context.Context) (answers, error) {
	var a answers

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("PALS_INT: Interactive Latency Test Results").
				Description("Wakeup-to-work latencies from pals_int, comma-separated (e.g. 5,12,8,15,20).\nLeave blank to use example data."),
			huh.NewInput().Title("BASELINE latencies").Value(&a.InteractiveBaseline).Validate(validateValues),
			huh.NewInput().Title("PALS latencies").Value(&a.InteractiveVariant).Validate(validateValues),
		),
		huh.NewGroup(
			huh.NewNote().
				Title("PALS_AGING: Starvation Prevention Test Results").
				Description("Finish times of the dominant and low-priority processes.\nLeave blank to use example data."),
			huh.NewInput().Title("BASELINE - Dominant process finish time").Value(&a.AgingBaselineDominant).Validate(validateScalar),
			huh.NewInput().Title("BASELINE - Average low-priority finish time").Value(&a.AgingBaselineLowPriority).Validate(validateScalar),
			huh.NewInput().Title("PALS - Dominant process finish time").Value(&a.AgingVariantDominant).Validate(validateScalar),
			huh.NewInput().Title("PALS - Average low-priority finish time").Value(&a.AgingVariantLowPriority).Validate(validateScalar),
		),
		huh.NewGroup(
			huh.NewNote().
				Title("PALS_CMP: I/O Latency Test Results").
				Description("Average wakeup latencies of the 3 I/O-bound processes, comma-separated.\nLeave blank to use example data."),
			huh.NewInput().Title("BASELINE I/O latencies (3 values)").Value(&a.IOBaseline).Validate(validateIOValues),
			huh.NewInput().Title("PALS I/O latencies (3 values)").Value(&a.IOVariant).Validate(validateIOValues),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return answers{}, err
	}
	return a, nil
}
