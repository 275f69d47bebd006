package workload

import (
	"io"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteReport prints one line per result in the classic
// "Workload X Average: N us" shape, with grouped digits.
func WriteReport(w io.Writer, results []Result) error {
	p := message.NewPrinter(language.English)
	for _, r := range results {
		_, err := p.Fprintf(w, "Workload %s Average: %.2f us (min %.2f, max %.2f, %d runs, %d allocs, %d frees)\n",
			r.Name, micros(r.Average()), micros(r.Min), micros(r.Max),
			r.Iterations, r.Stats.AllocCalls, r.Stats.FreeCalls)
		if err != nil {
			return err
		}
	}
	return nil
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}
