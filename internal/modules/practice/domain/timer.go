package domain

import (
	"fmt"
	"strings"
	"time"
)

type Position struct {
	Index        int
	Phase        Phase
	PhaseElapsed time.Duration
	Progress     float64
	Complete     bool
}

// PhaseAt locates elapsed within m. A value that lands exactly on a phase
// boundary still belongs to the earlier phase. Past the end it reports the
// last phase as complete.
func PhaseAt(m Meditation, elapsed time.Duration) Position {
	if len(m.Phases) == 0 {
		return Position{Complete: true, Progress: 1}
	}
	if elapsed < 0 {
		elapsed = 0
	}
	var acc time.Duration
	for i, p := range m.Phases {
		acc += p.Duration()
		if elapsed <= acc {
			phaseElapsed := elapsed - (acc - p.Duration())
			return Position{
				Index:        i,
				Phase:        p,
				PhaseElapsed: phaseElapsed,
				Progress:     clamp(float64(phaseElapsed) / float64(p.Duration())),
			}
		}
	}
	last := m.Phases[len(m.Phases)-1]
	return Position{
		Index:        len(m.Phases) - 1,
		Phase:        last,
		PhaseElapsed: last.Duration(),
		Progress:     1,
		Complete:     true,
	}
}

// GuidanceIndex splits the phase evenly across its guidance lines.
func GuidanceIndex(p Phase, phaseElapsed time.Duration) int {
	if len(p.Guidance) == 0 || p.Seconds <= 0 {
		return 0
	}
	interval := p.Duration().Seconds() / float64(len(p.Guidance))
	idx := int(phaseElapsed.Seconds() / interval)
	if idx < 0 {
		return 0
	}
	if idx > len(p.Guidance)-1 {
		return len(p.Guidance) - 1
	}
	return idx
}

func GuidanceAt(p Phase, phaseElapsed time.Duration) string {
	if len(p.Guidance) == 0 {
		return ""
	}
	return p.Guidance[GuidanceIndex(p, phaseElapsed)]
}

// Progress reports overall completion of m at elapsed in [0,1].
func Progress(m Meditation, elapsed time.Duration) float64 {
	if m.Seconds <= 0 {
		return 1
	}
	return clamp(float64(elapsed) / float64(m.Duration()))
}

// FormatClock renders d as m:ss.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// Script renders m as a markdown document listing every phase and its
// guidance.
func Script(m Meditation) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# %s\n\n_%s_ (%s)\n\n", m.Title, m.Description, FormatClock(m.Duration()))
	var start time.Duration
	for i, p := range m.Phases {
		fmt.Fprintf(&b, "## %d. %s\n\n`%s - %s`\n\n", i+1, p.Title, FormatClock(start), FormatClock(start+p.Duration()))
		for _, line := range p.Guidance {
			fmt.Fprintf(&b, "- %s\n", line)
		}
		b.WriteString("\n")
		start += p.Duration()
	}
	return b.String()
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
