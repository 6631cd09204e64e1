package plot

import "sync"

var (
	currentMu sync.Mutex
	current   *Figure
)

// Current returns the process-wide current figure, creating it on first use.
// Plots that are not given an explicit figure draw here.
func Current() *Figure {
	currentMu.Lock()
	defer currentMu.Unlock()
	if current == nil {
		current = NewFigure()
	}
	return current
}

// SetCurrent makes f the current figure
func SetCurrent(f *Figure) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = f
}

// Close discards the current figure. The next call to Current starts a new one.
func Close() {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = nil
}
