package pianoroll

import "go-pianoroll/document"

// SnapUnit is one grid step in ticks: a whole note split divisor ways
func SnapUnit(resolution, divisor int) int {
	if divisor <= 0 {
		divisor = 4
	}
	unit := resolution * 4 / divisor
	if unit < 1 {
		unit = 1
	}
	return unit
}

// SnapStep is the increment used by keyboard move and resize
func SnapStep(resolution, divisor int, snapOn bool) int {
	if !snapOn {
		return document.MinDuration
	}
	return SnapUnit(resolution, divisor)
}
