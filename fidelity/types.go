package fidelity

// Default gate durations (nanoseconds) and crosstalk parameters, from
// typical superconducting-qubit figures.
const (
	DefaultGateTime1Q  = 35.0
	DefaultGateTime2Q  = 300.0
	DefaultMeasureTime = 1000.0

	// DefaultCrosstalkWeight scales every per-edge crosstalk penalty.
	DefaultCrosstalkWeight = 0.01

	// DefaultCrosstalkWindow is how many sequence positions apart two
	// two-qubit gates may sit and still interact.
	DefaultCrosstalkWindow = 2

	// routedPenaltyFloor is the minimum depolarizing error charged to a
	// two-qubit gate whose operands are not coupled on the profile.
	routedPenaltyFloor = 0.15

	// routedPenaltyFactor multiplies the model's two-qubit error for the
	// same case.
	routedPenaltyFactor = 3.0
)

// Config carries the gate-duration table and crosstalk parameters. The
// zero value is not useful; start from DefaultConfig.
type Config struct {
	// GateTime1Q, GateTime2Q, MeasureTime are durations in nanoseconds.
	GateTime1Q  float64
	GateTime2Q  float64
	MeasureTime float64

	// CrosstalkWeight scales per-edge crosstalk penalties. Zero disables
	// the crosstalk factor entirely.
	CrosstalkWeight float64

	// CrosstalkWindow bounds the scheduling distance (in sequence
	// positions) within which two two-qubit gates interact.
	CrosstalkWindow int
}

// DefaultConfig returns the standard duration table and crosstalk
// parameters.
func DefaultConfig() Config {
	return Config{
		GateTime1Q:      DefaultGateTime1Q,
		GateTime2Q:      DefaultGateTime2Q,
		MeasureTime:     DefaultMeasureTime,
		CrosstalkWeight: DefaultCrosstalkWeight,
		CrosstalkWindow: DefaultCrosstalkWindow,
	}
}

// Span is one gate occupancy interval on a qubit, in nanoseconds.
type Span struct {
	Start, End float64
}

// QubitSchedule describes one qubit's timeline across the circuit.
type QubitSchedule struct {
	// Spans are the gate occupancy intervals, in sequence order.
	Spans []Span
	// ActiveTime is the summed gate time on this qubit (ns).
	ActiveTime float64
	// IdleTime is the summed waiting time between 0 and EndTime (ns).
	IdleTime float64
	// EndTime is when the qubit finishes its last gate (ns).
	EndTime float64
}
