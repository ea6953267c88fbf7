// Package battery defines the battery capability and its fixed-value fake.
package battery

// Status is the charging state.
type Status int

const (
	Discharging Status = iota
	Charging
	Charged
)

func (s Status) String() string {
	switch s {
	case Charging:
		return "charging"
	case Charged:
		return "charged"
	default:
		return "discharging"
	}
}

// Battery reports the charge level.
type Battery interface {
	Capacity() (float64, error)
	Status() (Status, error)
}

// Fake reports a fixed capacity.
type Fake struct {
	capacity float64
	status   Status
}

// NewFake returns a discharging battery at 50%.
func NewFake() *Fake {
	return &Fake{capacity: 50, status: Discharging}
}

func (f *Fake) Capacity() (float64, error) {
	return f.capacity, nil
}

func (f *Fake) Status() (Status, error) {
	return f.status, nil
}
