package entity

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusDone     Status = "done"
	StatusCanceled Status = "canceled"
)

var validStatuses = map[Status]bool{
	StatusPending:  true,
	StatusPaid:     true,
	StatusDone:     true,
	StatusCanceled: true,
}

// NormalizeStatus coerces unrecognized values to pending.
func NormalizeStatus(s string) Status {
	if validStatuses[Status(s)] {
		return Status(s)
	}
	return StatusPending
}
