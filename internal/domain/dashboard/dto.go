package dashboard

// Snapshot partitions every employee with an obligation on the requested
// date. The buckets follow the same precedence as status derivation, so the
// dashboard and the reports can never disagree about one employee's day.
type Snapshot struct {
	Date           string       `json:"date"`
	Arrived        []EntryState `json:"arrived"`
	Departed       []EntryState `json:"departed"`
	OnLeave        []LeaveState `json:"on_leave"`
	Absent         []EntryState `json:"absent"`
	NotYetArrived  []EntryState `json:"not_yet_arrived"`
	TotalObligated int          `json:"total_obligated"`
}

type EntryState struct {
	EmployeeID int64  `json:"employee_id"`
	FullName   string `json:"full_name"`
	Status     string `json:"status"`
}

type LeaveState struct {
	EmployeeID int64  `json:"employee_id"`
	FullName   string `json:"full_name"`
	LeaveType  string `json:"leave_type"`
}
