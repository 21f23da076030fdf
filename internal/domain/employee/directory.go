package employee

// Directory resolves employee ids to display names for attendance search.
type Directory map[int64]Employee

func NewDirectory(employees []Employee) Directory {
	dir := make(Directory, len(employees))
	for _, emp := range employees {
		dir[emp.ID] = emp
	}
	return dir
}

func (d Directory) NameOf(employeeID int64) (string, bool) {
	emp, ok := d[employeeID]
	if !ok {
		return "", false
	}
	return emp.Name, true
}

// ActiveIDs returns the ids of active employees in the order of employees.
func ActiveIDs(employees []Employee) []int64 {
	ids := make([]int64, 0, len(employees))
	for _, emp := range employees {
		if emp.IsActive() {
			ids = append(ids, emp.ID)
		}
	}
	return ids
}
