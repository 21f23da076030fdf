package attendance

// DuplicateGroup holds records that share one (employee, date) slot.
type DuplicateGroup struct {
	Key     Key
	Records []Attendance
}

// FindDuplicates returns every slot occupied by more than one record,
// ordered by the first record's position in records.
func FindDuplicates(records []Attendance) []DuplicateGroup {
	index := make(map[Key]int)
	var groups []DuplicateGroup

	for _, rec := range records {
		key := rec.Key()
		if i, ok := index[key]; ok {
			groups[i].Records = append(groups[i].Records, rec)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, DuplicateGroup{Key: key, Records: []Attendance{rec}})
	}

	result := make([]DuplicateGroup, 0)
	for _, g := range groups {
		if len(g.Records) > 1 {
			result = append(result, g)
		}
	}
	return result
}
