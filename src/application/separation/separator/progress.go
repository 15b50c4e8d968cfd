package separator

type Progress struct {
	Total   int
	Current int
}

func (p Progress) Done() bool {
	return p.Current >= p.Total
}

// Percent maps the progress onto [0, 100]. An empty input counts as complete.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 100
	}

	return 100 * float64(p.Current) / float64(p.Total)
}
