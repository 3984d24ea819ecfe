package evaluation

// Policy tunes the aggregation seam. The band outcome itself is
// unweighted worst-band-wins; weights are carried for explanation only.
type Policy struct {
	// CriticalEscalationCount is how many metrics must sit in the
	// critical band before the overall state becomes critical. Below
	// the count a lone critical metric is treated as warning.
	CriticalEscalationCount int

	// ExitAfterConsecutiveCritical forces the terminal exit state after
	// this many consecutive critical evaluation periods.
	ExitAfterConsecutiveCritical int
}

func DefaultPolicy() Policy {
	return Policy{
		CriticalEscalationCount:      2,
		ExitAfterConsecutiveCritical: 2,
	}
}

func (p Policy) normalized() Policy {
	if p.CriticalEscalationCount < 1 {
		p.CriticalEscalationCount = 1
	}
	if p.ExitAfterConsecutiveCritical < 1 {
		p.ExitAfterConsecutiveCritical = 1
	}
	return p
}
