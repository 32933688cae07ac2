package dto

// IncidentFilter narrows incident listings. A nil Resolved means no filtering.
type IncidentFilter struct {
	Resolved *bool
}

// ResolvedFilter builds a filter matching incidents with the given resolved flag.
func ResolvedFilter(resolved bool) IncidentFilter {
	return IncidentFilter{Resolved: &resolved}
}

// Matches reports whether an incident with the given flag passes the filter.
func (f IncidentFilter) Matches(resolved bool) bool {
	return f.Resolved == nil || *f.Resolved == resolved
}
