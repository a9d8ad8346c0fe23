package graph

import "strings"

// updateSpec collects the optional assignments of a partial update as a typed
// list, so the SET clause is assembled from known property/parameter pairs and
// values only ever travel as query parameters.
type updateSpec struct {
	assignments []string
	params      map[string]any
}

func newUpdateSpec() *updateSpec {
	return &updateSpec{params: make(map[string]any)}
}

// set registers prop := $param with the given value
func (s *updateSpec) set(prop, param string, value any) {
	s.assignments = append(s.assignments, prop+" = $"+param)
	s.params[param] = value
}

func (s *updateSpec) empty() bool {
	return len(s.assignments) == 0
}

// setClause renders "SET a, b, c". Callers must reject empty specs first;
// an empty SET is not valid Cypher.
func (s *updateSpec) setClause() string {
	return "SET " + strings.Join(s.assignments, ", ")
}

// predicateSpec collects optional search conditions, combined with AND.
type predicateSpec struct {
	conditions []string
	params     map[string]any
}

func newPredicateSpec() *predicateSpec {
	return &predicateSpec{params: make(map[string]any)}
}

// add registers a condition referencing $param with the given value
func (p *predicateSpec) add(condition, param string, value any) {
	p.conditions = append(p.conditions, condition)
	p.params[param] = value
}

func (p *predicateSpec) empty() bool {
	return len(p.conditions) == 0
}

// whereClause renders "WHERE a AND b". Callers must reject empty specs first;
// a WHERE with no conditions is not valid Cypher.
func (p *predicateSpec) whereClause() string {
	return "WHERE " + strings.Join(p.conditions, " AND ")
}
