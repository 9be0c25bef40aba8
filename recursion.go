package avroplan

// RecursionAnalyzer marks which schema nodes lie on a cyclic path,
// computed once per top-level schema and consulted by the plan builders
// to decide whether a record plan needs indirection through a named
// binding to terminate the build. Identity (pointer) equality is used
// throughout, matching the schema model's recursion-detection invariant.
type RecursionAnalyzer struct {
	recursive map[Schema]bool
}

// AnalyzeRecursion walks root depth-first, maintaining a "currently on the
// path" stack, and returns the resulting recursive/non-recursive marking
// for every Record, Union, Array, and Map node reached. Primitive nodes
// are never recursive and are not present in the result.
func AnalyzeRecursion(root Schema) *RecursionAnalyzer {
	a := &RecursionAnalyzer{recursive: make(map[Schema]bool)}
	var stack []Schema
	onStack := make(map[Schema]int) // schema -> index in stack

	var visit func(s Schema)
	visit = func(s Schema) {
		if s == nil {
			return
		}
		if idx, ok := onStack[s]; ok {
			// Found a cycle: every node from the matching occurrence to
			// the current top of the stack is on a cycle.
			for _, n := range stack[idx:] {
				a.recursive[n] = true
			}
			return
		}
		if _, done := a.recursive[s]; done {
			return // already fully analyzed via another path
		}

		switch node := s.(type) {
		case *RecordSchema, *UnionSchema, *ArraySchema, *MapSchema:
			onStack[s] = len(stack)
			stack = append(stack, s)

			switch n := node.(type) {
			case *RecordSchema:
				for _, f := range n.Fields {
					visit(f.Type)
				}
			case *UnionSchema:
				for _, b := range n.Branches {
					visit(b)
				}
			case *ArraySchema:
				visit(n.Items)
			case *MapSchema:
				visit(n.Values)
			}

			stack = stack[:len(stack)-1]
			delete(onStack, s)

			if _, marked := a.recursive[s]; !marked {
				a.recursive[s] = false
			}
		}
	}

	visit(root)
	return a
}

// IsRecursive reports whether s was marked as lying on a cycle. Schemas
// never visited (or not one of Record/Union/Array/Map) report false.
func (a *RecursionAnalyzer) IsRecursive(s Schema) bool {
	return a.recursive[s]
}
