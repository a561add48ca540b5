package db

// Statement pairs immutable query text with a rebindable ordered parameter
// list. Obtain one from [DB.Statement], bind values with [Statement.Bind] and
// invoke one of the execution strategies, or hand several Statements to
// [DB.Batch].
type Statement struct {
	text string
	args []any
	sess *session
}

// Bind replaces the statement's bound parameters wholesale and returns the
// same statement for chaining. Binding is never additive: re-execution after
// a new Bind sees only the new values.
func (s *Statement) Bind(args ...any) *Statement {
	s.args = args
	return s
}

// Text returns the statement's query text as written by the caller, before
// any backend placeholder translation.
func (s *Statement) Text() string {
	return s.text
}

// One executes the statement and returns its first row. The second return is
// false when the query matched nothing or when execution failed; execution
// errors are logged here and never surface to the caller.
func (s *Statement) One() (Row, bool) {
	rows, err := s.sess.queryRows(s.text, s.args)
	if err != nil {
		s.sess.logger.Error("single-row query failed", "query", s.text, "error", err)
		return nil, false
	}
	if len(rows) == 0 {
		return nil, false
	}
	return rows[0], true
}

// OneValue executes the statement and returns the named column of its first
// row, with the same not-found semantics as [Statement.One]. A column the
// result does not contain reads as not found.
func (s *Statement) OneValue(column string) (any, bool) {
	row, ok := s.One()
	if !ok {
		return nil, false
	}
	value, ok := row[column]
	return value, ok
}

// All executes the statement and returns every matching row. Rows is never
// nil: zero matches and execution failures both yield an empty slice, with
// Success distinguishing the two.
func (s *Statement) All() Result {
	rows, err := s.sess.queryRows(s.text, s.args)
	if err != nil {
		s.sess.logger.Error("multi-row query failed", "query", s.text, "error", err)
		return failure(err)
	}
	return Result{Success: true, Rows: rows, LastInsertID: UnknownInsertID}
}

// Write executes the statement and reports rows changed plus the last insert
// id where the backend surfaces one ([UnknownInsertID] otherwise). Execution
// failures are logged and returned as a failure Result, never as an error.
func (s *Statement) Write() Result {
	changed, lastID, err := s.sess.execOnce(s.text, s.args)
	if err != nil {
		s.sess.logger.Error("write failed", "query", s.text, "error", err)
		return failure(err)
	}
	return Result{Success: true, Changed: changed, LastInsertID: lastID}
}

// Exec is the generic execution strategy. It shares Write's result shape and
// exists for contract symmetry with backends whose write and generic-query
// operations differ.
func (s *Statement) Exec() Result {
	return s.Write()
}
