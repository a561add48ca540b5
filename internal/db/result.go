package db

// Row is a single result row keyed by column name.
type Row map[string]any

// UnknownInsertID is reported when the backend does not surface an
// auto-generated id for the executed statement. The network backend always
// reports it; callers that need generated ids should generate them
// client-side or fetch them with an explicit RETURNING statement.
const UnknownInsertID int64 = -1

// Result is the uniform execution outcome shared by both backends.
//
// Success=false implies Rows is empty and Error is set; Success=true implies
// Error is empty. Rows is only populated by the multi-row strategy.
type Result struct {
	Success      bool   `json:"success"`
	Rows         []Row  `json:"rows,omitempty"`
	Changed      int64  `json:"changed,omitempty"`
	LastInsertID int64  `json:"last_insert_id,omitempty"`
	Error        string `json:"error,omitempty"`
}

// failure converts an execution error into the uniform failure shape.
func failure(err error) Result {
	return Result{
		Success:      false,
		Rows:         []Row{},
		LastInsertID: UnknownInsertID,
		Error:        err.Error(),
	}
}
