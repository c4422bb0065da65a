package service

// StoreError wraps any failure of the persistent store. Transport, permission
// and constraint failures are not distinguished.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return "store " + e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }
