package ttlock

import "fmt"

// ErrVendorStatus defines a non-200 response from TTLock cloud.
type ErrVendorStatus struct {
	StatusCode int
}

// Error formats output.
func (e *ErrVendorStatus) Error() string {
	return fmt.Sprintf("vendor api returned status %d", e.StatusCode)
}
