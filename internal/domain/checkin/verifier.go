package checkin

import "context"

// FaceVerifier is the opaque face-matching capability. Implementations run
// the comparison elsewhere (worker pool, external service); the core only
// consumes the verdict and never depends on how it was produced.
type FaceVerifier interface {
	// Verify compares the submitted photo against the employee's enrolled
	// face and returns a similarity percentage plus the match verdict.
	Verify(ctx context.Context, telegramID int64, photoRef string) (similarity float64, match bool, err error)
}
