package usecase

import "time"

// SetNow overrides the report clock for tests in the external test package.
func (u *ReportUseCase) SetNow(fn func() time.Time) { u.now = fn }
