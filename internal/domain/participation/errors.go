package participation

import "errors"

var (
	ErrRecordNotFound         = errors.New("participation record not found")
	ErrRecordNotEditable      = errors.New("participation record is locked by an approval")
	ErrConfigNotFound         = errors.New("revenue configuration missing for quarter")
	ErrNoParticipatingSectors = errors.New("no participating sectors configured")
	ErrApprovalNotFound       = errors.New("sector approval not found")
	ErrNoRecordsToApprove     = errors.New("no participation records to approve for sector and quarter")
	ErrAlreadyApproved        = errors.New("sector already approved for quarter")
	ErrNotApproved            = errors.New("sector is not approved for quarter")
	ErrQuarterPaidOut         = errors.New("quarter payout date has passed")
	ErrSuperAdminRequired     = errors.New("operation requires super admin access")
)
