package domain

const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

const (
	VerificationPending  = "pending"
	VerificationVerified = "verified"
	VerificationRejected = "rejected"
)

const (
	TxnCredit = "credit"
	TxnDebit  = "debit"
)

const (
	TxnStatusPending   = "pending"
	TxnStatusCompleted = "completed"
	TxnStatusFailed    = "failed"
)

const (
	WithdrawPending   = "pending"
	WithdrawApproved  = "approved"
	WithdrawRejected  = "rejected"
	WithdrawCompleted = "completed"
)

const (
	DiscountTypePercent = "percent"
	DiscountTypeAmount  = "amount"
)

// Discount funding source: admin codes come out of the platform's
// commission, club codes out of the gym owner's share.
const (
	SourceAdmin = "admin"
	SourceClub  = "club"
)

const (
	TicketOpen     = "open"
	TicketPending  = "pending"
	TicketResolved = "resolved"
	TicketClosed   = "closed"
)
