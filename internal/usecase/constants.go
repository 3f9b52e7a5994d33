package usecase

const (
	// SystemPoolAccountName is the display name given to the pool account
	// when it is created on first use.
	SystemPoolAccountName = "System Rewards Pool"

	// DefaultCreditDescription is used when a credit carries no description.
	DefaultCreditDescription = "Reward"

	// DefaultReversalReason is used when a reversal carries no reason.
	DefaultReversalReason = "Administrative Reversal"
)
