package config

import "time"

const (
	// Rent
	RentDueDay           = 5 // rent is due on the 5th of the billing month
	DepositMultiplier    = 2 // security deposit = rent * multiplier
	DefaultPaymentMethod = "Manual"

	// Auth
	DefaultTokenTTL = 24 * time.Hour
	BcryptCost      = 10

	// Chat
	AggregateCacheTTL = time.Minute
)
