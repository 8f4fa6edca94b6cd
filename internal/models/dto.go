package models

// TenantSummary is one row of the owner's tenant list: the tenant's
// profile joined with their room and latest rent record.
type TenantSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Room       string `json:"room"`
	RentAmount int64  `json:"rentAmount"`
	JoinDate   string `json:"joinDate"`
	RentStatus string `json:"rentStatus"`
	DueDate    string `json:"dueDate"`
}

// RentSummary is the owner's global rent overview. Totals holds the sum
// of amounts per status; Outstanding is Pending plus Overdue.
type RentSummary struct {
	Totals      map[string]int64 `json:"totals"`
	Outstanding int64            `json:"outstanding"`
}
