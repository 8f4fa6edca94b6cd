// Package chatbot implements the rule-based portal assistant. Rules
// are an explicit ordered list of (predicate, handler) pairs evaluated
// in one deterministic pass; the first match wins and later rules are
// unreachable. The responder never returns an error to the caller:
// every failure path degrades to a user-facing string and the
// underlying fault is logged.
package chatbot

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"pgportal/backend/internal/config"
	"pgportal/backend/internal/models"
	"pgportal/backend/internal/storage"
)

// Fixed strings served without any lookup.
const (
	replyDefault = "I'm the PG Management Assistant. I can check your rent, room, or complaints. How can I assist you?"

	replyProfileNotFound = "I couldn't find your user profile in the system. Please ensure you are logged in."

	replyApology = "I apologize, an internal server error occurred while processing your data query."

	replyNoRoom = "You must be assigned a room to get financial details."

	replyWifi = `The Wi-Fi password is "PG_SecureNet123". Please do not share it outside the property.`

	replyQuietHours = "Quiet hours are enforced strictly between 10 PM and 8 AM."

	replyGuests = "Guests are permitted for a maximum of 2 consecutive nights, with prior notification to the owner."

	replyRentDueDate = "The standard rent due date is the 5th of every month."
)

// Cache keys for owner-side aggregates.
const (
	cacheKeyRevenue       = "chat:agg:revenue"
	cacheKeyTotalRooms    = "chat:agg:rooms:total"
	cacheKeyOccupiedRooms = "chat:agg:rooms:occupied"
)

// Responder answers portal chat messages by keyword matching against
// live aggregate queries.
type Responder struct {
	Storage storage.Storage
}

func NewResponder(s storage.Storage) *Responder {
	return &Responder{Storage: s}
}

// rule pairs a predicate with its handler. The rules method returns
// them in evaluation order.
type rule struct {
	matches func(msg string, user *models.User) bool
	handle  func(msg string, user *models.User) (string, error)
}

// Respond maps a free-text message from the given caller to a response
// string. It never fails: an unresolvable caller yields a fixed
// profile-not-found string and internal faults yield a fixed apology.
func (r *Responder) Respond(message, userID string) string {
	user, err := r.Storage.GetUserByID(userID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("chat responder failed to load caller", "user_id", userID, "error", err)
		}
		return replyProfileNotFound
	}

	msg := strings.ToLower(message)
	for _, rl := range r.rules() {
		if !rl.matches(msg, user) {
			continue
		}
		text, err := rl.handle(msg, user)
		if err != nil {
			slog.Error("chat responder rule failed", "user_id", userID, "error", err)
			return replyApology
		}
		return text
	}

	return replyDefault
}

// rules is the full ordered rule table. Order is observable behavior:
//
//	1. greeting                      (any role)
//	2. rent / deposit                (tenant)
//	3. complaint status              (tenant)
//	4. revenue                       (owner)
//	5. occupancy                     (owner)
//	6. pending maintenance           (owner)
//	7. wifi FAQ                      (any role)
//	8. quiet hours FAQ               (any role)
//	9. guests FAQ                    (any role)
func (r *Responder) rules() []rule {
	return []rule{
		{
			matches: anyRole("hello", "hi", "hey"),
			handle: func(_ string, user *models.User) (string, error) {
				return fmt.Sprintf("Hello %s! I am your automated PG Assistant. What can I assist you with today?", user.FirstName()), nil
			},
		},
		{
			matches: tenantOnly("rent", "amount", "due date", "deposit"),
			handle:  r.tenantRent,
		},
		{
			matches: tenantOnly("complaint", "status", "issue"),
			handle:  r.tenantComplaints,
		},
		{
			matches: ownerOnly("revenue", "income", "monthly money", "earn"),
			handle:  r.ownerRevenue,
		},
		{
			matches: ownerOnly("vacant", "occupancy", "rooms", "total", "occupied", "how many"),
			handle:  r.ownerOccupancy,
		},
		{
			matches: ownerOnly("pending", "maintenance", "requests", "actions"),
			handle:  r.ownerPending,
		},
		{
			matches: anyRole("wi-fi", "wifi", "password", "internet"),
			handle:  fixed(replyWifi),
		},
		{
			matches: anyRole("quiet hours", "rules"),
			handle:  fixed(replyQuietHours),
		},
		{
			matches: anyRole("guests", "visitor"),
			handle:  fixed(replyGuests),
		},
	}
}

func (r *Responder) tenantRent(msg string, user *models.User) (string, error) {
	if user.Room == nil {
		return replyNoRoom, nil
	}

	// Deposit questions take precedence inside the rent rule.
	if containsKeyword(msg, "deposit", "security") {
		deposit := user.Room.RentAmount * config.DepositMultiplier
		return fmt.Sprintf("Your security deposit amount is ₹%s.", formatINR(deposit)), nil
	}

	return fmt.Sprintf("Your monthly rent amount is ₹%s. %s",
		formatINR(user.Room.RentAmount), replyRentDueDate), nil
}

func (r *Responder) tenantComplaints(_ string, user *models.User) (string, error) {
	pending, err := r.Storage.CountPendingComplaintsForTenant(user.ID)
	if err != nil {
		return "", err
	}
	if pending > 0 {
		return fmt.Sprintf("You have %d request(s) pending owner review.", pending), nil
	}
	return "You have no outstanding maintenance complaints.", nil
}

func (r *Responder) ownerRevenue(_ string, _ *models.User) (string, error) {
	revenue, err := r.Storage.CachedCount(cacheKeyRevenue, config.AggregateCacheTTL, r.Storage.OccupiedRevenue)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Your current expected monthly revenue is ₹%s.", formatINR(revenue)), nil
}

func (r *Responder) ownerOccupancy(_ string, _ *models.User) (string, error) {
	total, err := r.Storage.CachedCount(cacheKeyTotalRooms, config.AggregateCacheTTL, r.Storage.CountRooms)
	if err != nil {
		return "", err
	}
	occupied, err := r.Storage.CachedCount(cacheKeyOccupiedRooms, config.AggregateCacheTTL, func() (int64, error) {
		return r.Storage.CountRoomsByStatus(models.RoomOccupied)
	})
	if err != nil {
		return "", err
	}
	vacant := total - occupied
	return fmt.Sprintf("You have %d total rooms. %d are currently vacant and %d are occupied.",
		total, vacant, occupied), nil
}

func (r *Responder) ownerPending(_ string, _ *models.User) (string, error) {
	pending, err := r.Storage.CountPendingComplaints()
	if err != nil {
		return "", err
	}
	if pending > 0 {
		return fmt.Sprintf("ATTENTION: You have %d urgent complaints pending resolution.", pending), nil
	}
	return "No pending maintenance requests at this time.", nil
}

// ReminderText builds the one-line rent reminder shown on the tenant
// dashboard. daysLeft counts from today to the due date and may be
// negative once overdue.
func (r *Responder) ReminderText(amount int64, dueDate string, daysLeft int) string {
	rupees := formatINR(amount)
	switch {
	case daysLeft > 0:
		return fmt.Sprintf("A gentle reminder: your monthly rent of ₹%s is due on %s, in %d day(s).", rupees, dueDate, daysLeft)
	case daysLeft == 0:
		return fmt.Sprintf("Your monthly rent of ₹%s is due today (%s); please arrange payment at your convenience.", rupees, dueDate)
	default:
		return fmt.Sprintf("Your monthly rent of ₹%s was due on %s and is now %d day(s) overdue; please settle it soon.", rupees, dueDate, -daysLeft)
	}
}

func containsKeyword(msg string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(msg, keyword) {
			return true
		}
	}
	return false
}

func anyRole(keywords ...string) func(string, *models.User) bool {
	return func(msg string, _ *models.User) bool {
		return containsKeyword(msg, keywords...)
	}
}

func tenantOnly(keywords ...string) func(string, *models.User) bool {
	return func(msg string, user *models.User) bool {
		return user.Role == models.RoleTenant && containsKeyword(msg, keywords...)
	}
}

func ownerOnly(keywords ...string) func(string, *models.User) bool {
	return func(msg string, user *models.User) bool {
		return user.Role == models.RoleOwner && containsKeyword(msg, keywords...)
	}
}

func fixed(text string) func(string, *models.User) (string, error) {
	return func(string, *models.User) (string, error) {
		return text, nil
	}
}

// formatINR renders an amount with thousands separators, e.g. 9000 ->
// "9,000".
func formatINR(amount int64) string {
	digits := fmt.Sprintf("%d", amount)
	negative := false
	if strings.HasPrefix(digits, "-") {
		negative = true
		digits = digits[1:]
	}

	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
}
