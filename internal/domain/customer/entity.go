// internal/domain/customer/entity.go
package customer

// Record carries the pickup details a shopper submits with an order. It is
// never the system of record; the ledger write is.
type Record struct {
	Name             string `json:"name"`
	PhoneCountry     string `json:"phoneCountry"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	PickupDate       string `json:"pickupDate"`
	PickupSlot       string `json:"pickupSlot"`
	TelegramUserID   string `json:"telegramUserId,omitempty"`
	TelegramUsername string `json:"telegramUsername,omitempty"`
}

// CountryOption is a supported phone country
type CountryOption struct {
	Code  string `json:"code"`
	Dial  string `json:"dial"`
	Label string `json:"label"`
}

// CountryOptions lists the phone countries offered at checkout
var CountryOptions = []CountryOption{
	{Code: "MX", Dial: "+52", Label: "México"},
	{Code: "US", Dial: "+1", Label: "USA"},
	{Code: "CA", Dial: "+1", Label: "Canadá"},
	{Code: "FR", Dial: "+33", Label: "France"},
	{Code: "ES", Dial: "+34", Label: "España"},
}

// PickupSlots is the fixed set of pickup time windows
var PickupSlots = []string{
	"08:00-10:00",
	"10:00-12:00",
	"12:00-14:00",
	"14:00-16:00",
	"16:00-18:00",
	"18:00-20:00",
}

// MinPhoneDigits returns the minimum digit count for a phone country:
// 10 for the North American numbering plan, 9 for the two European
// countries modeled, 8 otherwise.
func MinPhoneDigits(code string) int {
	switch code {
	case "MX", "US", "CA":
		return 10
	case "FR", "ES":
		return 9
	default:
		return 8
	}
}
