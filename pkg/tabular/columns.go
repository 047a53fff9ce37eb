package tabular

import "strings"

// Recognized semantic column names. Headers are matched against these
// case-insensitively; columns outside this list pass through every
// repair stage untouched.
const (
	// ColumnFirstName holds a customer's given name.
	ColumnFirstName = "first_name"
	// ColumnLastName holds a customer's family name.
	ColumnLastName = "last_name"
	// ColumnFullName holds the combined display name.
	ColumnFullName = "full_name"
	// ColumnEmail holds the contact email address.
	ColumnEmail = "email"
	// ColumnPhone holds the contact phone number.
	ColumnPhone = "phone"
	// ColumnGender holds the customer's reported gender.
	ColumnGender = "gender"
	// ColumnMaritalStatus holds the customer's marital status.
	ColumnMaritalStatus = "marital_status"
	// ColumnAge holds the customer's age in years.
	ColumnAge = "age"
	// ColumnLoyaltyPoints holds the accumulated loyalty balance.
	ColumnLoyaltyPoints = "loyalty_points"
	// ColumnCountry holds the customer's country.
	ColumnCountry = "country"
	// ColumnCity holds the customer's city.
	ColumnCity = "city"
)

// Derived column names appended by enrichment.
const (
	// ColumnIsLoyalCustomer marks customers above the loyalty cutoff.
	ColumnIsLoyalCustomer = "is_loyal_customer"
	// ColumnCustomerPersona holds the age and loyalty segment label.
	ColumnCustomerPersona = "customer_persona"
)

// recognizedColumns lists the semantic columns in canonical order.
var recognizedColumns = []string{
	ColumnFirstName,
	ColumnLastName,
	ColumnFullName,
	ColumnEmail,
	ColumnPhone,
	ColumnGender,
	ColumnMaritalStatus,
	ColumnAge,
	ColumnLoyaltyPoints,
	ColumnCountry,
	ColumnCity,
}

// RecognizedColumns returns the semantic column names in canonical
// order.
func RecognizedColumns() []string {
	out := make([]string, len(recognizedColumns))
	copy(out, recognizedColumns)
	return out
}

// Canonical maps a header to its canonical semantic column name. The
// second return is false for headers outside the recognized list.
func Canonical(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, column := range recognizedColumns {
		if key == column {
			return column, true
		}
	}
	return "", false
}

// IsRecognized reports whether a header names a recognized semantic
// column.
func IsRecognized(name string) bool {
	_, ok := Canonical(name)
	return ok
}
