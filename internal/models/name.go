package models

import "strings"

// DefaultAddressName is used when no first name can be parsed from the callee name
const DefaultAddressName = "Customer"

// ParsedName holds the components of a free-text customer name
type ParsedName struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
}

// ParseFullName splits a name on whitespace.
// Two tokens or fewer have no middle name; three or more join everything
// between the first and last token as the middle name.
func ParseFullName(fullName string) ParsedName {
	trimmed := strings.TrimSpace(fullName)
	parts := strings.Fields(trimmed)

	switch len(parts) {
	case 0:
		return ParsedName{}
	case 1:
		return ParsedName{FirstName: parts[0], FullName: parts[0]}
	case 2:
		return ParsedName{FirstName: parts[0], LastName: parts[1], FullName: trimmed}
	default:
		return ParsedName{
			FirstName:  parts[0],
			MiddleName: strings.Join(parts[1:len(parts)-1], " "),
			LastName:   parts[len(parts)-1],
			FullName:   trimmed,
		}
	}
}

// AddressName returns the first name, or the default placeholder when empty
func (p ParsedName) AddressName() string {
	if p.FirstName == "" {
		return DefaultAddressName
	}
	return p.FirstName
}

// TransliterationResult carries the Hindi renderings for a customer name
type TransliterationResult struct {
	CustomerNameHindi string `json:"customer_name_hindi"`
	AddressNameHindi  string `json:"address_name_hindi"`
	ProcessingTimeMs  int64  `json:"processing_time_ms"`
}

// WinbackTransliterationResult adds the previous branch name to TransliterationResult
type WinbackTransliterationResult struct {
	CustomerNameHindi string `json:"customer_name_hindi"`
	AddressNameHindi  string `json:"address_name_hindi"`
	BranchNameHindi   string `json:"branch_name_hindi"`
	ProcessingTimeMs  int64  `json:"processing_time_ms"`
}
