package normalize

import "strings"

type stateName struct {
	key  string // upper-case search text
	name string
}

// states is searched in order; the first substring found wins.
var states = []stateName{
	{"ANDHRA PRADESH", "Andhra Pradesh"},
	{"ARUNACHAL PRADESH", "Arunachal Pradesh"},
	{"ASSAM", "Assam"},
	{"BIHAR", "Bihar"},
	{"CHHATTISGARH", "Chhattisgarh"},
	{"GOA", "Goa"},
	{"GUJARAT", "Gujarat"},
	{"HARYANA", "Haryana"},
	{"HIMACHAL PRADESH", "Himachal Pradesh"},
	{"JHARKHAND", "Jharkhand"},
	{"KARNATAKA", "Karnataka"},
	{"KERALA", "Kerala"},
	{"MADHYA PRADESH", "Madhya Pradesh"},
	{"MAHARASHTRA", "Maharashtra"},
	{"MANIPUR", "Manipur"},
	{"MEGHALAYA", "Meghalaya"},
	{"MIZORAM", "Mizoram"},
	{"NAGALAND", "Nagaland"},
	{"ODISHA", "Odisha"},
	{"ORISSA", "Odisha"},
	{"PUNJAB", "Punjab"},
	{"RAJASTHAN", "Rajasthan"},
	{"SIKKIM", "Sikkim"},
	{"TAMIL NADU", "Tamil Nadu"},
	{"TELANGANA", "Telangana"},
	{"TRIPURA", "Tripura"},
	{"UTTAR PRADESH", "Uttar Pradesh"},
	{"UTTARAKHAND", "Uttarakhand"},
	{"WEST BENGAL", "West Bengal"},
	{"DELHI", "Delhi"},
	{"JAMMU AND KASHMIR", "Jammu and Kashmir"},
	{"JAMMU & KASHMIR", "Jammu and Kashmir"},
	{"PUDUCHERRY", "Puducherry"},
	{"PONDICHERRY", "Puducherry"},
	{"CHANDIGARH", "Chandigarh"},
	{"LADAKH", "Ladakh"},
	{"ANDAMAN", "Andaman and Nicobar Islands"},
	{"DADRA", "Dadra and Nagar Haveli and Daman and Diu"},
	{"LAKSHADWEEP", "Lakshadweep"},
}

// cityStates resolves colleges whose names carry a city but no state.
var cityStates = []stateName{
	{"MANIPAL", "Karnataka"},
	{"MANGALORE", "Karnataka"},
	{"BANGALORE", "Karnataka"},
	{"BENGALURU", "Karnataka"},
	{"MYSORE", "Karnataka"},
	{"MYSURU", "Karnataka"},
	{"BELGAUM", "Karnataka"},
	{"HUBLI", "Karnataka"},
	{"DAVANGERE", "Karnataka"},
	{"CHENNAI", "Tamil Nadu"},
	{"MADURAI", "Tamil Nadu"},
	{"COIMBATORE", "Tamil Nadu"},
	{"MUMBAI", "Maharashtra"},
	{"PUNE", "Maharashtra"},
	{"NAGPUR", "Maharashtra"},
	{"HYDERABAD", "Telangana"},
	{"KOLKATA", "West Bengal"},
	{"LUCKNOW", "Uttar Pradesh"},
	{"JAIPUR", "Rajasthan"},
	{"AHMEDABAD", "Gujarat"},
	{"THIRUVANANTHAPURAM", "Kerala"},
	{"KOCHI", "Kerala"},
	{"VISAKHAPATNAM", "Andhra Pradesh"},
	{"BHOPAL", "Madhya Pradesh"},
	{"PATNA", "Bihar"},
	{"CUTTACK", "Odisha"},
	{"GUWAHATI", "Assam"},
	{"LUDHIANA", "Punjab"},
	{"SHIMLA", "Himachal Pradesh"},
	{"DEHRADUN", "Uttarakhand"},
	{"SRINAGAR", "Jammu and Kashmir"},
}

// ExtractState returns the first state or UT named in a college name, falling
// back to a known city. It returns "" when nothing matches.
func ExtractState(collegeName string) string {
	upper := strings.ToUpper(collegeName)
	if upper == "" {
		return ""
	}
	for _, s := range states {
		if strings.Contains(upper, s.key) {
			return s.name
		}
	}
	for _, s := range cityStates {
		if strings.Contains(upper, s.key) {
			return s.name
		}
	}
	return ""
}
