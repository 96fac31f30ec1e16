package enum

var defaults = map[Kind][]Option{
	KindStatus: {
		{Code: "active", Label: "Active"},
		{Code: "terminated", Label: "Terminated"},
		{Code: "deceased", Label: "Deceased"},
		{Code: "resigned", Label: "Resigned"},
	},
	KindType: {
		{Code: "permanent", Label: "Full Time"},
		{Code: "parttime", Label: "Part Time"},
		{Code: "contract", Label: "On Contract"},
		{Code: "temporary", Label: "Temporary"},
		{Code: "trainee", Label: "Trainee"},
	},
	KindSource: {
		{Code: "direct", Label: "Direct"},
		{Code: "referral", Label: "Referral"},
		{Code: "web", Label: "Web"},
		{Code: "newspaper", Label: "Newspaper"},
		{Code: "advertisement", Label: "Advertisement"},
		{Code: "social", Label: "Social Network"},
		{Code: "other", Label: "Other"},
	},
	KindGender: {
		{Code: "male", Label: "Male"},
		{Code: "female", Label: "Female"},
		{Code: "other", Label: "Other"},
	},
	KindMaritalStatus: {
		{Code: "single", Label: "Single"},
		{Code: "married", Label: "Married"},
		{Code: "widowed", Label: "Widowed"},
	},
	KindPayType: {
		{Code: "hourly", Label: "Hourly"},
		{Code: "daily", Label: "Daily"},
		{Code: "weekly", Label: "Weekly"},
		{Code: "monthly", Label: "Monthly"},
		{Code: "yearly", Label: "Yearly"},
		{Code: "contract", Label: "Contract"},
	},
	KindPayChangeReason: {
		{Code: "promotion", Label: "Promotion"},
		{Code: "performance", Label: "Performance"},
	},
	// Country names are normally supplied through LABELS_FILE; this seed only
	// covers the codes the bundled fixtures use.
	KindCountry: {
		{Code: "BD", Label: "Bangladesh"},
		{Code: "DE", Label: "Germany"},
		{Code: "GB", Label: "United Kingdom (UK)"},
		{Code: "ID", Label: "Indonesia"},
		{Code: "IN", Label: "India"},
		{Code: "JP", Label: "Japan"},
		{Code: "US", Label: "United States (US)"},
	},
}
