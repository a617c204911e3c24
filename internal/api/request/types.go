package request

// Selections are the catalog items ticked for one entry
type Selections struct {
	Assets      []string `json:"assets,omitempty"`
	Bonuses     []string `json:"bonuses,omitempty"`
	Liabilities []string `json:"liabilities,omitempty"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	RealName string `json:"real_name"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Team     string `json:"team"`
}

// SubmitEntryRequest is the request body for creating or correcting an
// entry. With a valid session token the credential fields may be omitted;
// without one, all four are required.
type SubmitEntryRequest struct {
	RealName string `json:"real_name,omitempty"`
	Password string `json:"password,omitempty"`
	Nickname string `json:"nickname,omitempty"`
	Team     string `json:"team,omitempty"`

	Date       string     `json:"date"`
	Selections Selections `json:"selections"`
	Confess    bool       `json:"confess"`
}

// DeleteAccountRequest is the request body for erasing an account
type DeleteAccountRequest struct {
	RealName  string `json:"real_name"`
	Password  string `json:"password"`
	Confirmed bool   `json:"confirmed"`
}
