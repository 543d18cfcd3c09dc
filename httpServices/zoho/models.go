package zoho

// Account is a user account record returned by the mailbox provider.
type Account struct {
	ZUID         int64  `json:"zuid"`
	EmailAddress string `json:"emailAddress"`
	DisplayName  string `json:"displayName"`
	MobileNumber string `json:"mobileNumber"`
	PhoneNumber  string `json:"phoneNumber"`
}

type accountListResponse struct {
	Data []Account `json:"data"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	Scope       string `json:"scope"`
	APIDomain   string `json:"api_domain"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
	Mode     string `json:"mode"`
}
