package email

// SendRequest is the ad-hoc email relay payload.
type SendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// Validate returns a message describing the first invalid field, or "".
func (r *SendRequest) Validate() string {
	if r.To == "" {
		return "to is required"
	}
	if r.Subject == "" {
		return "subject is required"
	}
	if r.Text == "" && r.HTML == "" {
		return "text or html body is required"
	}
	return ""
}
