package pincode

// PincodeRequest creates or updates a serviceable pincode.
type PincodeRequest struct {
	Pincode string `json:"pincode"`
	City    string `json:"city"`
	State   string `json:"state"`
}

// Validate returns a message describing the first invalid field, or "".
func (r *PincodeRequest) Validate() string {
	if r.Pincode == "" {
		return "pincode is required"
	}
	if r.City == "" {
		return "city is required"
	}
	if r.State == "" {
		return "state is required"
	}
	return ""
}

// CheckResult is the public serviceability lookup response.
type CheckResult struct {
	Pincode     string `json:"pincode"`
	Serviceable bool   `json:"serviceable"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
}
