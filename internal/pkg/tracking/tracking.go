package tracking

import "encoding/json"

const GrantTypePassword = "password"

type TokenRequest struct {
	GrantType string `json:"grant_type"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// TokenResponse leaves AccessToken nil when the server omits it.
type TokenResponse struct {
	AccessToken *string `json:"access_token"`
}

// DaysResponse leaves Days nil when the server omits the array.
type DaysResponse struct {
	Days *[]Day `json:"days"`
}

// Day keeps only the date of a recorded day. Everything else the server sends is ignored.
type Day struct {
	Date string
}

// UnmarshalJSON never fails: an element that is not an object, or whose date
// is missing or not a string, decodes to a Day with an empty date.
func (d *Day) UnmarshalJSON(data []byte) error {
	*d = Day{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}

	raw, ok := fields["date"]
	if !ok {
		return nil
	}

	var date string
	if err := json.Unmarshal(raw, &date); err != nil {
		return nil
	}

	d.Date = date

	return nil
}

func (r *DaysResponse) Dates() []string {
	if r.Days == nil {
		return nil
	}

	dates := make([]string, 0, len(*r.Days))
	for _, day := range *r.Days {
		dates = append(dates, day.Date)
	}

	return dates
}
