package tracking_test

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/adiazny/motiontag-days/internal/pkg/tracking"
)

func TestDaysResponse_Dates(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{
			name: "dates in server order",
			body: `{"days":[{"date":"2023-01-01"},{"date":"2023-01-02"}]}`,
			want: []string{"2023-01-01", "2023-01-02"},
		},
		{
			name: "missing date defaults to empty",
			body: `{"days":[{"date":"2023-01-01"},{"no_date_field":true}]}`,
			want: []string{"2023-01-01", ""},
		},
		{
			name: "non string date and non object entries",
			body: `{"days":[{"date":20230101},"2023-01-02",null,{"date":"2023-01-03","tracks":[1,2]}]}`,
			want: []string{"", "", "", "2023-01-03"},
		},
		{
			name: "empty array",
			body: `{"days":[]}`,
			want: []string{},
		},
		{
			name: "missing days",
			body: `{"months":[]}`,
			want: nil,
		},
		{
			name:    "days is not an array",
			body:    `{"days":"2023-01-01"}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			resp := &tracking.DaysResponse{}

			err := json.Unmarshal([]byte(tt.body), resp)
			if (err != nil) != tt.wantErr {
				t.Fatalf("json.Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				return
			}

			if got := resp.Dates(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("DaysResponse.Dates() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestTokenRequest_Marshal(t *testing.T) {
	data, err := json.Marshal(tracking.TokenRequest{
		GrantType: tracking.GrantTypePassword,
		Username:  `jane"doe`,
		Password:  "secret",
	})
	if err != nil {
		t.Fatal(err)
	}

	want := `{"grant_type":"password","username":"jane\"doe","password":"secret"}`
	if string(data) != want {
		t.Errorf("json.Marshal(TokenRequest) = %s, want %s", data, want)
	}
}
