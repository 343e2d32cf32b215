package registration_test

import (
	"testing"
	"time"

	"plusultra/internal/domain/registration"
)

var now = time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)

func validFields() registration.Fields {
	return registration.Fields{
		FullName:         "Alex Rivera",
		Email:            "alex@example.com",
		Phone:            "347-123-4567",
		Age:              "29",
		MembershipType:   "plus",
		StartDate:        "2026-03-10",
		EmergencyContact: "Jamie Rivera 347-555-0101",
		Experience:       "beginner",
		Goals:            "Build strength",
	}
}

// TestValidateValid verifies a complete form passes with no errors.
func TestValidateValid(t *testing.T) {
	res := registration.Validate(validFields(), now)
	if !res.Valid {
		t.Fatalf("Valid = false, errors = %v", res.Errors)
	}
	if len(res.Errors) != 0 {
		t.Errorf("Errors = %v, want empty", res.Errors)
	}
	if res.Data != validFields() {
		t.Errorf("Data = %+v, want the submitted fields", res.Data)
	}
}

// TestValidateEmptyForm verifies every field reports its required message.
func TestValidateEmptyForm(t *testing.T) {
	res := registration.Validate(registration.Fields{}, now)
	if res.Valid {
		t.Fatal("empty form should be invalid")
	}
	want := map[registration.Field]string{
		registration.FieldFullName:         "Full name is required.",
		registration.FieldEmail:            "Email is required.",
		registration.FieldPhone:            "Phone number is required.",
		registration.FieldAge:              "Age is required.",
		registration.FieldMembershipType:   "Select a membership type.",
		registration.FieldStartDate:        "Select a start date.",
		registration.FieldEmergencyContact: "Emergency contact is required.",
		registration.FieldExperience:       "Select your experience level.",
		registration.FieldGoals:            "Fitness goals are required.",
	}
	if len(res.Errors) != len(want) {
		t.Fatalf("got %d errors, want %d: %v", len(res.Errors), len(want), res.Errors)
	}
	for f, msg := range want {
		if res.Errors[f] != msg {
			t.Errorf("Errors[%s] = %q, want %q", f, res.Errors[f], msg)
		}
	}
}

// TestValidateMissingField verifies only the missing field is reported.
func TestValidateMissingField(t *testing.T) {
	for _, f := range registration.AllFields {
		t.Run(string(f), func(t *testing.T) {
			fs := registration.FieldsFrom(func(id string) string {
				if id == string(f) {
					return "   "
				}
				return validFields().Get(registration.Field(id))
			})
			res := registration.Validate(fs, now)
			if res.Valid {
				t.Fatal("form should be invalid")
			}
			if len(res.Errors) != 1 {
				t.Fatalf("Errors = %v, want exactly one entry", res.Errors)
			}
			if _, ok := res.Errors[f]; !ok {
				t.Errorf("Errors has no entry for %s", f)
			}
		})
	}
}

// TestValidateEmail covers the email pattern.
func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"a@b.co", true},
		{"  name@email.com  ", true},
		{"first.last@sub.example.org", true},
		{"no-at-sign.com", false},
		{"user@nodot", false},
		{"user@@example.com", false},
		{"us er@example.com", false},
		{"@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			fs := validFields()
			fs.Email = tt.email
			res := registration.Validate(fs, now)
			if got := res.Errors[registration.FieldEmail] == ""; got != tt.want {
				t.Errorf("email %q valid = %v, want %v (%q)", tt.email, got, tt.want, res.Errors[registration.FieldEmail])
			}
			if !tt.want && res.Errors[registration.FieldEmail] != registration.MsgInvalidEmail {
				t.Errorf("message = %q, want %q", res.Errors[registration.FieldEmail], registration.MsgInvalidEmail)
			}
		})
	}
}

// TestValidatePhone covers the phone pattern, including bare digits.
func TestValidatePhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"555-123-4567", true},
		{"(555) 123-4567", true},
		{"(555)123-4567", true},
		{"555 123 4567", true},
		{"5551234567", true},
		{" 555-123-4567 ", true},
		{"12345", false},
		{"555-1234-567", false},
		{"(555-123-4567", false},
		{"555.123.4567", false},
	}
	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			if got := registration.IsValidPhone(tt.phone); got != tt.want {
				t.Errorf("IsValidPhone(%q) = %v, want %v", tt.phone, got, tt.want)
			}
		})
	}

	fs := validFields()
	fs.Phone = "12345"
	if msg := registration.Validate(fs, now).Errors[registration.FieldPhone]; msg != registration.MsgInvalidPhone {
		t.Errorf("phone message = %q, want %q", msg, registration.MsgInvalidPhone)
	}
}

// TestValidateAge covers numeric and range checks.
func TestValidateAge(t *testing.T) {
	tests := []struct {
		age  string
		want string
	}{
		{"13", ""},
		{"90", ""},
		{"45", ""},
		{"12", registration.MsgAgeOutOfRange},
		{"91", registration.MsgAgeOutOfRange},
		{"abc", registration.MsgAgeNotNumber},
		{"", "Age is required."},
	}
	for _, tt := range tests {
		t.Run(tt.age, func(t *testing.T) {
			fs := validFields()
			fs.Age = tt.age
			if got := registration.Validate(fs, now).Errors[registration.FieldAge]; got != tt.want {
				t.Errorf("age %q error = %q, want %q", tt.age, got, tt.want)
			}
		})
	}
}

// TestValidateExperience covers the enumerated set and tampering.
func TestValidateExperience(t *testing.T) {
	tests := []struct {
		experience string
		want       string
	}{
		{"beginner", ""},
		{"intermediate", ""},
		{"advanced", ""},
		{"", "Select your experience level."},
		{"expert", registration.MsgInvalidExperience},
		{"Beginner", registration.MsgInvalidExperience},
		{"   ", registration.MsgInvalidExperience},
	}
	for _, tt := range tests {
		t.Run(tt.experience, func(t *testing.T) {
			fs := validFields()
			fs.Experience = tt.experience
			if got := registration.Validate(fs, now).Errors[registration.FieldExperience]; got != tt.want {
				t.Errorf("experience %q error = %q, want %q", tt.experience, got, tt.want)
			}
		})
	}
}

// TestValidateStartDate covers today, past, future and malformed dates.
func TestValidateStartDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"today", "2026-03-10", ""},
		{"future", "2026-04-01", ""},
		{"yesterday", "2026-03-09", registration.MsgStartDatePast},
		{"last year", "2025-12-31", registration.MsgStartDatePast},
		{"malformed", "2026-13-40", registration.MsgStartDateInvalid},
		{"impossible day", "2026-02-30", registration.MsgStartDateInvalid},
		{"free text", "next week", registration.MsgStartDateInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := validFields()
			fs.StartDate = tt.date
			if got := registration.Validate(fs, now).Errors[registration.FieldStartDate]; got != tt.want {
				t.Errorf("start date %q error = %q, want %q", tt.date, got, tt.want)
			}
		})
	}
}

// TestValidateStartDateUsesLocalMidnight verifies today is judged in now's location.
func TestValidateStartDateUsesLocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC-10", -10*60*60)
	lateEvening := time.Date(2026, time.March, 10, 23, 0, 0, 0, loc)

	fs := validFields()
	fs.StartDate = "2026-03-10"
	if res := registration.Validate(fs, lateEvening); !res.Valid {
		t.Errorf("today in local time should be accepted, errors = %v", res.Errors)
	}
}

// TestResultMessage verifies the confirmation and failure texts.
func TestResultMessage(t *testing.T) {
	ok := registration.Validate(validFields(), now)
	want := "Success! Thanks, Alex Rivera. Welcome to Plus Ultra Fitness — your PLUS membership request is ready."
	if got := ok.Message(); got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}

	bad := registration.Validate(registration.Fields{}, now)
	if got := bad.Message(); got != registration.FailureMessage {
		t.Errorf("Message() = %q, want %q", got, registration.FailureMessage)
	}
}

// TestFieldErrorSlot verifies every field has a display slot.
func TestFieldErrorSlot(t *testing.T) {
	for _, f := range registration.AllFields {
		if f.ErrorSlot() == "" {
			t.Errorf("field %s has no error slot", f)
		}
	}
	if got := registration.FieldMembershipType.ErrorSlot(); got != "errMembership" {
		t.Errorf("membership slot = %q, want errMembership", got)
	}
}

// TestMembershipTypes verifies option values are lower-cased labels.
func TestMembershipTypes(t *testing.T) {
	if len(registration.MembershipTypes) != 5 {
		t.Fatalf("got %d membership types, want 5", len(registration.MembershipTypes))
	}
	first := registration.MembershipTypes[0]
	if first.Value != "basic" || first.Label != "Basic" {
		t.Errorf("first option = %+v, want basic/Basic", first)
	}
}
