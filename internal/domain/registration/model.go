package registration

import (
	"regexp"
	"strings"
	"time"

	"plusultra/internal/domain/numeric"
)

// StudioName appears in the confirmation message.
const StudioName = "Plus Ultra Fitness"

// FailureMessage is the page-level result text for an invalid submission.
const FailureMessage = "Please fix the highlighted errors and submit again."

// Field identifies one input of the sign-up form.
type Field string

// Form fields in page order.
const (
	FieldFullName         Field = "fullName"
	FieldEmail            Field = "email"
	FieldPhone            Field = "phone"
	FieldAge              Field = "age"
	FieldMembershipType   Field = "membershipType"
	FieldStartDate        Field = "startDate"
	FieldEmergencyContact Field = "emergencyContact"
	FieldExperience       Field = "experience"
	FieldGoals            Field = "goals"
)

// AllFields lists every form field in page order.
var AllFields = []Field{
	FieldFullName,
	FieldEmail,
	FieldPhone,
	FieldAge,
	FieldMembershipType,
	FieldStartDate,
	FieldEmergencyContact,
	FieldExperience,
	FieldGoals,
}

// errorSlots maps each field to the element that displays its message.
var errorSlots = map[Field]string{
	FieldFullName:         "errFullName",
	FieldEmail:            "errEmail",
	FieldPhone:            "errPhone",
	FieldAge:              "errAge",
	FieldMembershipType:   "errMembership",
	FieldStartDate:        "errStartDate",
	FieldEmergencyContact: "errEmergency",
	FieldExperience:       "errExperience",
	FieldGoals:            "errGoals",
}

// ErrorSlot returns the id of the element showing this field's error.
func (f Field) ErrorSlot() string {
	return errorSlots[f]
}

// requiredMessages are shown when a field is blank.
var requiredMessages = map[Field]string{
	FieldFullName:         "Full name is required.",
	FieldEmail:            "Email is required.",
	FieldPhone:            "Phone number is required.",
	FieldAge:              "Age is required.",
	FieldMembershipType:   "Select a membership type.",
	FieldStartDate:        "Select a start date.",
	FieldEmergencyContact: "Emergency contact is required.",
	FieldExperience:       "Select your experience level.",
	FieldGoals:            "Fitness goals are required.",
}

// Format rule messages.
const (
	MsgInvalidEmail      = "Enter a valid email (example: name@email.com)."
	MsgInvalidPhone      = "Enter a valid phone (347-123-4567)."
	MsgAgeNotNumber      = "Age must be a number."
	MsgAgeOutOfRange     = "Age must be between 13 and 90."
	MsgInvalidExperience = "Invalid experience selection."
	MsgStartDatePast     = "Start date cannot be in the past."
	// MsgStartDateInvalid is only reachable by bypassing the date picker, e.g. a
	// tampered form post or a JSON API body with "2026-02-30" or "next week".
	MsgStartDateInvalid = "Enter a valid start date."
)

// Age bounds, inclusive.
const (
	MinAge = 13
	MaxAge = 90
)

// DateLayout is the wire format of the start date input.
const DateLayout = "2006-01-02"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^(\(\d{3}\)\s?|\d{3}[-\s]?)\d{3}[-\s]?\d{4}$`)
)

// Option is one entry of a select input.
type Option struct {
	Value string
	Label string
}

// MembershipTypes are offered in the membership select; values are lower-cased labels.
var MembershipTypes = options("Basic", "Plus", "Elite", "Student", "Family")

// ExperienceLevels are the accepted experience values.
var ExperienceLevels = options("Beginner", "Intermediate", "Advanced")

func options(labels ...string) []Option {
	opts := make([]Option, 0, len(labels))
	for _, l := range labels {
		opts = append(opts, Option{Value: strings.ToLower(l), Label: l})
	}
	return opts
}

// Fields is a snapshot of the form at submission time.
type Fields struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Age              string `json:"age"`
	MembershipType   string `json:"membershipType"`
	StartDate        string `json:"startDate"`
	EmergencyContact string `json:"emergencyContact"`
	Experience       string `json:"experience"`
	Goals            string `json:"goals"`
}

// FieldsFrom builds a snapshot by reading each field through get.
func FieldsFrom(get func(id string) string) Fields {
	return Fields{
		FullName:         get(string(FieldFullName)),
		Email:            get(string(FieldEmail)),
		Phone:            get(string(FieldPhone)),
		Age:              get(string(FieldAge)),
		MembershipType:   get(string(FieldMembershipType)),
		StartDate:        get(string(FieldStartDate)),
		EmergencyContact: get(string(FieldEmergencyContact)),
		Experience:       get(string(FieldExperience)),
		Goals:            get(string(FieldGoals)),
	}
}

// Get returns the value of field f.
func (fs Fields) Get(f Field) string {
	switch f {
	case FieldFullName:
		return fs.FullName
	case FieldEmail:
		return fs.Email
	case FieldPhone:
		return fs.Phone
	case FieldAge:
		return fs.Age
	case FieldMembershipType:
		return fs.MembershipType
	case FieldStartDate:
		return fs.StartDate
	case FieldEmergencyContact:
		return fs.EmergencyContact
	case FieldExperience:
		return fs.Experience
	case FieldGoals:
		return fs.Goals
	}
	return ""
}

// Result is the outcome of validating a snapshot.
type Result struct {
	Valid  bool
	Errors map[Field]string
	Data   Fields
}

// ConfirmationMessage is shown after a valid submission.
// PRE: r.Valid
func (r Result) ConfirmationMessage() string {
	return "Success! Thanks, " + r.Data.FullName + ". Welcome to " + StudioName +
		" — your " + strings.ToUpper(r.Data.MembershipType) + " membership request is ready."
}

// Message returns the page-level result text.
func (r Result) Message() string {
	if r.Valid {
		return r.ConfirmationMessage()
	}
	return FailureMessage
}

// Validate applies every rule to fs; today's date is taken from now's location.
// PRE: none
// POST: Valid iff Errors is empty; Data equals fs
// INVARIANT: a later rule's message replaces an earlier one on the same field
func Validate(fs Fields, now time.Time) Result {
	errs := make(map[Field]string)

	for _, f := range AllFields {
		if !present(fs.Get(f)) {
			errs[f] = requiredMessages[f]
		}
	}

	if present(fs.Email) && !IsValidEmail(fs.Email) {
		errs[FieldEmail] = MsgInvalidEmail
	}

	if present(fs.Phone) && !IsValidPhone(fs.Phone) {
		errs[FieldPhone] = MsgInvalidPhone
	}

	if present(fs.Age) {
		if msg, ok := checkAge(fs.Age); !ok {
			errs[FieldAge] = msg
		}
	}

	switch fs.Experience {
	case "":
		// covered by the presence rule
	case "beginner", "intermediate", "advanced":
	default:
		errs[FieldExperience] = MsgInvalidExperience
	}

	if present(fs.StartDate) {
		if msg, ok := checkStartDate(fs.StartDate, now); !ok {
			errs[FieldStartDate] = msg
		}
	}

	return Result{
		Valid:  len(errs) == 0,
		Errors: errs,
		Data:   fs,
	}
}

// IsValidEmail reports whether email looks like local@domain.tld.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// IsValidPhone accepts 555-123-4567, (555) 123-4567, 555 123 4567 and 5551234567.
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

func present(v string) bool {
	return strings.TrimSpace(v) != ""
}

func checkAge(raw string) (string, bool) {
	age, ok := numeric.Parse(raw)
	if !ok {
		return MsgAgeNotNumber, false
	}
	if age < MinAge || age > MaxAge {
		return MsgAgeOutOfRange, false
	}
	return "", true
}

func checkStartDate(raw string, now time.Time) (string, bool) {
	loc := now.Location()
	chosen, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return MsgStartDateInvalid, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if chosen.Before(today) {
		return MsgStartDatePast, false
	}
	return "", true
}
