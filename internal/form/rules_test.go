package form

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cvform/internal/cv"
)

func testImage() *cv.Image {
	return cv.NewImage("me.png", "image/png", []byte("\x89PNG\r\n\x1a\n"))
}

func validValues() Values {
	return Values{
		FullName:   "Jane Doe",
		Email:      "jane@x.com",
		Phone:      "555-1234",
		Image:      testImage(),
		Experience: "5 years",
	}
}

func TestCheckField_Messages(t *testing.T) {
	tests := []struct {
		name   string
		field  Field
		mutate func(*Values)
		want   string
	}{
		{"full name empty", FullName, func(v *Values) { v.FullName = "" }, "Full Name is required"},
		{"email empty", Email, func(v *Values) { v.Email = "" }, "Email is required"},
		{"email malformed", Email, func(v *Values) { v.Email = "not-an-email" }, "Invalid email"},
		{"email missing domain", Email, func(v *Values) { v.Email = "jane@" }, "Invalid email"},
		{"email single-label domain", Email, func(v *Values) { v.Email = "jane@x" }, "Invalid email"},
		{"email with subaddress", Email, func(v *Values) { v.Email = "jane.doe+cv@mail.example.org" }, ""},
		{"phone empty", Phone, func(v *Values) { v.Phone = "" }, "Phone is required"},
		{"phone any format", Phone, func(v *Values) { v.Phone = "call me" }, ""},
		{"image missing", Image, func(v *Values) { v.Image = nil }, "Image is required"},
		{"experience empty", Experience, func(v *Values) { v.Experience = "" }, "Experience is required"},
		{"valid email", Email, func(*Values) {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validValues()
			tt.mutate(&v)

			err := checkField(tt.field, v)
			if tt.want == "" {
				assert.Nil(t, err)
				return
			}
			if assert.NotNil(t, err) {
				assert.Equal(t, tt.want, err.Message)
				assert.Equal(t, tt.field, err.Field)
			}
		})
	}
}

func TestValidateValues_SucceedsIffAllFieldsPresentAndEmailValid(t *testing.T) {
	for mask := 0; mask < 1<<len(Fields); mask++ {
		for _, email := range []string{"jane@x.com", "not-an-email"} {
			v := Values{}
			present := func(i int) bool { return mask&(1<<i) != 0 }
			if present(0) {
				v.FullName = "Jane"
			}
			if present(1) {
				v.Email = email
			}
			if present(2) {
				v.Phone = "1"
			}
			if present(3) {
				v.Image = testImage()
			}
			if present(4) {
				v.Experience = "x"
			}

			wantValid := mask == 1<<len(Fields)-1 && email == "jane@x.com"
			errs := ValidateValues(v)
			assert.Equal(t, wantValid, len(errs) == 0, "mask=%05b email=%s errs=%v", mask, email, errs.Messages())
		}
	}
}

func TestErrors_Messages(t *testing.T) {
	errs := ValidateValues(Values{Email: "bad"})

	msgs := errs.Messages()
	assert.Equal(t, "Invalid email", msgs["email"])
	assert.Equal(t, "Full Name is required", msgs["fullName"])
	assert.Len(t, msgs, 5)
	assert.Equal(t, "", Errors{}.Message(Email))
}
