package form

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Field 是表单字段名，与 HTML 表单的 name 属性一致。
type Field string

const (
	FullName   Field = "fullName"
	Email      Field = "email"
	Phone      Field = "phone"
	Image      Field = "image"
	Experience Field = "experience"
)

// Fields lists every form field in display order.
var Fields = []Field{FullName, Email, Phone, Image, Experience}

// IsText reports whether f is one of the four text fields.
func (f Field) IsText() bool {
	switch f {
	case FullName, Email, Phone, Experience:
		return true
	}
	return false
}

// ValidationError 是唯一的错误类型，挂在单个字段上。
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Errors 聚合各字段的校验错误。
type Errors map[Field]*ValidationError

// Message 返回字段的错误消息，没有错误时为空串。
func (e Errors) Message(f Field) string {
	if err, ok := e[f]; ok && err != nil {
		return err.Message
	}
	return ""
}

// Messages flattens the errors for JSON responses.
func (e Errors) Messages() map[string]string {
	out := make(map[string]string, len(e))
	for f, err := range e {
		out[string(f)] = err.Message
	}
	return out
}

type rule struct {
	tag      string
	messages map[string]string
}

var validate = validator.New()

var rules = map[Field]rule{
	FullName: {
		tag:      "required",
		messages: map[string]string{"required": "Full Name is required"},
	},
	Email: {
		tag: "required,email",
		messages: map[string]string{
			"required": "Email is required",
			"email":    "Invalid email",
		},
	},
	Phone: {
		tag:      "required",
		messages: map[string]string{"required": "Phone is required"},
	},
	Image: {
		tag:      "required",
		messages: map[string]string{"required": "Image is required"},
	},
	Experience: {
		tag:      "required",
		messages: map[string]string{"required": "Experience is required"},
	},
}

// checkField 对单个字段执行规则，通过时返回 nil。
func checkField(f Field, v Values) *ValidationError {
	r, ok := rules[f]
	if !ok {
		return nil
	}

	err := validate.Var(v.value(f), r.tag)
	if err == nil {
		return nil
	}

	msg := r.messages["required"]
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		if m, ok := r.messages[fieldErrs[0].Tag()]; ok {
			msg = m
		}
	}
	return &ValidationError{Field: f, Message: msg}
}

// ValidateValues 对全部字段做一次完整校验。
func ValidateValues(v Values) Errors {
	errs := Errors{}
	for _, f := range Fields {
		if err := checkField(f, v); err != nil {
			errs[f] = err
		}
	}
	return errs
}
