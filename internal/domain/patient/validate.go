package patient

import (
	"github.com/ehr/patient-service/internal/platform/apierr"
)

var validate = apierr.NewValidator()

// Validate returns a 422 *apierr.HTTPError listing every invalid field.
func (r *CreateRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apierr.FromValidation(err)
	}
	return nil
}

// Validate rejects present fields that would violate the stored record's
// constraints: every column is NOT NULL, name and phone are non-empty and
// email must be well formed.
func (r *UpdateRequest) Validate() error {
	var fields []apierr.FieldError
	add := func(field, msg string) {
		fields = append(fields, apierr.FieldError{Field: field, Error: msg})
	}

	checkText := func(field string, o Optional[string]) {
		switch {
		case !o.Set:
		case o.Null:
			add(field, "must not be null")
		case o.Value == "":
			add(field, "must not be empty")
		}
	}
	checkText("name", r.Name)
	checkText("phone", r.Phone)

	if r.Email.Set {
		if r.Email.Null {
			add("email", "must not be null")
		} else if err := validate.Var(r.Email.Value, "required,email"); err != nil {
			add("email", "must be a valid email address")
		}
	}
	if r.DOB.Set && r.DOB.Null {
		add("dob", "must not be null")
	}

	if len(fields) > 0 {
		return apierr.Validation("", fields...)
	}
	return nil
}
