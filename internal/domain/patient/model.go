package patient

import (
	"encoding/json"
	"fmt"
	"time"
)

// Patient is a stored patient record.
type Patient struct {
	ID        int64     `json:"patient_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	DOB       Date      `json:"dob"`
	CreatedAt time.Time `json:"created_at"`
}

const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day, written as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON accepts a YYYY-MM-DD string. A JSON null leaves d unchanged.
func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("invalid date: expected a YYYY-MM-DD string")
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Optional is a JSON field that distinguishes "absent" from "present".
// Set is true whenever the key appears in the document, Null when its
// value is a literal null.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some returns a present, non-null Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// CreateRequest is the body of POST /v1/patients.
type CreateRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required"`
	DOB   Date   `json:"dob" validate:"required"`
}

func (r *CreateRequest) Patient() *Patient {
	return &Patient{
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		DOB:   r.DOB,
	}
}

// UpdateRequest is the body of PUT /v1/patients/:id. Only keys present in
// the body are applied.
type UpdateRequest struct {
	Name  Optional[string] `json:"name"`
	Email Optional[string] `json:"email"`
	Phone Optional[string] `json:"phone"`
	DOB   Optional[Date]   `json:"dob"`
}

// Empty reports whether the request changes nothing.
func (r *UpdateRequest) Empty() bool {
	return !r.Name.Set && !r.Email.Set && !r.Phone.Set && !r.DOB.Set
}

// Apply copies the present fields onto p. The request must have passed
// Validate, so present fields are never null.
func (r *UpdateRequest) Apply(p *Patient) {
	if r.Name.Set {
		p.Name = r.Name.Value
	}
	if r.Email.Set {
		p.Email = r.Email.Value
	}
	if r.Phone.Set {
		p.Phone = r.Phone.Value
	}
	if r.DOB.Set {
		p.DOB = r.DOB.Value
	}
}

// Filter narrows List to patients whose name and phone contain the given
// substrings, case-insensitively. Empty fields do not filter.
type Filter struct {
	Name  string
	Phone string
}
