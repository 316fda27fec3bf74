package patients

import (
	"errors"
	"math"
)

// ErrPatientNotFound is returned when the requested ID does not exist.
var ErrPatientNotFound = errors.New("patient not found")

// ErrPatientExists is returned when creating an ID that is already taken.
var ErrPatientExists = errors.New("patient already exists")

// Patient is one record in the registry. BMI and Verdict are derived from
// height and weight and recomputed on every write.
type Patient struct {
	ID      string  `json:"id" validate:"required"`
	Name    string  `json:"name" validate:"required"`
	City    string  `json:"city" validate:"required"`
	Age     int     `json:"age" validate:"required,gt=0,lt=120"`
	Gender  string  `json:"gender" validate:"required,oneof=male female others"`
	Height  float64 `json:"height" validate:"required,gt=0"` // metres
	Weight  float64 `json:"weight" validate:"required,gt=0"` // kilograms
	BMI     float64 `json:"bmi"`
	Verdict string  `json:"verdict"`
}

// Update carries the fields a partial update may change.
type Update struct {
	Name   *string  `json:"name,omitempty"`
	City   *string  `json:"city,omitempty"`
	Age    *int     `json:"age,omitempty" validate:"omitempty,gt=0,lt=120"`
	Gender *string  `json:"gender,omitempty" validate:"omitempty,oneof=male female others"`
	Height *float64 `json:"height,omitempty" validate:"omitempty,gt=0"`
	Weight *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
}

// ComputeDerived fills BMI (2 decimals) and the classification verdict.
func (p *Patient) ComputeDerived() {
	if p.Height <= 0 {
		p.BMI = 0
		p.Verdict = ""
		return
	}
	bmi := p.Weight / (p.Height * p.Height)
	p.BMI = math.Round(bmi*100) / 100
	switch {
	case p.BMI < 18.5:
		p.Verdict = "Underweight"
	case p.BMI < 25:
		p.Verdict = "Normal"
	case p.BMI < 30:
		p.Verdict = "Overweight"
	default:
		p.Verdict = "Obese"
	}
}

func (p *Patient) apply(u Update) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.City != nil {
		p.City = *u.City
	}
	if u.Age != nil {
		p.Age = *u.Age
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	if u.Height != nil {
		p.Height = *u.Height
	}
	if u.Weight != nil {
		p.Weight = *u.Weight
	}
	p.ComputeDerived()
}
