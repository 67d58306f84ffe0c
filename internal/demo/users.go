// Package demo holds the example business functions used by the fnmon CLI.
// They are ordinary user code with no special behavior.
package demo

import (
	"time"
)

// UserInput is the payload for creating a user
type UserInput struct {
	Name  string `json:"name" mapstructure:"name" validate:"required"`
	Age   int    `json:"age" mapstructure:"age" validate:"required,gte=0,lte=150"`
	Email string `json:"email" mapstructure:"email" validate:"required,email"`
}

// RecordName marks UserInput as a validatable record shape
func (UserInput) RecordName() string { return "UserInput" }

// UserOutput is the created user
type UserOutput struct {
	ID        int    `json:"id" mapstructure:"id" validate:"required"`
	Name      string `json:"name" mapstructure:"name" validate:"required"`
	Age       int    `json:"age" mapstructure:"age" validate:"gte=0"`
	Email     string `json:"email" mapstructure:"email" validate:"required,email"`
	CreatedAt string `json:"created_at" mapstructure:"created_at" validate:"required"`
}

// RecordName marks UserOutput as a validatable record shape
func (UserOutput) RecordName() string { return "UserOutput" }

// CreateUser simulates user creation with a short processing delay
func CreateUser(in UserInput) (UserOutput, error) {
	time.Sleep(100 * time.Millisecond)

	return UserOutput{
		ID:        12345,
		Name:      in.Name,
		Age:       in.Age,
		Email:     in.Email,
		CreatedAt: time.Now().Format(time.RFC3339),
	}, nil
}
