package demo

import (
	"strings"
	"testing"
)

func TestCreateUserEchoesInput(t *testing.T) {
	out, err := CreateUser(UserInput{Name: "John Doe", Age: 30, Email: "john@example.com"})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if out.ID == 0 {
		t.Error("Expected an assigned ID")
	}
	if out.Name != "John Doe" || out.Age != 30 || out.Email != "john@example.com" {
		t.Errorf("Output does not echo input: %+v", out)
	}
	if out.CreatedAt == "" {
		t.Error("Expected a creation timestamp")
	}
}

func TestDivideNumbers(t *testing.T) {
	got, err := DivideNumbers(10, 4)
	if err != nil {
		t.Fatalf("DivideNumbers failed: %v", err)
	}
	if got != 2.5 {
		t.Errorf("Expected 2.5, got %f", got)
	}

	_, err = DivideNumbers(10, 0)
	if err == nil {
		t.Fatal("Expected error for division by zero")
	}
	if !strings.Contains(err.Error(), "division by zero") {
		t.Errorf("Unexpected error: %v", err)
	}
}
