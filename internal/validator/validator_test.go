package validator

import (
	"testing"

	"github.com/schoolhq/registrar/internal/model"
)

func TestStructValid(t *testing.T) {
	req := model.AddStudentRequest{
		Name:    "Ann Lee",
		Class:   "10",
		RollNo:  "12345",
		Courses: []string{"Math"},
	}
	if fields := Struct(req); fields != nil {
		t.Errorf("expected valid, got %v", fields)
	}
}

func TestStructFieldNamesUseJSONTags(t *testing.T) {
	req := model.AddStudentRequest{Name: "Ann!", Class: "x", RollNo: "123"}

	fields := Struct(req)
	if fields == nil {
		t.Fatal("expected validation failures")
	}
	for _, field := range []string{"name", "class", "rollNo"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("missing error for field %q: %v", field, fields)
		}
	}
}

func TestAlphaspace(t *testing.T) {
	cases := []struct {
		name  string
		valid bool
	}{
		{"Ann", true},
		{"Ann Lee", true},
		{"Ann3", false},
		{"Ann_Lee", false},
		{"Ann-Lee", false},
	}

	for _, tc := range cases {
		req := model.AddStudentRequest{Name: tc.name, Class: "10", RollNo: "12345"}
		fields := Struct(req)
		if tc.valid && fields != nil {
			t.Errorf("%q should be a valid name: %v", tc.name, fields)
		}
		if !tc.valid && fields == nil {
			t.Errorf("%q should be rejected", tc.name)
		}
	}
}
