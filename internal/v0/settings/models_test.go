package settings

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Settings
	}{
		{"empty", ``, Defaults()},
		{"malformed", `{"darkMode":`, Defaults()},
		{"wrong type", `{"darkMode":"yes"}`, Defaults()},
		{"empty object", `{}`, Defaults()},
		{
			"partial",
			`{"darkMode":false,"grade":"3"}`,
			Settings{DarkMode: false, HighContrastMode: true, PreferredMenuAlert: true, Grade: "3", ClassNm: "1"},
		},
		{
			"legacy className",
			`{"className":"4"}`,
			Settings{DarkMode: true, HighContrastMode: true, PreferredMenuAlert: true, Grade: "1", ClassNm: "4"},
		},
		{
			"classNm wins over className",
			`{"classNm":"2","className":"4","timeDisplay":true}`,
			Settings{DarkMode: true, HighContrastMode: true, PreferredMenuAlert: true, TimeDisplay: true, Grade: "1", ClassNm: "2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode([]byte(tt.raw)); got != tt.want {
				t.Errorf("Decode(%s) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	if !d.DarkMode || !d.HighContrastMode || !d.PreferredMenuAlert || d.TimeDisplay {
		t.Errorf("flags = %+v", d)
	}
	if d.Grade != "1" || d.ClassNm != "1" {
		t.Errorf("grade/class = %q/%q", d.Grade, d.ClassNm)
	}
	if !d.ShowTimetable() {
		t.Error("timetable is shown by default")
	}
}

func TestPatchApply(t *testing.T) {
	off := false
	grade := "2"
	got := Patch{DarkMode: &off, Grade: &grade}.Apply(Defaults())

	want := Defaults()
	want.DarkMode = false
	want.Grade = "2"
	if got != want {
		t.Errorf("Apply = %+v, want %+v", got, want)
	}
}

func TestValidate(t *testing.T) {
	valid := []Settings{
		Defaults(),
		{Grade: "6", ClassNm: "30"},
		{Grade: "3", ClassNm: "1"},
	}
	for _, s := range valid {
		if err := validate.Struct(s); err != nil {
			t.Errorf("validate(%+v) = %v", s, err)
		}
	}

	invalid := []Settings{
		{Grade: "", ClassNm: ""},
		{Grade: "0"},
		{Grade: "7"},
		{Grade: " 1"},
		{Grade: "1", ClassNm: "31"},
		{Grade: "1", ClassNm: "a"},
	}
	for _, s := range invalid {
		err := validate.Struct(s)
		if err == nil {
			t.Errorf("validate(%+v) should fail", s)
			continue
		}
		if msgs := ValidationMessages(err); len(msgs) == 0 {
			t.Errorf("no messages for %+v", s)
		}
	}
}

func TestMustRegister_PanicsOnError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	mustRegister(validator.New(), func(v *validator.Validate) error {
		return v.RegisterValidation("", validateGrade)
	})
}

func TestMustRegister_RegistersRules(t *testing.T) {
	v := mustRegister(validator.New(), registerRules)
	if err := v.Var("3", "grade"); err != nil {
		t.Errorf("grade 3: %v", err)
	}
	if err := v.Var("9", "grade"); err == nil {
		t.Error("grade 9 should fail")
	}
}
