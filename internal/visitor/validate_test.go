package visitor

import "testing"

func validSubmission() Submission {
	return Submission{
		Nome:          "João da Silva",
		Telefone:      "11 91234-5678",
		Idade:         float64(30),
		Consentimento: true,
	}
}

func TestValidateAccepts(t *testing.T) {
	if errs := Validate(validSubmission()); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		telefone string
		want     string
	}{
		{"11 91234-5678", ""},
		{"11912345678", ""},
		{"(11) 91234-5678", ""},
		{"123", "invalid format"},
		{"119123456789", "invalid format"},
		{"", "required"},
		{"   ", "required"},
	}
	for _, tc := range cases {
		s := validSubmission()
		s.Telefone = tc.telefone
		errs := Validate(s)
		if got := errs["telefone"]; got != tc.want {
			t.Errorf("telefone %q: expected %q, got %q", tc.telefone, tc.want, got)
		}
	}
}

func TestValidateIdade(t *testing.T) {
	cases := []struct {
		name  string
		idade any
		want  string
	}{
		{"lower bound", float64(12), ""},
		{"upper bound", float64(120), ""},
		{"below range", float64(11), "out of range"},
		{"above range", float64(121), "out of range"},
		{"numeric string", "45", ""},
		{"garbage string", "abc", "invalid number"},
		{"fractional", 30.5, "invalid number"},
		{"beyond int range", 1e30, "invalid number"},
		{"negative beyond int range", -1e30, "invalid number"},
		{"absent", nil, "required"},
		{"empty string", "", "required"},
	}
	for _, tc := range cases {
		s := validSubmission()
		s.Idade = tc.idade
		errs := Validate(s)
		if got := errs["idade"]; got != tc.want {
			t.Errorf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestValidateConsentimento(t *testing.T) {
	s := validSubmission()
	s.Consentimento = false
	errs := Validate(s)
	if errs["consentimento"] != "required" {
		t.Fatalf("expected consentimento required, got %v", errs)
	}
}

func TestValidateNome(t *testing.T) {
	s := validSubmission()
	s.Nome = "   "
	errs := Validate(s)
	if errs["nome"] != "required" {
		t.Fatalf("expected nome required, got %v", errs)
	}
}

func TestValidateCollectsAllViolations(t *testing.T) {
	errs := Validate(Submission{})
	for _, field := range []string{"nome", "telefone", "idade", "consentimento"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected violation for %s, got %v", field, errs)
		}
	}
}
