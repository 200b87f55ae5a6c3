package account

import "testing"

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "A@X.com", want: "a@x.com"},
		{in: "  user@Example.COM  ", want: "user@example.com"},
		{in: "already@lower.io", want: "already@lower.io"},
	}

	for _, tc := range cases {
		if got := NormalizeEmail(tc.in); got != tc.want {
			t.Fatalf("NormalizeEmail(%q)=%q want=%q", tc.in, got, tc.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"a@x.com", "first.last@sub.example.org", "u+tag@x.io"}
	for _, s := range valid {
		if !ValidEmail(s) {
			t.Fatalf("ValidEmail(%q)=false want true", s)
		}
	}

	invalid := []string{"", "not-an-email", "@x.com", "a@", "Bob <b@x.com>", "two@@x.com"}
	for _, s := range invalid {
		if ValidEmail(s) {
			t.Fatalf("ValidEmail(%q)=true want false", s)
		}
	}
}
