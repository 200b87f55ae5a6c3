package account

import "strings"

// validateCreate applies the shared signup rules for every Store
// implementation: a syntactically valid email and a password inside the
// configured length policy (checked by HashPassword).
func validateCreate(op string, in CreateInput) (email, emailNorm string, err error) {
	email = strings.TrimSpace(in.Email)
	if email == "" {
		return "", "", OpError{Op: op, Kind: ErrInvalidInput, Msg: "email is required"}
	}
	if !ValidEmail(email) {
		return "", "", OpError{Op: op, Kind: ErrInvalidInput, Msg: "email is not a valid address"}
	}
	if in.Password == "" {
		return "", "", OpError{Op: op, Kind: ErrInvalidInput, Msg: "password is required"}
	}
	return email, NormalizeEmail(email), nil
}

// dummyVerifyHash is computed once and used for timing-resistant login checks:
// when no account matches, a bcrypt compare still runs so that the missing
// and mismatch paths cost roughly the same.
func dummyVerifyHash() string {
	_, hash, err := HashPassword("dummy-password-for-timing-only")
	if err != nil {
		return ""
	}
	return hash
}
