package helpers

import "strings"

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

// DisplayNameFor picks the best human label we have for a user: explicit
// name, otherwise the mailbox part of their email.
func DisplayNameFor(name, email string) string {
	if strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
