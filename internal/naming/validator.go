// Package naming holds the name predicate shared by the registry and every
// registrar.
package naming

// IsValidName reports whether candidate may be used as a domain or subdomain
// name: non-empty, and made only of ASCII letters, digits and hyphens.
func IsValidName(candidate string) bool {
	if candidate == "" {
		return false
	}
	for i := 0; i < len(candidate); i++ {
		if !allowed(candidate[i]) {
			return false
		}
	}
	return true
}

func allowed(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-':
		return true
	}
	return false
}
