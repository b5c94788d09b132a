package utils

import (
	"fmt"

	"golang.org/x/net/idna"
)

// QueryName prepares user input for the wire encoder: the name is
// canonicalised and internationalised labels are converted to their ASCII
// (punycode) form. Plain ASCII names are passed through untouched so that
// service labels such as "_sip._udp" stay usable.
func QueryName(name string) (string, error) {
	name = CanonicalDNSName(name)
	if isASCII(name) {
		return name, nil
	}
	ascii, err := idna.Lookup.ToASCII(name)
	if err != nil {
		return "", fmt.Errorf("invalid domain name %q: %w", name, err)
	}
	return ascii, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
