package main

import "fmt"

// parseYN parses the historical Y|N option syntax, case-insensitively.
func parseYN(name, value string) (bool, error) {
	switch value {
	case "Y", "y":
		return true, nil
	case "N", "n":
		return false, nil
	}
	return false, fmt.Errorf("invalid --%s: %q (want Y or N)", name, value)
}
