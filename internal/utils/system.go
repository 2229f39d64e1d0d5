package utils

import (
	"os/user"
	"strings"
)

// GetUsername returns the current username. On Windows the domain prefix is
// dropped.
func GetUsername() (string, error) {
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	name := u.Username
	if i := strings.LastIndex(name, `\`); i >= 0 {
		name = name[i+1:]
	}
	return name, nil
}
