//go:build darwin

package config

import "os/exec"

// keychainExec fetches a secret from the macOS Keychain via the security
// CLI. Load looks up service "buddyd", account "groq_api_key" when the Groq
// key is absent from env and backend.
func keychainExec(service, account string) ([]byte, error) {
	return exec.Command(
		"security", "find-generic-password",
		"-s", service,
		"-a", account,
		"-w",
	).Output()
}
