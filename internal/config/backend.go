package config

// ConfigBackend abstracts where buddyd settings live on each platform:
// UserDefaults (domain com.buddyd.app) on macOS, a JSON file under
// $XDG_CONFIG_HOME/buddyd elsewhere.
type ConfigBackend interface {
	GetString(key string) (val string, ok bool, err error)
	GetInt(key string) (val int, ok bool, err error)
	SetString(key, val string) error
	SetInt(key string, val int) error
}
