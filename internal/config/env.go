package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MYEDITOR"

// Environment holds the settings read from MYEDITOR_* variables.
type Environment struct {
	Theme          string `envconfig:"THEME"`
	NotifyTitle    string `envconfig:"NOTIFY_TITLE"`
	NotifySaveText string `envconfig:"NOTIFY_SAVE_TEXT"`
	NotifyLoadText string `envconfig:"NOTIFY_LOAD_TEXT"`
	NotifyCopyText string `envconfig:"NOTIFY_COPY_TEXT"`
}

// LoadEnvironment reads the MYEDITOR_* variables. Values are trimmed; unset
// and blank variables are left empty.
func LoadEnvironment() (Environment, error) {
	var env Environment
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Environment{}, fmt.Errorf("read environment: %w", err)
	}
	for _, v := range []*string{&env.Theme, &env.NotifyTitle, &env.NotifySaveText, &env.NotifyLoadText, &env.NotifyCopyText} {
		*v = strings.TrimSpace(*v)
	}
	return env, nil
}
