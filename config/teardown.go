package config

var DefaultTeardown = Teardown{}

// Teardown optionally schedules reap passes on cron expressions. An empty
// schedule means teardown only happens on an explicit DELETE request.
type Teardown struct {
	Schedule []string `yaml:"schedule" json:"schedule"`
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (c *Teardown) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*c = DefaultTeardown
	type plain Teardown
	if err := unmarshal((*plain)(c)); err != nil {
		return err
	}

	return nil
}
