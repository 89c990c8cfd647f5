package config

var DefaultSpark = Spark{
	URL:     "https://api.ciscospark.com/v1",
	Timeout: "10s",
}

// Spark configures the client for the collaboration platform REST API.
type Spark struct {
	URL                string `yaml:"url" json:"url"`
	Timeout            string `yaml:"timeout" json:"timeout"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" json:"insecure_skip_verify"`
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (c *Spark) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*c = DefaultSpark
	type plain Spark
	if err := unmarshal((*plain)(c)); err != nil {
		return err
	}

	return nil
}
