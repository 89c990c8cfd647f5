package config

var DefaultHttpServer = HttpServer{
	Bind: ":8080",
}

type HttpServer struct {
	Bind      string `yaml:"bind" json:"bind"`
	Root      string `yaml:"root" json:"root"`
	PublicURL string `yaml:"public_url" json:"public_url"`
}

// UnmarshalYAML implements the yaml.Unmarshaler interface.
func (c *HttpServer) UnmarshalYAML(unmarshal func(interface{}) error) error {
	*c = DefaultHttpServer
	type plain HttpServer
	if err := unmarshal((*plain)(c)); err != nil {
		return err
	}

	return nil
}
