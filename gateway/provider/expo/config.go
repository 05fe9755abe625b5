package expo

type configSource interface {
	GetExpo() Config
}

type Config struct {
	Url         string `yaml:"url"`
	AccessToken string `yaml:"accessToken"`
	RatePerSec  int    `yaml:"ratePerSec"`
}
