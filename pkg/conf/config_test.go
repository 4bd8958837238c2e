package conf

import "testing"

type nestedConfig struct {
	ListenAddress string
}

type testConfig struct {
	Server nestedConfig
	Name   string `mapstructure:"name"`
}

func TestParseConfigBindsEnvironment(t *testing.T) {
	t.Setenv("APPTEST_SERVER_LISTENADDRESS", ":9090")
	t.Setenv("APPTEST_NAME", "dashboard")

	config := testConfig{}
	if err := ParseConfig(&config, EnvPrefix("APPTEST")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if config.Server.ListenAddress != ":9090" {
		t.Fatalf("Unexpected listen address %q", config.Server.ListenAddress)
	}
	if config.Name != "dashboard" {
		t.Fatalf("Unexpected name %q", config.Name)
	}
}
