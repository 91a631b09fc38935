package cli

import (
	"testing"
)

func TestGetServerURL(t *testing.T) {
	host = "localhost"
	port = 8090

	if url := GetServerURL(); url != "http://localhost:8090" {
		t.Errorf("expected http://localhost:8090, got %s", url)
	}

	host = "10.0.0.5"
	port = 9000

	if url := GetServerURL(); url != "http://10.0.0.5:9000" {
		t.Errorf("expected http://10.0.0.5:9000, got %s", url)
	}

	// Reset
	host = "localhost"
	port = 8090
}

func TestNewClientUsesFlags(t *testing.T) {
	host = "localhost"
	port = 8090
	user = "admin"
	password = "secret"

	client := NewClient()

	if client.baseURL != "http://localhost:8090" {
		t.Errorf("expected http://localhost:8090, got %s", client.baseURL)
	}
	if client.user != "admin" || client.password != "secret" {
		t.Errorf("expected admin:secret, got %s:%s", client.user, client.password)
	}

	// Reset
	user = ""
	password = ""
}

func TestSetVersion(t *testing.T) {
	SetVersion("1.2.3")

	if Version != "1.2.3" {
		t.Errorf("expected version 1.2.3, got %s", Version)
	}
	if rootCmd.Version != "1.2.3" {
		t.Errorf("expected root command version 1.2.3, got %s", rootCmd.Version)
	}

	// Reset
	Version = "0.1.0"
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"serve", "predict", "notify", "reset", "status", "config"}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		if !registered[name] {
			t.Errorf("command %q not registered", name)
		}
	}
}
