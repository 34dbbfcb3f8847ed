package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"CLIName", CLIName(), "appforge"},
		{"DisplayName", DisplayName(), "AppForge"},
		{"HomeDir", HomeDir(), ".appforge"},
		{"EnvPrefix", EnvPrefix(), "APPFORGE"},
		{"ProjectName", ProjectName(), "generated-react-app"},
		{"ArchiveName", ArchiveName(), "generated-react-app.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s() = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}
	if Description() == "" {
		t.Error("Description() is empty")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("server_addr"); got != "APPFORGE_SERVER_ADDR" {
		t.Errorf("EnvVar() = %q, want APPFORGE_SERVER_ADDR", got)
	}
}
