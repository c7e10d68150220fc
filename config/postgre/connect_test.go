package postgre

import (
	"context"
	"testing"

	"builders-panel/config"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.PostgresConfig
		want string
	}{
		{
			name: "explicit sslmode",
			cfg:  config.PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "builders", SSLMode: "require"},
			want: "host=db port=5432 user=u password=p dbname=builders sslmode=require",
		},
		{
			name: "default sslmode",
			cfg:  config.PostgresConfig{Host: "db", Port: 5433, User: "u", DBName: "x"},
			want: "host=db port=5433 user=u password= dbname=x sslmode=disable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DSN(tt.cfg); got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHealthCheck_NotConnected(t *testing.T) {
	if IsConnected() {
		t.Skip("connection established by another test")
	}
	if err := HealthCheck(context.Background()); err == nil {
		t.Error("HealthCheck() expected error without connection")
	}
}
