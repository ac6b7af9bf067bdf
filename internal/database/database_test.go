package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		wantErr string
	}{
		{
			name:    "malformed dsn",
			dsn:     "not-a-dsn",
			wantErr: "failed to open database",
		},
		{
			name:    "unreachable server",
			dsn:     "user:password@tcp(127.0.0.1:1)/amiram?timeout=1s",
			wantErr: "failed to ping database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := Connect(tt.dsn)

			require.Error(t, err)
			assert.Nil(t, db)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
